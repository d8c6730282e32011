// Package storage grava uploads de imagem em diretórios por entidade e
// devolve a URL pública servida em /media/.
package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxUpload = 10 << 20 // 10 MiB

var extensoesAceitas = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type Media struct {
	Dir string // raiz local, ex.: ./media
}

func NewMedia(dir string) *Media {
	return &Media{Dir: dir}
}

// Salvar lê o arquivo do campo multipart indicado, grava em <dir>/<subdir>/ e
// devolve o caminho público ("/media/<subdir>/<nome>").
func (m *Media) Salvar(r *http.Request, campo, subdir string) (string, error) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return "", errors.New("upload inválido ou acima de 10MB")
	}
	file, header, err := r.FormFile(campo)
	if err != nil {
		return "", fmt.Errorf("campo %q ausente", campo)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extensoesAceitas[ext] {
		return "", errors.New("formato não suportado: use jpg, jpeg, png ou webp")
	}

	destDir := filepath.Join(m.Dir, subdir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	nome := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	dest, err := os.Create(filepath.Join(destDir, nome))
	if err != nil {
		return "", err
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		return "", err
	}
	return "/media/" + subdir + "/" + nome, nil
}
