package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RespondJSON serializa v com o Content-Type correto.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondErro devolve um corpo {"detail": msg}.
func RespondErro(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, map[string]string{"detail": msg})
}

// RespondErroCampos devolve um 400 com mensagens por campo.
func RespondErroCampos(w http.ResponseWriter, campos map[string]string) {
	RespondJSON(w, http.StatusBadRequest, campos)
}

// NovoValidador devolve um validator que usa o nome do campo no JSON nas
// mensagens de erro.
func NovoValidador() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// MensagensValidacao converte erros do validator em um mapa campo → mensagem.
func MensagensValidacao(err error) map[string]string {
	campos := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				campos[fe.Field()] = "este campo é obrigatório"
			case "email":
				campos[fe.Field()] = "informe um e-mail válido"
			case "oneof":
				campos[fe.Field()] = "valor deve ser um de: " + fe.Param()
			case "min":
				campos[fe.Field()] = "valor abaixo do mínimo (" + fe.Param() + ")"
			default:
				campos[fe.Field()] = "valor inválido"
			}
		}
		return campos
	}
	campos["detail"] = err.Error()
	return campos
}
