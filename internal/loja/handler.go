package loja

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/wavewhiz/api-marketplace/internal/auth"
	"github.com/wavewhiz/api-marketplace/internal/categoria"
	"github.com/wavewhiz/api-marketplace/internal/storage"
	"github.com/wavewhiz/api-marketplace/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Categorias *categoria.Repository
	Media      *storage.Media
	validate   *validator.Validate
}

func NewHandler(db *gorm.DB, media *storage.Media) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Categorias: categoria.NewRepository(db),
		Media:      media,
		validate:   utils.NovoValidador(),
	}
}

func (h *Handler) normalizarDocumentos(req *lojaRequest) (cnpj *string, campos map[string]string) {
	campos = map[string]string{}
	if req.CNPJ != "" {
		normalizado, err := utils.NormalizarCNPJ(req.CNPJ)
		if err != nil {
			campos["cnpj"] = err.Error()
			return nil, campos
		}
		cnpj = &normalizado
	}
	if req.CEP != "" {
		normalizado, err := utils.NormalizarCEP(req.CEP)
		if err != nil {
			campos["cep"] = err.Error()
			return nil, campos
		}
		req.CEP = normalizado
	}
	return cnpj, campos
}

// Criar cadastra uma loja. O dono vem sempre do token, nunca do corpo.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.IDDoContexto(r.Context())

	var req lojaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondErroCampos(w, utils.MensagensValidacao(err))
		return
	}

	cnpj, campos := h.normalizarDocumentos(&req)
	if len(campos) > 0 {
		utils.RespondErroCampos(w, campos)
		return
	}
	if cnpj != nil {
		if emUso, err := h.Repository.CNPJEmUso(h.DB, *cnpj, 0); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar CNPJ")
			return
		} else if emUso {
			utils.RespondErroCampos(w, map[string]string{"cnpj": "CNPJ já cadastrado"})
			return
		}
	}

	l := Loja{
		EmpreendedorID: userID,
		Nome:           req.Nome,
		Descricao:      req.Descricao,
		CEP:            req.CEP,
		Rua:            req.Rua,
		Numero:         req.Numero,
		Complemento:    req.Complemento,
		CNPJ:           cnpj,
	}
	if err := h.Repository.Salvar(h.DB, &l); err != nil {
		if errors.Is(err, ErrNaoEmpreendedor) {
			utils.RespondErroCampos(w, map[string]string{"empreendedor": err.Error()})
			return
		}
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar loja")
		return
	}

	if len(req.CategoriaIDs) > 0 {
		categorias, err := h.Categorias.FindByIDs(req.CategoriaIDs)
		if err != nil || len(categorias) != len(req.CategoriaIDs) {
			utils.RespondErroCampos(w, map[string]string{"categorias": "categoria inexistente"})
			return
		}
		if err := h.Repository.DefinirCategorias(h.DB, &l, categorias); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao vincular categorias")
			return
		}
		l.Categorias = categorias
	}

	utils.RespondJSON(w, http.StatusCreated, l)
}

// Listar é público; aceita ?categoria= (ID ou nome) e ?empreendedor=.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f := Filtros{
		Categoria:    r.URL.Query().Get("categoria"),
		Empreendedor: r.URL.Query().Get("empreendedor"),
	}
	lojas, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar lojas")
		return
	}
	utils.RespondJSON(w, http.StatusOK, lojas)
}

// GET /lojas/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	l, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "loja não encontrada")
		return
	}
	utils.RespondJSON(w, http.StatusOK, l)
}

// Atualizar altera uma loja existente. A política exige apenas autenticação;
// o dono nunca muda por aqui.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "loja não encontrada")
		return
	}

	var req lojaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	cnpj, campos := h.normalizarDocumentos(&req)
	if len(campos) > 0 {
		utils.RespondErroCampos(w, campos)
		return
	}
	if cnpj != nil {
		if emUso, err := h.Repository.CNPJEmUso(h.DB, *cnpj, existente.ID); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar CNPJ")
			return
		} else if emUso {
			utils.RespondErroCampos(w, map[string]string{"cnpj": "CNPJ já cadastrado"})
			return
		}
		existente.CNPJ = cnpj
	}

	if req.Nome != "" {
		existente.Nome = req.Nome
	}
	if req.Descricao != "" {
		existente.Descricao = req.Descricao
	}
	if req.CEP != "" {
		existente.CEP = req.CEP
	}
	if req.Rua != "" {
		existente.Rua = req.Rua
	}
	if req.Numero != "" {
		existente.Numero = req.Numero
	}
	if req.Complemento != "" {
		existente.Complemento = req.Complemento
	}

	if err := h.Repository.Salvar(h.DB, existente); err != nil {
		if errors.Is(err, ErrNaoEmpreendedor) {
			utils.RespondErroCampos(w, map[string]string{"empreendedor": err.Error()})
			return
		}
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar loja")
		return
	}

	if req.CategoriaIDs != nil {
		categorias, err := h.Categorias.FindByIDs(req.CategoriaIDs)
		if err != nil || len(categorias) != len(req.CategoriaIDs) {
			utils.RespondErroCampos(w, map[string]string{"categorias": "categoria inexistente"})
			return
		}
		if err := h.Repository.DefinirCategorias(h.DB, existente, categorias); err != nil {
			utils.RespondErro(w, http.StatusInternalServerError, "erro ao vincular categorias")
			return
		}
		existente.Categorias = categorias
	}

	utils.RespondJSON(w, http.StatusOK, existente)
}

// DELETE /lojas/{id} — cascata remove os produtos da loja.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if _, err := h.Repository.BuscarPorID(h.DB, uint(id)); err != nil {
		utils.RespondErro(w, http.StatusNotFound, "loja não encontrada")
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir loja")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImagem recebe multipart "imagem", grava em media/lojas/ e guarda a URL.
// POST /lojas/{id}/imagem
func (h *Handler) UploadImagem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "loja não encontrada")
		return
	}

	url, err := h.Media.Salvar(r, "imagem", "lojas")
	if err != nil {
		utils.RespondErroCampos(w, map[string]string{"imagem": err.Error()})
		return
	}
	existente.Imagem = url
	if err := h.Repository.Salvar(h.DB, existente); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar loja")
		return
	}
	utils.RespondJSON(w, http.StatusOK, existente)
}
