package produto

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/wavewhiz/api-marketplace/internal/storage"
	"github.com/wavewhiz/api-marketplace/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	Repo  *Repository
	Media *storage.Media
}

func NewHandler(db *gorm.DB, media *storage.Media) *Handler {
	return &Handler{Repo: NewRepository(db), Media: media}
}

type produtoRequest struct {
	Loja      uint            `json:"loja"`
	Nome      string          `json:"nome"`
	Preco     decimal.Decimal `json:"preco"`
	Estoque   *uint           `json:"estoque"`
	Descricao string          `json:"descricao"`
}

func (req *produtoRequest) validar() map[string]string {
	campos := map[string]string{}
	if req.Nome == "" {
		campos["nome"] = "este campo é obrigatório"
	}
	if req.Loja == 0 {
		campos["loja"] = "este campo é obrigatório"
	}
	if req.Preco.IsNegative() {
		campos["preco"] = "preço não pode ser negativo"
	}
	return campos
}

// POST /produtos/
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req produtoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if campos := req.validar(); len(campos) > 0 {
		utils.RespondErroCampos(w, campos)
		return
	}

	p := Produto{
		LojaID:    req.Loja,
		Nome:      req.Nome,
		Preco:     req.Preco.Round(2),
		Descricao: req.Descricao,
	}
	if req.Estoque != nil {
		p.Estoque = *req.Estoque
	}
	if err := h.Repo.Create(&p); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "loja inexistente")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, p)
}

// GET /produtos/ — aceita ?loja= e ?categoria=.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f := Filtros{
		Loja:      r.URL.Query().Get("loja"),
		Categoria: r.URL.Query().Get("categoria"),
	}
	produtos, err := h.Repo.List(f)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar produtos")
		return
	}
	utils.RespondJSON(w, http.StatusOK, produtos)
}

// GET /produtos/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "produto não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

// PUT /produtos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	existente, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "produto não encontrado")
		return
	}

	var req produtoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Preco.IsNegative() {
		utils.RespondErroCampos(w, map[string]string{"preco": "preço não pode ser negativo"})
		return
	}

	if req.Nome != "" {
		existente.Nome = req.Nome
	}
	if !req.Preco.IsZero() {
		existente.Preco = req.Preco.Round(2)
	}
	if req.Estoque != nil {
		existente.Estoque = *req.Estoque
	}
	if req.Descricao != "" {
		existente.Descricao = req.Descricao
	}

	if err := h.Repo.Update(existente); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar produto")
		return
	}
	utils.RespondJSON(w, http.StatusOK, existente)
}

// DELETE /produtos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	existente, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "produto não encontrado")
		return
	}
	if err := h.Repo.Delete(existente); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir produto")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /produtos/{id}/imagem
func (h *Handler) UploadImagem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	existente, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "produto não encontrado")
		return
	}

	url, err := h.Media.Salvar(r, "imagem", "produtos")
	if err != nil {
		utils.RespondErroCampos(w, map[string]string{"imagem": err.Error()})
		return
	}
	existente.Imagem = url
	if err := h.Repo.Update(existente); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar produto")
		return
	}
	utils.RespondJSON(w, http.StatusOK, existente)
}
