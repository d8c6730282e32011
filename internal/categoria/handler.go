package categoria

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wavewhiz/api-marketplace/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// POST /categorias/ (staff)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var c CategoriaLoja
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if c.Nome == "" {
		utils.RespondErroCampos(w, map[string]string{"nome": "este campo é obrigatório"})
		return
	}
	c.ID = 0
	if err := h.Repo.Create(&c); err != nil {
		utils.RespondErroCampos(w, map[string]string{"nome": "categoria já existe"})
		return
	}
	utils.RespondJSON(w, http.StatusCreated, c)
}

// GET /categorias/
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.Repo.ListAll()
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar categorias")
		return
	}
	utils.RespondJSON(w, http.StatusOK, categorias)
}

// GET /categorias/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "categoria não encontrada")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

// PUT /categorias/{id} (staff)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	existente, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "categoria não encontrada")
		return
	}
	var body CategoriaLoja
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	existente.Nome = body.Nome
	if err := h.Repo.Update(existente); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar categoria")
		return
	}
	utils.RespondJSON(w, http.StatusOK, existente)
}

// DELETE /categorias/{id} (staff)
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	existente, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "categoria não encontrada")
		return
	}
	if err := h.Repo.Delete(existente); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir categoria")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
