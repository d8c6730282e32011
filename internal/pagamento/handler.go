package pagamento

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

// POST /metodos-pagamento/
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var m MetodoPagamento
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if m.Nome == "" {
		utils.RespondErroCampos(w, map[string]string{"nome": "este campo é obrigatório"})
		return
	}
	m.ID = 0
	if err := h.Repo.Create(&m); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar método de pagamento")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, m)
}

// GET /metodos-pagamento/
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	metodos, err := h.Repo.ListAll()
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar métodos de pagamento")
		return
	}
	utils.RespondJSON(w, http.StatusOK, metodos)
}

// GET /metodos-pagamento/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	m, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "método de pagamento não encontrado")
		return
	}
	utils.RespondJSON(w, http.StatusOK, m)
}

// PUT /metodos-pagamento/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	existente, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "método de pagamento não encontrado")
		return
	}
	var body MetodoPagamento
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	existente.Nome = body.Nome
	if err := h.Repo.Update(existente); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar método de pagamento")
		return
	}
	utils.RespondJSON(w, http.StatusOK, existente)
}

// DELETE /metodos-pagamento/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "ID inválido")
		return
	}
	existente, err := h.Repo.FindByID(uint(id))
	if err != nil {
		utils.RespondErro(w, http.StatusNotFound, "método de pagamento não encontrado")
		return
	}
	if err := h.Repo.Delete(existente); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir método de pagamento")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
