package carrinho

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wavewhiz/api-marketplace/internal/auth"
	"github.com/wavewhiz/api-marketplace/internal/pagamento"
	"github.com/wavewhiz/api-marketplace/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	Repo    *Repository
	Metodos *pagamento.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db), Metodos: pagamento.NewRepository(db)}
}

// carrega o carrinho aplicando a visibilidade: não-staff só enxerga os
// próprios, então ID alheio resulta em 404.
func (h *Handler) buscarVisivel(r *http.Request) (*Carrinho, int, string) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return nil, http.StatusBadRequest, "ID inválido"
	}
	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		return nil, http.StatusNotFound, "carrinho não encontrado"
	}
	userID, _ := auth.IDDoContexto(r.Context())
	if !auth.EhStaff(r.Context()) && c.ClienteID != userID {
		return nil, http.StatusNotFound, "carrinho não encontrado"
	}
	return c, 0, ""
}

// Criar abre um carrinho para o cliente autenticado. O dono vem do token.
// POST /carrinhos/
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.IDDoContexto(r.Context())

	var req criarCarrinhoRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
			return
		}
	}
	if req.MetodoPagamento != nil {
		if _, err := h.Metodos.FindByID(*req.MetodoPagamento); err != nil {
			utils.RespondErroCampos(w, map[string]string{"metodo_pagamento": "método de pagamento inexistente"})
			return
		}
	}

	c := Carrinho{ClienteID: userID, MetodoPagamentoID: req.MetodoPagamento}
	if err := h.Repo.Create(&c); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao criar carrinho")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, MontarCarrinhoDTO(c))
}

// Listar devolve os carrinhos do cliente; staff vê todos e pode filtrar por
// ?cliente=.
// GET /carrinhos/
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.IDDoContexto(r.Context())

	cliente := userID
	if auth.EhStaff(r.Context()) {
		cliente = 0
		if param := r.URL.Query().Get("cliente"); param != "" {
			id, err := strconv.Atoi(param)
			if err != nil {
				utils.RespondErro(w, http.StatusBadRequest, "filtro cliente inválido")
				return
			}
			cliente = uint(id)
		}
	}

	carrinhos, err := h.Repo.ListByCliente(cliente)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar carrinhos")
		return
	}
	dtos := make([]CarrinhoDTO, 0, len(carrinhos))
	for _, c := range carrinhos {
		dtos = append(dtos, MontarCarrinhoDTO(c))
	}
	utils.RespondJSON(w, http.StatusOK, dtos)
}

// GET /carrinhos/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	c, status, msg := h.buscarVisivel(r)
	if c == nil {
		utils.RespondErro(w, status, msg)
		return
	}
	utils.RespondJSON(w, http.StatusOK, MontarCarrinhoDTO(*c))
}

// Atualizar troca o método de pagamento e/ou finaliza o carrinho. Finalizar
// exige método de pagamento definido; fora isso não há máquina de estados.
// PUT/PATCH /carrinhos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	c, status, msg := h.buscarVisivel(r)
	if c == nil {
		utils.RespondErro(w, status, msg)
		return
	}

	var req atualizarCarrinhoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	if req.MetodoPagamento != nil {
		if _, err := h.Metodos.FindByID(*req.MetodoPagamento); err != nil {
			utils.RespondErroCampos(w, map[string]string{"metodo_pagamento": "método de pagamento inexistente"})
			return
		}
		c.MetodoPagamentoID = req.MetodoPagamento
	}
	if req.Finalizado != nil {
		if *req.Finalizado && c.MetodoPagamentoID == nil {
			utils.RespondErroCampos(w, map[string]string{"finalizado": "defina um método de pagamento antes de finalizar"})
			return
		}
		c.Finalizado = *req.Finalizado
	}

	if err := h.Repo.Update(c); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar carrinho")
		return
	}
	utils.RespondJSON(w, http.StatusOK, MontarCarrinhoDTO(*c))
}

// DELETE /carrinhos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	c, status, msg := h.buscarVisivel(r)
	if c == nil {
		utils.RespondErro(w, status, msg)
		return
	}
	if err := h.Repo.Delete(c); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir carrinho")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
