package carrinho

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wavewhiz/api-marketplace/internal/auth"
	"github.com/wavewhiz/api-marketplace/internal/utils"
)

// busca o item aplicando o mesmo filtro de visibilidade dos carrinhos: o item
// só é visível se o carrinho dele pertence ao chamador (ou se é staff).
func (h *Handler) buscarItemVisivel(r *http.Request) (*ItemCarrinho, int, string) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return nil, http.StatusBadRequest, "ID inválido"
	}
	item, err := h.Repo.FindItemByID(uint(id))
	if err != nil {
		return nil, http.StatusNotFound, "item não encontrado"
	}
	if !auth.EhStaff(r.Context()) {
		userID, _ := auth.IDDoContexto(r.Context())
		dono, err := h.Repo.FindByID(item.CarrinhoID)
		if err != nil || dono.ClienteID != userID {
			return nil, http.StatusNotFound, "item não encontrado"
		}
	}
	return item, 0, ""
}

// CriarItem adiciona um produto a um carrinho. Quantidade omitida vale 1.
// POST /itens-carrinho/
func (h *Handler) CriarItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}

	campos := map[string]string{}
	if req.Carrinho == 0 {
		campos["carrinho"] = "este campo é obrigatório"
	}
	if req.ProdutoID == 0 {
		campos["produto_id"] = "este campo é obrigatório"
	}
	quantidade := uint(1)
	if req.Quantidade != nil {
		if *req.Quantidade < 1 {
			campos["quantidade"] = "quantidade deve ser no mínimo 1"
		}
		quantidade = *req.Quantidade
	}
	if len(campos) > 0 {
		utils.RespondErroCampos(w, campos)
		return
	}

	if _, err := h.Repo.FindByID(req.Carrinho); err != nil {
		utils.RespondErroCampos(w, map[string]string{"carrinho": "carrinho inexistente"})
		return
	}
	if existe, err := h.Repo.ProdutoExiste(req.ProdutoID); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao validar produto")
		return
	} else if !existe {
		utils.RespondErroCampos(w, map[string]string{"produto_id": "produto inexistente"})
		return
	}

	item := ItemCarrinho{
		CarrinhoID: req.Carrinho,
		ProdutoID:  req.ProdutoID,
		Quantidade: quantidade,
	}
	if err := h.Repo.CreateItem(&item); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao salvar item")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, MontarItemDTO(item))
}

// ListarItens devolve os itens dos carrinhos do chamador (staff vê todos);
// aceita ?carrinho=.
// GET /itens-carrinho/
func (h *Handler) ListarItens(w http.ResponseWriter, r *http.Request) {
	cliente := uint(0)
	if !auth.EhStaff(r.Context()) {
		cliente, _ = auth.IDDoContexto(r.Context())
	}

	itens, err := h.Repo.ListItens(r.URL.Query().Get("carrinho"), cliente)
	if err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao listar itens")
		return
	}
	dtos := make([]ItemCarrinhoDTO, 0, len(itens))
	for _, i := range itens {
		dtos = append(dtos, MontarItemDTO(i))
	}
	utils.RespondJSON(w, http.StatusOK, dtos)
}

// GET /itens-carrinho/{id}
func (h *Handler) BuscarItem(w http.ResponseWriter, r *http.Request) {
	item, status, msg := h.buscarItemVisivel(r)
	if item == nil {
		utils.RespondErro(w, status, msg)
		return
	}
	utils.RespondJSON(w, http.StatusOK, MontarItemDTO(*item))
}

// AtualizarItem altera a quantidade.
// PUT/PATCH /itens-carrinho/{id}
func (h *Handler) AtualizarItem(w http.ResponseWriter, r *http.Request) {
	item, status, msg := h.buscarItemVisivel(r)
	if item == nil {
		utils.RespondErro(w, status, msg)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErro(w, http.StatusBadRequest, "payload inválido")
		return
	}
	if req.Quantidade != nil {
		if *req.Quantidade < 1 {
			utils.RespondErroCampos(w, map[string]string{"quantidade": "quantidade deve ser no mínimo 1"})
			return
		}
		item.Quantidade = *req.Quantidade
	}

	if err := h.Repo.UpdateItem(item); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao atualizar item")
		return
	}
	utils.RespondJSON(w, http.StatusOK, MontarItemDTO(*item))
}

// DELETE /itens-carrinho/{id}
func (h *Handler) DeletarItem(w http.ResponseWriter, r *http.Request) {
	item, status, msg := h.buscarItemVisivel(r)
	if item == nil {
		utils.RespondErro(w, status, msg)
		return
	}
	if err := h.Repo.DeleteItem(item); err != nil {
		utils.RespondErro(w, http.StatusInternalServerError, "erro ao excluir item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
