package carrinho

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wavewhiz/api-marketplace/internal/produto"
)

// DTOs de leitura: item carrega o produto embutido e o subtotal; carrinho
// carrega os itens e o total derivado.

type ItemCarrinhoDTO struct {
	ID         uint            `json:"id"`
	Carrinho   uint            `json:"carrinho"`
	Produto    produto.Produto `json:"produto"`
	Quantidade uint            `json:"quantidade"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type CarrinhoDTO struct {
	ID              uint              `json:"id"`
	Cliente         uint              `json:"cliente"`
	MetodoPagamento *uint             `json:"metodo_pagamento"`
	Itens           []ItemCarrinhoDTO `json:"itens"`
	Total           decimal.Decimal   `json:"total"`
	Finalizado      bool              `json:"finalizado"`
	CriadoEm        time.Time         `json:"criado_em"`
}

func MontarItemDTO(i ItemCarrinho) ItemCarrinhoDTO {
	return ItemCarrinhoDTO{
		ID:         i.ID,
		Carrinho:   i.CarrinhoID,
		Produto:    i.Produto,
		Quantidade: i.Quantidade,
		Subtotal:   i.Subtotal(),
	}
}

func MontarCarrinhoDTO(c Carrinho) CarrinhoDTO {
	itens := make([]ItemCarrinhoDTO, 0, len(c.Itens))
	for _, i := range c.Itens {
		itens = append(itens, MontarItemDTO(i))
	}
	return CarrinhoDTO{
		ID:              c.ID,
		Cliente:         c.ClienteID,
		MetodoPagamento: c.MetodoPagamentoID,
		Itens:           itens,
		Total:           c.Total(),
		Finalizado:      c.Finalizado,
		CriadoEm:        c.CriadoEm,
	}
}

type criarCarrinhoRequest struct {
	MetodoPagamento *uint `json:"metodo_pagamento"`
}

type atualizarCarrinhoRequest struct {
	MetodoPagamento *uint `json:"metodo_pagamento"`
	Finalizado      *bool `json:"finalizado"`
}

type itemRequest struct {
	Carrinho   uint  `json:"carrinho"`
	ProdutoID  uint  `json:"produto_id"`
	Quantidade *uint `json:"quantidade"`
}
