package carrinho

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wavewhiz/api-marketplace/internal/pagamento"
	"github.com/wavewhiz/api-marketplace/internal/produto"
	"github.com/wavewhiz/api-marketplace/internal/usuario"
)

// Carrinho pertence a um cliente. O método de pagamento é opcional e vira
// nulo se o método for removido do catálogo.
type Carrinho struct {
	ID                uint                       `gorm:"primaryKey" json:"id"`
	ClienteID         uint                       `gorm:"not null;index" json:"cliente"`
	Cliente           usuario.Usuario            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	MetodoPagamentoID *uint                      `json:"metodo_pagamento"`
	MetodoPagamento   *pagamento.MetodoPagamento `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CriadoEm          time.Time                  `gorm:"autoCreateTime" json:"criado_em"`
	Finalizado        bool                       `json:"finalizado"`
	Itens             []ItemCarrinho             `gorm:"foreignKey:CarrinhoID" json:"-"`
}

// Total soma os subtotais dos itens. Exige Itens carregados com Produto.
func (c *Carrinho) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Itens {
		total = total.Add(c.Itens[i].Subtotal())
	}
	return total
}

// ItemCarrinho referencia um produto dentro de um carrinho e some quando o
// carrinho ou o produto é removido.
type ItemCarrinho struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CarrinhoID uint            `gorm:"not null;index" json:"carrinho"`
	Carrinho   *Carrinho       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ProdutoID  uint            `gorm:"not null;index" json:"produto_id"`
	Produto    produto.Produto `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Quantidade uint            `gorm:"not null;default:1" json:"quantidade"`
}

func (ItemCarrinho) TableName() string { return "itens_carrinho" }

// Subtotal = quantidade × preço do produto. Exige Produto carregado.
func (i *ItemCarrinho) Subtotal() decimal.Decimal {
	return i.Produto.Preco.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}
