package produto

import (
	"github.com/shopspring/decimal"
	"github.com/wavewhiz/api-marketplace/internal/loja"
)

// Produto pertence a exatamente uma loja e some junto com ela. Preço é
// decimal fixo com 2 casas; estoque nunca fica negativo.
type Produto struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	LojaID    uint            `gorm:"not null;index" json:"loja"`
	Loja      loja.Loja       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Nome      string          `gorm:"size:150;not null" json:"nome"`
	Preco     decimal.Decimal `gorm:"type:decimal(10,2)" json:"preco"`
	Estoque   uint            `json:"estoque"`
	Imagem    string          `json:"imagem"`
	Descricao string          `json:"descricao"`
}
