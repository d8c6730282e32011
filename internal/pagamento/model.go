package pagamento

// MetodoPagamento é uma opção de pagamento referenciada por carrinhos; tem
// ciclo de vida independente.
type MetodoPagamento struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:40;not null" json:"nome"`
}

func (MetodoPagamento) TableName() string { return "metodos_pagamento" }
