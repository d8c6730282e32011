package loja

import (
	"errors"

	"github.com/wavewhiz/api-marketplace/internal/categoria"
	"github.com/wavewhiz/api-marketplace/internal/usuario"
	"gorm.io/gorm"
)

// ErrNaoEmpreendedor sinaliza tentativa de salvar loja para um dono sem a
// role exigida.
var ErrNaoEmpreendedor = errors.New("o usuário deve ter role 'empreendedor' para criar uma loja")

// Loja pertence a exatamente um empreendedor. CNPJ aceita 11 (CPF) ou 14
// dígitos e é único quando presente; endereço inteiro é opcional.
type Loja struct {
	ID             uint                      `gorm:"primaryKey" json:"id"`
	EmpreendedorID uint                      `gorm:"not null;index" json:"empreendedor"`
	Empreendedor   usuario.Usuario           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Nome           string                    `gorm:"size:150;not null" json:"nome"`
	Descricao      string                    `json:"descricao"`
	Imagem         string                    `json:"imagem"`
	Categorias     []categoria.CategoriaLoja `gorm:"many2many:loja_categorias;constraint:OnDelete:CASCADE" json:"categorias"`
	CEP            string                    `gorm:"size:8" json:"cep"`
	Rua            string                    `gorm:"size:150" json:"rua"`
	Numero         string                    `gorm:"size:10" json:"numero"`
	Complemento    string                    `gorm:"size:100" json:"complemento"`
	CNPJ           *string                   `gorm:"size:14;uniqueIndex" json:"cnpj,omitempty"`
}

// BeforeSave valida a role do dono antes de qualquer persistência, cobrindo
// tanto a API quanto o CRUD administrativo.
func (l *Loja) BeforeSave(tx *gorm.DB) error {
	var dono usuario.Usuario
	if err := tx.First(&dono, l.EmpreendedorID).Error; err != nil {
		return err
	}
	if dono.Role != usuario.RoleEmpreendedor {
		return ErrNaoEmpreendedor
	}
	return nil
}
