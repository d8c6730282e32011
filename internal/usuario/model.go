package usuario

import (
	"errors"
	"time"

	"github.com/wavewhiz/api-marketplace/internal/utils"
	"gorm.io/gorm"
)

// Roles aceitas no cadastro.
const (
	RoleCliente      = "cliente"
	RoleEmpreendedor = "empreendedor"
	RoleAdmin        = "admin"
)

var ErrRoleInvalida = errors.New("role deve ser cliente, empreendedor ou admin")

// Usuario é a conta que loga por e-mail. O CPF é único quando presente e
// obrigatório para quem não é superusuário; fica como ponteiro para que a
// ausência não colida no índice único.
type Usuario struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Nome           string     `gorm:"size:150;not null" json:"nome"`
	Email          string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	CPF            *string    `gorm:"size:11;uniqueIndex" json:"cpf,omitempty"`
	Telefone       string     `gorm:"size:15" json:"telefone"`
	DataNascimento utils.Data `json:"data_nascimento"`
	Role           string     `gorm:"size:20;not null" json:"role"`
	IsStaff        bool       `json:"is_staff"`
	IsSuperuser    bool       `json:"is_superuser"`
	Senha          string     `gorm:"size:100" json:"-"`
	CriadoEm       time.Time  `gorm:"autoCreateTime" json:"criado_em"`
}

func RoleValida(role string) bool {
	return role == RoleCliente || role == RoleEmpreendedor || role == RoleAdmin
}

// BeforeSave barra roles desconhecidas em qualquer caminho de persistência,
// inclusive o CRUD administrativo que decodifica o modelo cru.
func (u *Usuario) BeforeSave(tx *gorm.DB) error {
	if !RoleValida(u.Role) {
		return ErrRoleInvalida
	}
	return nil
}
