package usuario

import "github.com/wavewhiz/api-marketplace/internal/utils"

type criarUsuarioRequest struct {
	Nome           string     `json:"nome" validate:"required"`
	Email          string     `json:"email" validate:"required,email"`
	CPF            string     `json:"cpf"`
	Telefone       string     `json:"telefone" validate:"required"`
	DataNascimento utils.Data `json:"data_nascimento"`
	Role           string     `json:"role" validate:"required,oneof=cliente empreendedor admin"`
	Senha          string     `json:"senha" validate:"required,min=6"`
	IsStaff        bool       `json:"is_staff"`
	IsSuperuser    bool       `json:"is_superuser"`
}

// Campos como ponteiro: ausentes ficam intocados (PUT e PATCH compartilham o
// mesmo contrato de atualização parcial).
type atualizarUsuarioRequest struct {
	Nome           *string     `json:"nome"`
	Email          *string     `json:"email" validate:"omitempty,email"`
	CPF            *string     `json:"cpf"`
	Telefone       *string     `json:"telefone"`
	DataNascimento *utils.Data `json:"data_nascimento"`
	Role           *string     `json:"role" validate:"omitempty,oneof=cliente empreendedor admin"`
	Senha          *string     `json:"senha" validate:"omitempty,min=6"`
	IsStaff        *bool       `json:"is_staff"`
	IsSuperuser    *bool       `json:"is_superuser"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}
