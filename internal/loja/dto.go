package loja

type lojaRequest struct {
	Nome         string `json:"nome" validate:"required"`
	Descricao    string `json:"descricao"`
	CategoriaIDs []uint `json:"categorias"`
	CEP          string `json:"cep"`
	Rua          string `json:"rua"`
	Numero       string `json:"numero"`
	Complemento  string `json:"complemento"`
	CNPJ         string `json:"cnpj"`
}
