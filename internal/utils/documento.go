package utils

import (
	"errors"
	"strings"
)

// Mensagens alinhadas com os validadores do cadastro.
var (
	ErrCPFInvalido      = errors.New("CPF deve ter exatamente 11 dígitos numéricos")
	ErrCNPJInvalido     = errors.New("CNPJ deve ter 11 ou 14 dígitos numéricos")
	ErrTelefoneInvalido = errors.New("telefone deve conter apenas números, entre 8 e 15 dígitos")
	ErrCEPInvalido      = errors.New("CEP deve ter exatamente 8 dígitos numéricos")
)

// ApenasDigitos remove pontuação e qualquer caractere não numérico.
func ApenasDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizarCPF aceita entrada pontuada ("123.456.789-01") e devolve só os
// dígitos, exigindo exatamente 11.
func NormalizarCPF(s string) (string, error) {
	d := ApenasDigitos(s)
	if len(d) != 11 {
		return "", ErrCPFInvalido
	}
	return d, nil
}

// NormalizarCNPJ aceita CPF (11) ou CNPJ (14) pontuados.
func NormalizarCNPJ(s string) (string, error) {
	d := ApenasDigitos(s)
	if len(d) != 11 && len(d) != 14 {
		return "", ErrCNPJInvalido
	}
	return d, nil
}

func NormalizarTelefone(s string) (string, error) {
	d := ApenasDigitos(s)
	if len(d) < 8 || len(d) > 15 {
		return "", ErrTelefoneInvalido
	}
	return d, nil
}

func NormalizarCEP(s string) (string, error) {
	d := ApenasDigitos(s)
	if len(d) != 8 {
		return "", ErrCEPInvalido
	}
	return d, nil
}
