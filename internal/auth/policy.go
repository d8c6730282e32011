package auth

import "net/http"

// Acao é uma operação CRUD sobre uma entidade.
type Acao string

const (
	AcaoCriar     Acao = "criar"
	AcaoListar    Acao = "listar"
	AcaoVer       Acao = "ver"
	AcaoAtualizar Acao = "atualizar"
	AcaoDeletar   Acao = "deletar"
)

// Capacidade é o nível mínimo exigido para executar uma ação.
type Capacidade int

const (
	Publico Capacidade = iota
	Autenticado
	Staff
)

// Politica é a tabela explícita (entidade, ação) → capacidade, avaliada de
// forma uniforme por Exigir. Os handlers aplicam por cima os filtros de
// propriedade (dono da loja, cliente do carrinho, o próprio usuário).
//
// produto e metodo-pagamento ficam públicos em todas as ações de propósito:
// é o comportamento da API original, mantido como lacuna conhecida em vez de
// corrigido silenciosamente.
var Politica = map[string]map[Acao]Capacidade{
	"usuario": {
		AcaoCriar:     Publico,
		AcaoListar:    Staff,
		AcaoVer:       Autenticado,
		AcaoAtualizar: Autenticado,
		AcaoDeletar:   Staff,
	},
	"loja": {
		AcaoCriar:     Autenticado,
		AcaoListar:    Publico,
		AcaoVer:       Publico,
		AcaoAtualizar: Autenticado,
		AcaoDeletar:   Autenticado,
	},
	"produto": {
		AcaoCriar:     Publico,
		AcaoListar:    Publico,
		AcaoVer:       Publico,
		AcaoAtualizar: Publico,
		AcaoDeletar:   Publico,
	},
	"metodo-pagamento": {
		AcaoCriar:     Publico,
		AcaoListar:    Publico,
		AcaoVer:       Publico,
		AcaoAtualizar: Publico,
		AcaoDeletar:   Publico,
	},
	"carrinho": {
		AcaoCriar:     Autenticado,
		AcaoListar:    Autenticado,
		AcaoVer:       Autenticado,
		AcaoAtualizar: Autenticado,
		AcaoDeletar:   Autenticado,
	},
	"item-carrinho": {
		AcaoCriar:     Autenticado,
		AcaoListar:    Autenticado,
		AcaoVer:       Autenticado,
		AcaoAtualizar: Autenticado,
		AcaoDeletar:   Autenticado,
	},
	"categoria": {
		AcaoCriar:     Staff,
		AcaoListar:    Publico,
		AcaoVer:       Publico,
		AcaoAtualizar: Staff,
		AcaoDeletar:   Staff,
	},
}

// Exigir devolve o middleware que aplica a política da entidade/ação. Deve
// rodar depois de MiddlewareOpcional, que popula o contexto.
func Exigir(entidade string, acao Acao) func(http.Handler) http.Handler {
	capacidade := Staff
	if acoes, ok := Politica[entidade]; ok {
		if c, ok := acoes[acao]; ok {
			capacidade = c
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || capacidade == Publico {
				next.ServeHTTP(w, r)
				return
			}
			_, autenticado := IDDoContexto(r.Context())
			if !autenticado {
				http.Error(w, "Token ausente", http.StatusUnauthorized)
				return
			}
			if capacidade == Staff && !EhStaff(r.Context()) {
				http.Error(w, "Acesso restrito a staff", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff protege sub-rotas administrativas inteiras.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IDDoContexto(r.Context()); !ok {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		if !EhStaff(r.Context()) {
			http.Error(w, "Acesso restrito a staff", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
