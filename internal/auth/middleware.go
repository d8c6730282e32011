package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxRole      ctxKey = "role"
	CtxIsStaff   ctxKey = "isStaff"
)

// ContextoComUsuario injeta a identidade autenticada no contexto.
func ContextoComUsuario(ctx context.Context, id uint, role string, isStaff bool) context.Context {
	ctx = context.WithValue(ctx, CtxUsuarioID, id)
	ctx = context.WithValue(ctx, CtxRole, role)
	return context.WithValue(ctx, CtxIsStaff, isStaff)
}

// IDDoContexto devolve o ID do usuário autenticado, se houver.
func IDDoContexto(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxUsuarioID).(uint)
	return id, ok
}

// RoleDoContexto devolve a role do usuário autenticado.
func RoleDoContexto(ctx context.Context) string {
	role, _ := ctx.Value(CtxRole).(string)
	return role
}

// EhStaff informa se a requisição vem de um usuário staff.
func EhStaff(ctx context.Context) bool {
	staff, _ := ctx.Value(CtxIsStaff).(bool)
	return staff
}

func extrairBearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(h, "Bearer "), true
}

// MiddlewareOpcional preenche o contexto quando um token válido acompanha a
// requisição, mas deixa passar chamadas anônimas. A exigência de autenticação
// fica a cargo da tabela de políticas por rota.
func MiddlewareOpcional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := extrairBearer(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := ValidarToken(raw, TipoAccess)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := ContextoComUsuario(r.Context(), claims.UserID, claims.Role, claims.IsStaff)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MiddlewareAutenticacao exige um access token válido.
func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		raw, ok := extrairBearer(r)
		if !ok {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		claims, err := ValidarToken(raw, TipoAccess)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := ContextoComUsuario(r.Context(), claims.UserID, claims.Role, claims.IsStaff)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
