package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavewhiz/api-marketplace/internal/auth"
	"github.com/wavewhiz/api-marketplace/internal/categoria"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setup(t *testing.T) (*mux.Router, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	reg := NovoRegistro()
	reg.Registrar(Recurso{
		Nome:      "categorias",
		Modelo:    &categoria.CategoriaLoja{},
		Novo:      func() interface{} { return &categoria.CategoriaLoja{} },
		NovaLista: func() interface{} { return &[]categoria.CategoriaLoja{} },
	})
	require.NoError(t, reg.Migrar(db))

	r := mux.NewRouter()
	reg.Rotas(r, db)
	return r, db
}

func tokenDe(t *testing.T, role string, staff bool) string {
	t.Helper()
	access, err := auth.GerarAccessToken(1, role, staff)
	require.NoError(t, err)
	return access
}

func executar(r *mux.Router, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRotasExigemStaff(t *testing.T) {
	r, _ := setup(t)

	// sem token o subrouter barra antes de olhar a flag de staff
	rr := executar(r, "GET", "/admin/categorias", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = executar(r, "GET", "/admin/categorias", "", tokenDe(t, "cliente", false))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCRUDGenerico(t *testing.T) {
	r, db := setup(t)
	token := tokenDe(t, "admin", true)

	rr := executar(r, "POST", "/admin/categorias", `{"nome":"Alimentos"}`, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = executar(r, "GET", "/admin/categorias/1", "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alimentos")

	rr = executar(r, "PUT", "/admin/categorias/1", `{"nome":"Bebidas"}`, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = executar(r, "GET", "/admin/categorias", "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Bebidas")
	assert.NotContains(t, rr.Body.String(), "Alimentos")

	rr = executar(r, "DELETE", "/admin/categorias/1", "", token)
	require.Equal(t, http.StatusNoContent, rr.Code)

	var n int64
	db.Model(&categoria.CategoriaLoja{}).Count(&n)
	assert.Zero(t, n)

	rr = executar(r, "GET", "/admin/categorias/1", "", token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
