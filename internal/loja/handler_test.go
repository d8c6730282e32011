package loja

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavewhiz/api-marketplace/internal/auth"
	"github.com/wavewhiz/api-marketplace/internal/categoria"
	"github.com/wavewhiz/api-marketplace/internal/storage"
	"github.com/wavewhiz/api-marketplace/internal/usuario"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&usuario.Usuario{}, &categoria.CategoriaLoja{}, &Loja{}))
	return db
}

func novoUsuario(t *testing.T, db *gorm.DB, email, role string) *usuario.Usuario {
	t.Helper()
	u := &usuario.Usuario{Nome: "Conta " + email, Email: email, Telefone: "11999990000", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func comContexto(req *http.Request, u *usuario.Usuario) *http.Request {
	return req.WithContext(auth.ContextoComUsuario(req.Context(), u.ID, u.Role, u.IsStaff))
}

func novoHandler(t *testing.T, db *gorm.DB) *Handler {
	t.Helper()
	return NewHandler(db, storage.NewMedia(t.TempDir()))
}

func TestCriarLojaExigeRoleEmpreendedor(t *testing.T) {
	db := setupDB(t)
	h := novoHandler(t, db)
	cliente := novoUsuario(t, db, "cliente@example.com", usuario.RoleCliente)

	req := httptest.NewRequest("POST", "/lojas/", strings.NewReader(`{"nome":"Loja da Ana"}`))
	rr := httptest.NewRecorder()
	h.Criar(rr, comContexto(req, cliente))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "empreendedor")

	var n int64
	db.Model(&Loja{}).Count(&n)
	assert.Zero(t, n, "loja não pode ser criada para cliente")
}

func TestCriarLojaDonoVemDoToken(t *testing.T) {
	db := setupDB(t)
	h := novoHandler(t, db)
	dono := novoUsuario(t, db, "dono@example.com", usuario.RoleEmpreendedor)

	// corpo tentando apontar outro dono é ignorado: o campo nem existe no DTO
	body := `{"nome":"Loja da Ana","descricao":"doces","empreendedor":999}`
	req := httptest.NewRequest("POST", "/lojas/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Criar(rr, comContexto(req, dono))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var salva Loja
	require.NoError(t, db.First(&salva).Error)
	assert.Equal(t, dono.ID, salva.EmpreendedorID)
}

func TestCriarLojaNormalizaCNPJeCEP(t *testing.T) {
	db := setupDB(t)
	h := novoHandler(t, db)
	dono := novoUsuario(t, db, "dono@example.com", usuario.RoleEmpreendedor)

	body := `{"nome":"Loja","cnpj":"12.345.678/0001-95","cep":"01310-100"}`
	req := httptest.NewRequest("POST", "/lojas/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Criar(rr, comContexto(req, dono))

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var salva Loja
	require.NoError(t, db.First(&salva).Error)
	require.NotNil(t, salva.CNPJ)
	assert.Equal(t, "12345678000195", *salva.CNPJ)
	assert.Equal(t, "01310100", salva.CEP)
}

func TestCriarLojaCNPJDuplicado(t *testing.T) {
	db := setupDB(t)
	h := novoHandler(t, db)
	dono := novoUsuario(t, db, "dono@example.com", usuario.RoleEmpreendedor)

	criar := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/lojas/", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.Criar(rr, comContexto(req, dono))
		return rr
	}

	require.Equal(t, http.StatusCreated, criar(`{"nome":"A","cnpj":"12345678000195"}`).Code)
	rr := criar(`{"nome":"B","cnpj":"12.345.678/0001-95"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "CNPJ já cadastrado")
}

func TestDeletarUsuarioRemoveLojas(t *testing.T) {
	db := setupDB(t)
	dono := novoUsuario(t, db, "dono@example.com", usuario.RoleEmpreendedor)
	require.NoError(t, db.Create(&Loja{EmpreendedorID: dono.ID, Nome: "Padaria"}).Error)

	require.NoError(t, db.Delete(dono).Error)

	var n int64
	db.Model(&Loja{}).Count(&n)
	assert.Zero(t, n, "lojas caem junto com o dono")
}

func TestListarFiltraPorCategoriaEDono(t *testing.T) {
	db := setupDB(t)
	h := novoHandler(t, db)
	dono1 := novoUsuario(t, db, "um@example.com", usuario.RoleEmpreendedor)
	dono2 := novoUsuario(t, db, "dois@example.com", usuario.RoleEmpreendedor)

	alimentos := categoria.CategoriaLoja{Nome: "Alimentos"}
	roupas := categoria.CategoriaLoja{Nome: "Roupas"}
	require.NoError(t, db.Create(&alimentos).Error)
	require.NoError(t, db.Create(&roupas).Error)

	l1 := Loja{EmpreendedorID: dono1.ID, Nome: "Padaria"}
	l2 := Loja{EmpreendedorID: dono2.ID, Nome: "Boutique"}
	require.NoError(t, db.Create(&l1).Error)
	require.NoError(t, db.Create(&l2).Error)
	require.NoError(t, db.Model(&l1).Association("Categorias").Replace([]categoria.CategoriaLoja{alimentos}))
	require.NoError(t, db.Model(&l2).Association("Categorias").Replace([]categoria.CategoriaLoja{roupas}))

	listar := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/lojas/"+query, nil)
		rr := httptest.NewRecorder()
		h.Listar(rr, req)
		return rr
	}

	rr := listar("?categoria=alimentos")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Padaria")
	assert.NotContains(t, rr.Body.String(), "Boutique")

	rr = listar("?empreendedor=2")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Boutique")
	assert.NotContains(t, rr.Body.String(), "Padaria")

	rr = listar("")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Padaria")
	assert.Contains(t, rr.Body.String(), "Boutique")
}
