package usuario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavewhiz/api-marketplace/internal/auth"
	"github.com/wavewhiz/api-marketplace/internal/utils"
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
	require.NoError(t, db.AutoMigrate(&Usuario{}))
	return db
}

func criarConta(t *testing.T, db *gorm.DB, email, senha, role string, staff bool) *Usuario {
	t.Helper()
	hash, err := utils.HashSenha(senha)
	require.NoError(t, err)
	cpf := utils.ApenasDigitos("99988877766")
	u := &Usuario{
		Nome:     "Conta " + email,
		Email:    email,
		CPF:      nil,
		Telefone: "11999990000",
		Role:     role,
		IsStaff:  staff,
		Senha:    hash,
	}
	// CPF único por conta: deriva do tamanho da tabela.
	var n int64
	db.Model(&Usuario{}).Count(&n)
	derivado := cpf[:10] + string(rune('0'+n%10))
	u.CPF = &derivado
	require.NoError(t, db.Create(u).Error)
	return u
}

func comContexto(req *http.Request, u *Usuario) *http.Request {
	return req.WithContext(auth.ContextoComUsuario(req.Context(), u.ID, u.Role, u.IsStaff))
}

func TestCriarNormalizaCPF(t *testing.T) {
	h := NewHandler(setupDB(t))

	body := `{"nome":"Ana","email":"ana@example.com","cpf":"123.456.789-01","telefone":"(11) 99999-0000","data_nascimento":"01/02/1990","role":"cliente","senha":"segredo1","is_staff":true,"is_superuser":true}`
	req := httptest.NewRequest("POST", "/usuarios/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Criar(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var salvo Usuario
	require.NoError(t, h.DB.Where("email = ?", "ana@example.com").First(&salvo).Error)
	require.NotNil(t, salvo.CPF)
	assert.Equal(t, "12345678901", *salvo.CPF)
	assert.Equal(t, "11999990000", salvo.Telefone)
	// cadastro anônimo nunca ganha privilégio
	assert.False(t, salvo.IsStaff)
	assert.False(t, salvo.IsSuperuser)
	assert.NotContains(t, rr.Body.String(), "senha")
}

func TestCriarCPFComDezDigitos(t *testing.T) {
	h := NewHandler(setupDB(t))

	body := `{"nome":"Ana","email":"ana@example.com","cpf":"123.456.789-0","telefone":"11999990000","role":"cliente","senha":"segredo1"}`
	req := httptest.NewRequest("POST", "/usuarios/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Criar(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "cpf")
}

func TestCriarCPFDuplicado(t *testing.T) {
	h := NewHandler(setupDB(t))

	primeiro := `{"nome":"Ana","email":"ana@example.com","cpf":"12345678901","telefone":"11999990000","role":"cliente","senha":"segredo1"}`
	req := httptest.NewRequest("POST", "/usuarios/", strings.NewReader(primeiro))
	rr := httptest.NewRecorder()
	h.Criar(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	// mesmo CPF com outra pontuação colide
	segundo := `{"nome":"Bia","email":"bia@example.com","cpf":"123.456.789-01","telefone":"11999990001","role":"cliente","senha":"segredo1"}`
	req = httptest.NewRequest("POST", "/usuarios/", strings.NewReader(segundo))
	rr = httptest.NewRecorder()
	h.Criar(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "CPF já cadastrado")
}

func TestCriarStaffProvisionaFlags(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)
	admin := criarConta(t, db, "admin@example.com", "segredo1", RoleAdmin, true)

	body := `{"nome":"Op","email":"op@example.com","cpf":"11122233344","telefone":"11999990000","role":"admin","senha":"segredo1","is_staff":true}`
	req := comContexto(httptest.NewRequest("POST", "/usuarios/", strings.NewReader(body)), admin)
	rr := httptest.NewRecorder()
	h.Criar(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var salvo Usuario
	require.NoError(t, db.Where("email = ?", "op@example.com").First(&salvo).Error)
	assert.True(t, salvo.IsStaff)
}

func TestRoleDesconhecidaNaoPersiste(t *testing.T) {
	db := setupDB(t)

	// vale para qualquer caminho de escrita, não só o cadastro via DTO
	err := db.Create(&Usuario{Nome: "X", Email: "x@example.com", Role: "gerente"}).Error
	assert.ErrorIs(t, err, ErrRoleInvalida)

	var n int64
	db.Model(&Usuario{}).Count(&n)
	assert.Zero(t, n)
}

func TestObterTokenErroGenerico(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)
	criarConta(t, db, "ana@example.com", "senha-certa", RoleCliente, false)

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/token/", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.ObterToken(rr, req)
		return rr
	}

	senhaErrada := login(`{"email":"ana@example.com","senha":"senha-errada"}`)
	emailDesconhecido := login(`{"email":"ninguem@example.com","senha":"tanto-faz"}`)

	assert.Equal(t, http.StatusBadRequest, senhaErrada.Code)
	assert.Equal(t, http.StatusBadRequest, emailDesconhecido.Code)
	// mesmo corpo nos dois casos: nada de enumeração de contas
	assert.Equal(t, senhaErrada.Body.String(), emailDesconhecido.Body.String())
}

func TestObterTokenERefresh(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	db := setupDB(t)
	h := NewHandler(db)
	conta := criarConta(t, db, "ana@example.com", "senha-certa", RoleCliente, false)

	req := httptest.NewRequest("POST", "/api/token/", strings.NewReader(`{"email":"ana@example.com","senha":"senha-certa"}`))
	rr := httptest.NewRecorder()
	h.ObterToken(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var par tokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &par))
	require.NotEmpty(t, par.Access)
	require.NotEmpty(t, par.Refresh)

	claims, err := auth.ValidarToken(par.Access, auth.TipoAccess)
	require.NoError(t, err)
	assert.Equal(t, conta.ID, claims.UserID)

	// troca refresh por novo access
	corpo, _ := json.Marshal(refreshRequest{Refresh: par.Refresh})
	req = httptest.NewRequest("POST", "/api/token/refresh/", bytes.NewReader(corpo))
	rr = httptest.NewRecorder()
	h.AtualizarToken(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var novo tokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &novo))
	_, err = auth.ValidarToken(novo.Access, auth.TipoAccess)
	assert.NoError(t, err)

	// access não serve de refresh
	corpo, _ = json.Marshal(refreshRequest{Refresh: par.Access})
	req = httptest.NewRequest("POST", "/api/token/refresh/", bytes.NewReader(corpo))
	rr = httptest.NewRecorder()
	h.AtualizarToken(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAtualizarOutroIDAplicaNoProprio(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)
	ana := criarConta(t, db, "ana@example.com", "segredo1", RoleCliente, false)
	bia := criarConta(t, db, "bia@example.com", "segredo1", RoleCliente, false)

	req := httptest.NewRequest("PUT", "/usuarios/2/", strings.NewReader(`{"nome":"Trocado"}`))
	req = mux.SetURLVars(comContexto(req, ana), map[string]string{"id": "2"})
	rr := httptest.NewRecorder()
	h.Atualizar(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var depoisAna, depoisBia Usuario
	require.NoError(t, db.First(&depoisAna, ana.ID).Error)
	require.NoError(t, db.First(&depoisBia, bia.ID).Error)
	assert.Equal(t, "Trocado", depoisAna.Nome, "alvo deve ser o próprio chamador")
	assert.Equal(t, bia.Nome, depoisBia.Nome, "registro alheio fica intocado")
}

func TestAtualizarEmailDuplicado(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)
	ana := criarConta(t, db, "ana@example.com", "segredo1", RoleCliente, false)
	criarConta(t, db, "bia@example.com", "segredo1", RoleCliente, false)

	atualizar := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("PUT", "/usuarios/1/", strings.NewReader(body))
		req = mux.SetURLVars(comContexto(req, ana), map[string]string{"id": "1"})
		rr := httptest.NewRecorder()
		h.Atualizar(rr, req)
		return rr
	}

	rr := atualizar(`{"email":"bia@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "e-mail já cadastrado")

	// o próprio e-mail não colide consigo mesmo
	rr = atualizar(`{"email":"ana@example.com"}`)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestAtualizarStaffAlcancaOutro(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)
	admin := criarConta(t, db, "admin@example.com", "segredo1", RoleAdmin, true)
	bia := criarConta(t, db, "bia@example.com", "segredo1", RoleCliente, false)

	req := httptest.NewRequest("PUT", "/usuarios/2/", strings.NewReader(`{"nome":"Trocado"}`))
	req = mux.SetURLVars(comContexto(req, admin), map[string]string{"id": "2"})
	rr := httptest.NewRecorder()
	h.Atualizar(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var depois Usuario
	require.NoError(t, db.First(&depois, bia.ID).Error)
	assert.Equal(t, "Trocado", depois.Nome)
}

func TestBuscarOutroUsuarioDevolve404(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)
	ana := criarConta(t, db, "ana@example.com", "segredo1", RoleCliente, false)
	bia := criarConta(t, db, "bia@example.com", "segredo1", RoleCliente, false)

	req := httptest.NewRequest("GET", "/usuarios/2/", nil)
	req = mux.SetURLVars(comContexto(req, ana), map[string]string{"id": "2"})
	rr := httptest.NewRecorder()
	h.Buscar(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// o próprio registro continua acessível
	req = httptest.NewRequest("GET", "/usuarios/2/", nil)
	req = mux.SetURLVars(comContexto(req, bia), map[string]string{"id": "2"})
	rr = httptest.NewRecorder()
	h.Buscar(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDeletar(t *testing.T) {
	db := setupDB(t)
	h := NewHandler(db)
	conta := criarConta(t, db, "ana@example.com", "segredo1", RoleCliente, false)

	req := httptest.NewRequest("DELETE", "/usuarios/1/", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.Deletar(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	err := db.First(&Usuario{}, conta.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
