package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGerarParEValidar(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	access, refresh, err := GerarPar(42, "empreendedor", true)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := ValidarToken(access, TipoAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "empreendedor", claims.Role)
	assert.True(t, claims.IsStaff)

	claims, err = ValidarToken(refresh, TipoRefresh)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestRefreshNaoServeComoAccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	_, refresh, err := GerarPar(1, "cliente", false)
	require.NoError(t, err)

	_, err = ValidarToken(refresh, TipoAccess)
	assert.Error(t, err)
}

func TestSegredoErrado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-a")
	access, _, err := GerarPar(1, "cliente", false)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "segredo-b")
	_, err = ValidarToken(access, TipoAccess)
	assert.Error(t, err)
}

func TestSemSegredo(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GerarAccessToken(1, "cliente", false)
	assert.Error(t, err)
}
