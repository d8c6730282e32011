package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tempo de vida dos tokens.
const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

const (
	TipoAccess  = "access"
	TipoRefresh = "refresh"
)

// Claims carrega identidade e papel do usuário dentro do token. Tipo separa
// access de refresh para que um não sirva no lugar do outro.
type Claims struct {
	UserID  uint   `json:"user_id"`
	Role    string `json:"role"`
	IsStaff bool   `json:"is_staff"`
	Tipo    string `json:"typ"`
	jwt.RegisteredClaims
}

func segredoJWT() ([]byte, error) {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	return []byte(s), nil
}

func gerarToken(tipo string, ttl time.Duration, userID uint, role string, isStaff bool) (string, error) {
	segredo, err := segredoJWT()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		Role:    role,
		IsStaff: isStaff,
		Tipo:    tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(segredo)
}

// GerarAccessToken gera um JWT HS256 de curta duração.
func GerarAccessToken(userID uint, role string, isStaff bool) (string, error) {
	return gerarToken(TipoAccess, AccessTTL, userID, role, isStaff)
}

// GerarPar gera o par access+refresh emitido no login. Nada é guardado no
// servidor: a validade é só assinatura e expiração.
func GerarPar(userID uint, role string, isStaff bool) (access, refresh string, err error) {
	if access, err = gerarToken(TipoAccess, AccessTTL, userID, role, isStaff); err != nil {
		return "", "", err
	}
	if refresh, err = gerarToken(TipoRefresh, RefreshTTL, userID, role, isStaff); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ValidarToken valida assinatura, expiração e tipo, e devolve as claims.
func ValidarToken(tokenStr, tipo string) (*Claims, error) {
	segredo, err := segredoJWT()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return segredo, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("não foi possível extrair claims")
	}
	if claims.Tipo != tipo {
		return nil, fmt.Errorf("token do tipo %q onde se esperava %q", claims.Tipo, tipo)
	}
	return claims, nil
}
