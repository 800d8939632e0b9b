package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do token emitido no login
type Claims struct {
	ConsultorID uint `json:"consultantId"`
	jwt.RegisteredClaims
}

// Autenticador emite e valida JWT HS256 com o segredo da configuração
type Autenticador struct {
	segredo []byte
	ttl     time.Duration
	agora   func() time.Time
}

func NovoAutenticador(segredo string, ttl time.Duration) (*Autenticador, error) {
	if segredo == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Autenticador{segredo: []byte(segredo), ttl: ttl, agora: time.Now}, nil
}

// GerarToken gera um JWT com validade ttl
func (a *Autenticador) GerarToken(consultorID uint) (string, error) {
	now := a.agora()
	claims := &Claims{
		ConsultorID: consultorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(consultorID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.segredo)
}

// ValidarToken valida assinatura e expiração e retorna as claims
func (a *Autenticador) ValidarToken(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.agora),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return a.segredo, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("não foi possível extrair claims")
	}
	return claims, nil
}
