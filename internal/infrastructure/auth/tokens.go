package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chamado/internal/shared/biztime"
	"chamado/internal/shared/session"
)

type Claims struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed resume tokens, so a later
// process can continue an authenticated session without credentials.
type TokenService struct {
	secret   []byte
	expHours int
}

func NewTokenService(secret string, expHours int) *TokenService {
	if expHours <= 0 {
		expHours = 24
	}
	return &TokenService{
		secret:   []byte(secret),
		expHours: expHours,
	}
}

func (s *TokenService) Generate(identity session.Identity) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		UID:         identity.UID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
