package usecase

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies the opaque identity token. The token carries
// nothing but the numeric user id; HS256 with a shared secret.
type TokenService struct {
	Secret string
}

func (s *TokenService) Sign(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"id": userID,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.Secret))
}

func (s *TokenService) Verify(token string) (int64, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.Secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !parsed.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	m, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}
	id, ok := m["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("token has no user id")
	}
	return int64(id), nil
}
