package middleware

import (
	"errors"
	"time"

	"Parcelo/config"
	"Parcelo/internal/domain/user"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/golang-jwt/jwt/v5"
)

type JwtService struct {
	secret      []byte
	expiresIn   time.Duration
	UserService *user.Service
}

func NewJwtService(cfg config.JWTConfig, userSvc *user.Service) (*JwtService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("JWT_SECRET não definido")
	}

	expiresIn := cfg.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 24 * time.Hour
	}

	return &JwtService{
		secret:      []byte(cfg.Secret),
		expiresIn:   expiresIn,
		UserService: userSvc,
	}, nil
}

func (s *JwtService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken returns the user id carried by a valid token.
func (s *JwtService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inesperado")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", appErrors.ErrUnauthorized.WithError(err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", appErrors.ErrUnauthorized
	}

	if _, err := pkg.ParseULID(claims.Subject); err != nil {
		return "", appErrors.ErrUnauthorized.WithError(err)
	}

	return claims.Subject, nil
}
