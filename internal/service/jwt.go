package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chatcode-io/auth-service/internal/models"
)

// Claims represents JWT token claims.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	IsCreator bool   `json:"is_creator"`
	jwt.RegisteredClaims
}

// JWTService defines JWT token operations. Tokens are stateless: validity
// is determined purely by signature and expiry at request time.
type JWTService interface {
	Generate(user *models.User) (string, error)
	Validate(tokenString string) (*Claims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a new JWTService instance.
func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtService) Generate(user *models.User) (string, error) {
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		IsCreator: user.IsCreator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
