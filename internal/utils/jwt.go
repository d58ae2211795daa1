package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/example/retailops/internal/models"
)

type jwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionClaims is the identity a verified token carries. Role is embedded
// at issue time and stays fixed for the token's lifetime.
type SessionClaims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// GenerateToken creates a signed JWT for the provided user.
func GenerateToken(secret string, user models.User, ttl time.Duration) (string, error) {
	claims := &jwtCustomClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the embedded session claims.
func ParseToken(secret, tokenString string) (SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return SessionClaims{}, err
	}

	if claims, ok := token.Claims.(*jwtCustomClaims); ok && token.Valid {
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return SessionClaims{}, err
		}
		return SessionClaims{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
	}

	return SessionClaims{}, jwt.ErrTokenInvalidClaims
}
