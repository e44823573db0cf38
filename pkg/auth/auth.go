// Package auth provides password hashing and remember-me cookie tokens.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/ordercrm/config"
)

// RememberCookieName is the cookie carrying the signed remember-me token.
const RememberCookieName = "ordercrm_remember"

// RememberTTL is how long a remember-me token stays valid.
const RememberTTL = 30 * 24 * time.Hour

// RememberClaims is the typed remember-me token payload.
type RememberClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.AppKey())
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NewRememberToken creates a signed token restoring the user's session
// after the session cookie expires.
func NewRememberToken(userID uint, role string) (string, error) {
	claims := RememberClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(RememberTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ParseRememberToken validates a remember-me token string.
func ParseRememberToken(t string) (*RememberClaims, error) {
	token, err := jwt.ParseWithClaims(t, &RememberClaims{}, func(*jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*RememberClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
