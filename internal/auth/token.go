package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer identifies tokens minted by this service.
const Issuer = "inkwell-api"

var (
	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid indicates a bad signature, malformed token, or wrong signing method.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims are the assertions embedded in an identity token.
type Claims struct {
	jwt.RegisteredClaims
	Email         string      `json:"email"`
	ProfileImgURL string      `json:"profileImgURL"`
	Role          models.Role `json:"role"`
}

// UserID parses the subject claim back into a user ID.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", ErrTokenInvalid, c.Subject)
	}
	return uint(id), nil
}

// IssueToken signs a token asserting the user's identity, expiring after ttl.
func IssueToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("token secret not configured")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:         user.Email,
		ProfileImgURL: user.ProfileImgURL,
		Role:          user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the token's signature and expiry and returns its claims.
// Failures are normalized to ErrTokenExpired or ErrTokenInvalid; the wrapped
// cause is retained for logging.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
