package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobtracker/backend/internal/models"
)

// Identity is the caller resolved from a bearer token: who is making the
// request and with which role. Handlers read it from the request context,
// never from request input.
type Identity struct {
	UserID   int64
	Username string
	Role     models.Role
}

func issueToken(secret string, duration time.Duration, u *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     u.Username,
		"user_id": u.ID,
		"role":    string(u.Role),
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(duration).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// parseIdentity validates a signed token and extracts the caller identity.
// It is side-effect-free: bad signature, wrong algorithm, malformed claims
// and expiry all come back as plain errors.
func parseIdentity(secret, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	ident := &Identity{}
	if sub, ok := claims["sub"].(string); ok {
		ident.Username = sub
	}
	if ident.Username == "" {
		return nil, fmt.Errorf("missing sub claim")
	}

	// JSON numbers decode as float64
	if id, ok := claims["user_id"].(float64); ok {
		ident.UserID = int64(id)
	}
	if ident.UserID <= 0 {
		return nil, fmt.Errorf("missing user_id claim")
	}

	role, _ := claims["role"].(string)
	ident.Role = models.Role(role)
	if !ident.Role.Valid() {
		return nil, fmt.Errorf("missing role claim")
	}

	return ident, nil
}
