package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
)

// TokenClaims is the decoded payload of a session token.
type TokenClaims struct {
	Username string
	Roles    []string
	IssuedAt time.Time
	Expiry   time.Time
}

// TokenManager mints and verifies HMAC-SHA256 session tokens carrying
// {username, roles, iat, exp} claims.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the lifetime applied to minted tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Mint signs a new token for the given identity, valid for the
// configured TTL starting at now.
func (m *TokenManager) Mint(username string, roles []string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"roles":    roles,
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify checks the token signature and decodes its claims. Any parse or
// signature failure surfaces as domain.ErrNotAuthenticated; callers treat
// it as an anonymous session, never as a fault.
func (m *TokenManager) Verify(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrNotAuthenticated
	}

	out := &TokenClaims{}
	if username, ok := claims["username"].(string); ok {
		out.Username = username
	}
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				out.Roles = append(out.Roles, s)
			}
		}
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domain.ErrNotAuthenticated
	}
	out.Expiry = exp.Time

	return out, nil
}
