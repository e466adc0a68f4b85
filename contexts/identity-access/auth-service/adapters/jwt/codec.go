package jwtadapter

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "kinkeep/contexts/identity-access/auth-service/domain/errors"
	"kinkeep/contexts/identity-access/auth-service/ports"
	"kinkeep/internal/shared/authctx"
)

const birthDateLayout = "2006-01-02"

type tokenClaims struct {
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	TenantID  string `json:"tenant_id,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs session tokens with HS256 and a shared secret.
type Codec struct {
	secret []byte
	clock  ports.Clock
	parser *jwt.Parser
}

func NewCodec(secret string, clock ports.Clock) *Codec {
	return &Codec{
		secret: []byte(secret),
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (c *Codec) Issue(claims ports.SessionClaims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	if c.clock != nil {
		now = c.clock.Now().UTC()
	}
	payload := tokenClaims{
		Email:    claims.Email,
		Name:     claims.Name,
		Role:     string(claims.Role),
		TenantID: claims.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.PrincipalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if claims.BirthDate != nil {
		payload.BirthDate = claims.BirthDate.Format(birthDateLayout)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(c.secret)
}

func (c *Codec) Verify(token string) (ports.SessionClaims, error) {
	var payload tokenClaims
	parsed, err := c.parser.ParseWithClaims(token, &payload, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.SessionClaims{}, domainerrors.ErrSessionExpired
		}
		return ports.SessionClaims{}, domainerrors.ErrInvalidCredential
	}
	if !parsed.Valid || payload.Subject == "" {
		return ports.SessionClaims{}, domainerrors.ErrInvalidCredential
	}

	role, ok := authctx.ParseRole(payload.Role)
	if !ok {
		return ports.SessionClaims{}, domainerrors.ErrInvalidCredential
	}

	claims := ports.SessionClaims{
		PrincipalID: payload.Subject,
		Email:       payload.Email,
		Name:        payload.Name,
		Role:        role,
		TenantID:    payload.TenantID,
	}
	if payload.BirthDate != "" {
		birth, err := time.Parse(birthDateLayout, payload.BirthDate)
		if err != nil {
			return ports.SessionClaims{}, domainerrors.ErrInvalidCredential
		}
		claims.BirthDate = &birth
	}
	return claims, nil
}
