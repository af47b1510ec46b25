// Package auth turns bearer tokens into domain actors for the inbound adapters.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orderlifecycle/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carried by access tokens. The subject is the actor id.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 tokens signed with a shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Parse validates tokenStr and returns the actor it identifies.
func (v *Verifier) Parse(tokenStr string) (kernel.Actor, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return kernel.Actor{}, ErrInvalidToken
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: role: %w", ErrInvalidToken, err)
	}
	actor, err := kernel.NewActor(id, role, claims.Email)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return actor, nil
}

// ParseAuthorization accepts an Authorization header value. An empty header
// yields the anonymous actor.
func (v *Verifier) ParseAuthorization(header string) (kernel.Actor, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return kernel.Anonymous(), nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return kernel.Actor{}, fmt.Errorf("%w: authorization header is not a bearer token", ErrInvalidToken)
	}
	return v.Parse(strings.TrimSpace(parts[1]))
}

// Issue signs a token for actor. Used by tests and operator tooling.
func (v *Verifier) Issue(actor kernel.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:  actor.Role().String(),
		Email: actor.Email(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

type actorKey struct{}

// WithActor stores the authenticated actor in ctx.
func WithActor(ctx context.Context, actor kernel.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor, or the anonymous actor.
func ActorFromContext(ctx context.Context) kernel.Actor {
	if actor, ok := ctx.Value(actorKey{}).(kernel.Actor); ok {
		return actor
	}
	return kernel.Anonymous()
}
