// Package jwtauth verifies bearer tokens and resolves them to acting
// subjects. Tokens are HMAC-signed and carry the subject's identifier, role
// and email; the email is accepted but unused here.
package jwtauth

import (
	"errors"
	"fmt"
	"strings"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims is the internal claims type used for JWT parsing.
type accessClaims struct {
	jwt.RegisteredClaims
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Verifier validates HS256 access tokens against a shared secret and
// implements ports.CredentialVerifier.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a token verifier for the given signing secret.
func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Verify parses and validates the token and returns the acting subject.
// Every failure mode, from a malformed token to an unknown role, maps to
// ports.ErrUnauthenticated so callers cannot distinguish why a credential
// was rejected.
func (v *Verifier) Verify(token string) (actor.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return actor.Actor{}, fmt.Errorf("%w: token is required", ports.ErrUnauthenticated)
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ports.ErrUnauthenticated, err)
	}

	subjectID, err := kernel.UUIDFromString(claims.ID)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: subject id is invalid", ports.ErrUnauthenticated)
	}

	role, err := actor.RoleFromString(claims.Role)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: role %q is unknown", ports.ErrUnauthenticated, claims.Role)
	}

	act, err := actor.NewActor(subjectID, role)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ports.ErrUnauthenticated, err)
	}

	return act, nil
}
