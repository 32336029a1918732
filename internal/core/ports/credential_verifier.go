package ports

import (
	"errors"

	"ordertrack/internal/core/domain/model/actor"
)

// ErrUnauthenticated is returned by CredentialVerifier implementations when a
// credential is missing, malformed, expired, or fails verification.
var ErrUnauthenticated = errors.New("unauthenticated")

// CredentialVerifier resolves a bearer credential into the acting subject.
// The core never issues or stores credentials; this is the single seam to the
// external credential authority.
type CredentialVerifier interface {
	// Verify returns the (subjectId, role) pair encoded in the credential, or
	// an error wrapping ErrUnauthenticated.
	Verify(token string) (actor.Actor, error)
}
