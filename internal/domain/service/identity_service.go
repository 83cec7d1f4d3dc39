// Package service defines domain-level ports implemented by the infrastructure layer.
package service

import (
	"context"
)

// IdentityVerifier verifies an end user's bearer identity token and resolves
// it to a stable owner id. Implementations delegate to the external identity
// provider; a failed verification is an authentication error, never retried.
type IdentityVerifier interface {
	// VerifyIDToken validates the raw bearer token and returns the subject's
	// stable owner id.
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}
