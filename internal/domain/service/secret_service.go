package service

import (
	"context"
)

// SecretSource retrieves named secrets (provider client id/secret) from the
// configured secret backend. Access failures surface as-is; the caller never
// retries here.
type SecretSource interface {
	// Get returns the UTF-8 value of the named secret.
	Get(ctx context.Context, name string) (string, error)

	// Close releases any resources held by the source.
	Close() error
}
