// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bitelog/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for credential persistence.
var (
	// ErrCredentialNotFound is returned when no credential record matches a lookup.
	ErrCredentialNotFound = errors.New("credential not found")
)

// CredentialRepository defines the interface for credential record storage.
// All writes funnel through Upsert, whose owners-union contract is what makes
// concurrent migration and live refresh commute safely.
type CredentialRepository interface {
	// FindByOwner retrieves the credential claimed by the given owner id via
	// the owners membership index. At most one record is expected to claim a
	// given owner; additional matches are a data-integrity condition that is
	// flagged, not resolved, by the implementation.
	FindByOwner(ctx context.Context, ownerID string) (*entity.Credential, error)

	// FindByExternalID retrieves a credential by its store key, the fitness
	// provider's account id.
	FindByExternalID(ctx context.Context, externalID string) (*entity.Credential, error)

	// Upsert atomically creates or merges the record at cred.Key. Scalar
	// token fields are overwritten; the owners field is unioned with the
	// existing set, never replaced wholesale.
	Upsert(ctx context.Context, cred *entity.Credential) error

	// ListAll reads a full snapshot of the collection. Used by the migration
	// batch; an enumeration failure is fatal to the caller.
	ListAll(ctx context.Context) ([]*entity.Credential, error)
}
