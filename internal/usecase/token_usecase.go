// Package usecase defines the application's use case interfaces and DTOs.
package usecase

import (
	"context"

	"bitelog/internal/domain/entity"
)

// ExchangeInput carries a one-time authorization code from the provider's
// consent flow.
type ExchangeInput struct {
	Code string `json:"code" validate:"required"`
}

// ExchangeOutput reports the provider account the tokens were stored under.
type ExchangeOutput struct {
	ExternalID string `json:"external_id"`
}

// TokenUsecase manages the per-owner OAuth token lifecycle against the
// fitness provider: states {no-record, valid, expired}.
type TokenUsecase interface {
	// Exchange redeems an authorization code and stores the resulting
	// credential keyed by the provider account id, claimed by ownerID.
	Exchange(ctx context.Context, ownerID string, input *ExchangeInput) (*ExchangeOutput, error)

	// Refresh mints a fresh token pair from the stored refresh token. Absent
	// record is an authentication failure (the caller must re-authorize).
	Refresh(ctx context.Context, ownerID string) (*entity.Credential, error)

	// EnsureFresh returns the owner's credential with a usable access token,
	// refreshing synchronously at most once when the stored token is expired.
	EnsureFresh(ctx context.Context, ownerID string) (*entity.Credential, error)
}
