package usecase

import (
	"context"
)

// MigrationSummary is the three-counter result of a migration batch run.
type MigrationSummary struct {
	Total    int `json:"total"`
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
	Errored  int `json:"errored"`
}

// MigrationUsecase re-keys legacy credential records to the current schema.
// The batch is idempotent and safe to run concurrently with live traffic; a
// dry run performs identical classification with the write step suppressed.
type MigrationUsecase interface {
	Run(ctx context.Context, dryRun bool) (*MigrationSummary, error)
}
