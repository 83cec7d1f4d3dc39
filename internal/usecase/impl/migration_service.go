package impl

import (
	"context"
	"log/slog"

	"bitelog/internal/domain/entity"
	"bitelog/internal/domain/repository"
	"bitelog/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// migrationService implements the MigrationUsecase interface. It re-keys
// legacy credential records (keyed by owner id, scalar owner field) to the
// current schema (keyed by provider account id, set-valued owners) through
// the same union-merge upsert the live path uses, so a batch run commutes
// with concurrent refreshes.
type migrationService struct {
	credRepo repository.CredentialRepository
	logger   *slog.Logger
}

// MigrationServiceParams holds dependencies for the migration service, injected by Fx.
type MigrationServiceParams struct {
	fx.In

	CredRepo repository.CredentialRepository
	Logger   *slog.Logger
}

// NewMigrationService is the constructor for migrationService.
func NewMigrationService(params MigrationServiceParams) usecase.MigrationUsecase {
	return &migrationService{
		credRepo: params.CredRepo,
		logger:   params.Logger,
	}
}

// Run migrates every legacy record in one pass over a full snapshot of the
// collection. Source records are never deleted; re-running is idempotent
// because the owners union and the scalar copy converge on the same state.
// Per-record failures are counted and logged without aborting the batch; a
// failure to enumerate the collection at all is fatal.
func (srv *migrationService) Run(ctx context.Context, dryRun bool) (*usecase.MigrationSummary, error) {
	creds, err := srv.credRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate credential records")
	}

	summary := &usecase.MigrationSummary{}

	for _, cred := range creds {
		summary.Total++

		switch cred.Classify() {
		case entity.SchemaCurrent:
			summary.Skipped++
			srv.logger.Debug("Record already on current schema, skipping",
				slog.String("key", cred.Key),
			)

		case entity.SchemaIncomplete:
			summary.Skipped++
			srv.logger.Warn("Record incomplete, skipping",
				slog.String("key", cred.Key),
				slog.Bool("hasOwner", cred.Owner != ""),
				slog.Bool("hasExternalID", cred.ExternalID != ""),
			)

		case entity.SchemaLegacy:
			if err := srv.migrate(ctx, cred, dryRun); err != nil {
				summary.Errored++
				srv.logger.Error("Failed to migrate record",
					slog.String("key", cred.Key),
					slog.Any("error", err),
				)

				continue
			}
			summary.Migrated++
		}
	}

	srv.logger.Info("Migration run complete",
		slog.Bool("dryRun", dryRun),
		slog.Int("total", summary.Total),
		slog.Int("migrated", summary.Migrated),
		slog.Int("skipped", summary.Skipped),
		slog.Int("errored", summary.Errored),
	)

	return summary, nil
}

// migrate builds the current-schema record for a legacy source and applies it
// through the union-merge upsert. Classification and logging are shared with
// dry-run mode; only the write is suppressed, so a dry run's output exactly
// predicts a real run.
func (srv *migrationService) migrate(ctx context.Context, cred *entity.Credential, dryRun bool) error {
	srv.logger.Info("Migrating legacy record",
		slog.String("from", cred.Key),
		slog.String("to", cred.ExternalID),
		slog.String("owner", cred.Owner),
		slog.Bool("dryRun", dryRun),
	)

	if dryRun {
		return nil
	}

	target := &entity.Credential{
		Key:          cred.ExternalID,
		ExternalID:   cred.ExternalID,
		Owners:       []string{cred.Owner},
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		ExpiresAt:    cred.ExpiresAt,
	}

	return srv.credRepo.Upsert(ctx, target)
}
