// Command migrate re-keys legacy credential records to the current schema.
//
// Usage:
//
//	migrate dry-run   classify and report without writing
//	migrate apply     classify and write migrated records
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"bitelog/config"
	"bitelog/internal/infra/firebase"
	logs "bitelog/internal/infra/log"
	"bitelog/internal/infra/persistence/firestore"
	"bitelog/internal/usecase"
	"bitelog/internal/usecase/impl"

	"go.uber.org/fx"
)

type runParams struct {
	fx.In
	fx.Shutdowner

	Ctx       context.Context
	Logger    *slog.Logger
	Migration usecase.MigrationUsecase
}

// exitCode is set by the invoked batch before shutdown so main can report
// failure to the operator's shell.
var exitCode int

func main() {
	if len(os.Args) != 2 || (os.Args[1] != "dry-run" && os.Args[1] != "apply") {
		fmt.Fprintf(os.Stderr, "usage: %s <dry-run|apply>\n", os.Args[0])
		os.Exit(2)
	}

	dryRun := os.Args[1] == "dry-run"

	fx.New(
		fx.Supply(dryRunFlag(dryRun)),
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		fx.Invoke(
			runMigration,
		),
	).Run()

	os.Exit(exitCode)
}

type dryRunFlag bool

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firebase.NewApp,
		firestore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewCredentialRepository,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewMigrationService,
		),
	)
}

func runMigration(dryRun dryRunFlag, params runParams) {
	go func() {
		summary, err := params.Migration.Run(params.Ctx, bool(dryRun))
		if err != nil {
			params.Logger.Error("Migration run failed", slog.Any("error", err))
			exitCode = 1
		} else {
			fmt.Printf("total=%d migrated=%d skipped=%d errored=%d\n",
				summary.Total, summary.Migrated, summary.Skipped, summary.Errored)
			if summary.Errored > 0 {
				exitCode = 1
			}
		}

		if err := params.Shutdown(); err != nil {
			params.Logger.Error("Failed to shutdown gracefully", slog.Any("error", err))
			os.Exit(1)
		}
	}()
}
