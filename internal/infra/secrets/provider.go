// Package secrets contains SecretSource implementations for provider
// credential retrieval.
package secrets

import (
	"context"
	"log/slog"

	"bitelog/config"
	"bitelog/internal/domain/constants"
	"bitelog/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SourceParams holds dependencies for the secret source, injected by Fx
type SourceParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewSecretSource creates a SecretSource based on configuration
func NewSecretSource(params SourceParams) (service.SecretSource, error) {
	cfg := params.Config.Secrets
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		return nil, errors.New("secrets configuration is required")
	}

	var source service.SecretSource

	switch cfg.Provider {
	case constants.SecretsProviderGCP:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for gcp secrets provider")
		}
		logger.Info("Using Secret Manager secret source",
			slog.String("project_id", cfg.ProjectID),
		)

		source = newRuntimevarSource(cfg.ProjectID, logger)

	case constants.SecretsProviderEnv:
		logger.Info("Using environment variable secret source")

		source = newEnvSource(logger)

	default:
		return nil, errors.Errorf("unknown secrets provider: %s", cfg.Provider)
	}

	// Register lifecycle hook to close the source on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return source.Close()
		},
	})

	return source, nil
}
