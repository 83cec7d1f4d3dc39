package secrets

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"bitelog/internal/domain/service"

	"github.com/pkg/errors"
)

// envSource resolves secret names to environment variables for local
// development: "fitbit-client-id" is read from FITBIT_CLIENT_ID.
type envSource struct {
	logger *slog.Logger
}

func newEnvSource(logger *slog.Logger) service.SecretSource {
	return &envSource{logger: logger}
}

// Get returns the environment variable matching the secret name.
func (s *envSource) Get(_ context.Context, name string) (string, error) {
	key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))

	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", errors.Errorf("secret %s not set (expected env var %s)", name, key)
	}

	return value, nil
}

// Close is a no-op for the environment source.
func (s *envSource) Close() error {
	return nil
}
