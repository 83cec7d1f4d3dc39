package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"bitelog/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/runtimevar"

	// Registers the gcpsecretmanager:// URL scheme.
	_ "gocloud.dev/runtimevar/gcpsecretmanager"
)

// runtimevarSource retrieves secrets from Google Secret Manager through the
// gocloud runtimevar portable API. Variables are opened lazily and cached for
// the lifetime of the source; IAM and availability failures pass through
// unretried.
type runtimevarSource struct {
	projectID string
	logger    *slog.Logger

	mu   sync.Mutex
	vars map[string]*runtimevar.Variable
}

func newRuntimevarSource(projectID string, logger *slog.Logger) service.SecretSource {
	return &runtimevarSource{
		projectID: projectID,
		logger:    logger,
		vars:      make(map[string]*runtimevar.Variable),
	}
}

// Get returns the latest value of the named secret.
func (s *runtimevarSource) Get(ctx context.Context, name string) (string, error) {
	variable, err := s.openVariable(ctx, name)
	if err != nil {
		return "", err
	}

	snapshot, err := variable.Latest(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read secret %s", name)
	}

	value, ok := snapshot.Value.(string)
	if !ok {
		return "", errors.Errorf("secret %s is not a string value", name)
	}

	return value, nil
}

func (s *runtimevarSource) openVariable(ctx context.Context, name string) (*runtimevar.Variable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if variable, ok := s.vars[name]; ok {
		return variable, nil
	}

	url := fmt.Sprintf("gcpsecretmanager://projects/%s/secrets/%s?decoder=string", s.projectID, name)
	variable, err := runtimevar.OpenVariable(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open secret %s", name)
	}

	s.vars[name] = variable
	s.logger.Debug("Opened secret variable", slog.String("secret", name))

	return variable, nil
}

// Close closes all opened variables.
func (s *runtimevarSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for name, variable := range s.vars {
		if err := variable.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "failed to close secret %s", name)
		}
		delete(s.vars, name)
	}

	return firstErr
}
