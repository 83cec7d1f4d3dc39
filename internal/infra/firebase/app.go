// Package firebase constructs the shared Firebase admin app used for
// identity verification and the Firestore handle.
package firebase

import (
	"context"

	"bitelog/config"

	admin "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// NewApp initializes the Firebase admin app from configuration. When no
// credentials path is given the app falls back to application default
// credentials, which is the deployed (serverless) case.
func NewApp(ctx context.Context, cfg *config.Config) (*admin.App, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase configuration is required")
	}

	appCfg := &admin.Config{ProjectID: cfg.Firebase.ProjectID}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := admin.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	return app, nil
}
