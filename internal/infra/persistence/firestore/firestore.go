// Package firestore contains the concrete implementation of the persistence
// layer using Cloud Firestore.
package firestore

import (
	"context"
	"log/slog"

	"bitelog/internal/errors"

	"cloud.google.com/go/firestore"
	admin "firebase.google.com/go/v4"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	App    *admin.App
	Logger *slog.Logger
}

// New creates the Firestore client from the Firebase admin app
func New(params Params) (*firestore.Client, error) {
	client, err := params.App.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Closing Firestore client")

			return client.Close()
		},
	})

	return client, nil
}
