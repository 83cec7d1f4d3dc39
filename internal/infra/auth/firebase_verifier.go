// Package auth contains identity verifier implementations.
package auth

import (
	"context"
	"log/slog"

	"bitelog/internal/domain/service"

	admin "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// firebaseVerifier verifies bearer tokens against Firebase Auth and resolves
// them to the subject uid used as the owner id.
type firebaseVerifier struct {
	client *auth.Client
	logger *slog.Logger
}

// NewFirebaseVerifier creates an identity verifier backed by Firebase Auth.
func NewFirebaseVerifier(ctx context.Context, app *admin.App, logger *slog.Logger) (service.IdentityVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &firebaseVerifier{
		client: client,
		logger: logger,
	}, nil
}

// VerifyIDToken validates the raw bearer token and returns the subject's uid.
func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", errors.Wrap(err, "failed to verify ID token")
	}

	v.logger.Debug("ID token verified", slog.String("ownerID", token.UID))

	return token.UID, nil
}
