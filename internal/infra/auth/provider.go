package auth

import (
	"context"
	"log/slog"

	"bitelog/config"
	"bitelog/internal/domain/constants"
	"bitelog/internal/domain/service"

	admin "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerifierParams holds dependencies for the identity verifier, injected by Fx
type VerifierParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	App    *admin.App
	Logger *slog.Logger
}

// NewIdentityVerifier creates an IdentityVerifier based on configuration
func NewIdentityVerifier(params VerifierParams) (service.IdentityVerifier, error) {
	provider := constants.AuthProviderFirebase
	if params.Config.Auth != nil && params.Config.Auth.Provider != "" {
		provider = params.Config.Auth.Provider
	}

	switch provider {
	case constants.AuthProviderFirebase:
		return NewFirebaseVerifier(params.Ctx, params.App, params.Logger)

	case constants.AuthProviderInsecure:
		return NewInsecureVerifier(params.Logger), nil

	default:
		return nil, errors.Errorf("unknown auth provider: %s", provider)
	}
}
