package auth

import (
	"context"
	"log/slog"

	"bitelog/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// insecureVerifier extracts the subject claim from an unverified JWT. It lets
// local development run without Firebase credentials and must never be
// selected in a deployed environment.
type insecureVerifier struct {
	logger *slog.Logger
}

// NewInsecureVerifier creates the local development identity verifier.
func NewInsecureVerifier(logger *slog.Logger) service.IdentityVerifier {
	logger.Warn("Using insecure identity verifier; tokens are NOT verified")

	return &insecureVerifier{logger: logger}
}

// VerifyIDToken parses the token without signature verification and returns
// its subject claim.
func (v *insecureVerifier) VerifyIDToken(_ context.Context, idToken string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(idToken, jwt.MapClaims{})
	if err != nil {
		return "", errors.Wrap(err, "failed to parse ID token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", errors.Wrap(err, "failed to read subject claim")
	}
	if sub == "" {
		return "", errors.New("ID token has no subject claim")
	}

	v.logger.Debug("Accepted unverified ID token", slog.String("ownerID", sub))

	return sub, nil
}
