// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bitelog/internal/delivery/context"
	"bitelog/internal/domain/entity"
	domainerrors "bitelog/internal/domain/errors"
	"bitelog/internal/domain/repository"
	"bitelog/internal/domain/service"
	"bitelog/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// refreshSkew is how long before the stored expiry a token is already treated
// as expired, so a token is never handed out with near-zero validity left.
const refreshSkew = 30 * time.Second

// tokenService implements the TokenUsecase interface.
type tokenService struct {
	credRepo repository.CredentialRepository
	provider service.TokenProvider
	logger   *slog.Logger
	now      func() time.Time
}

// TokenServiceParams holds dependencies for the token service, injected by Fx.
type TokenServiceParams struct {
	fx.In

	CredRepo repository.CredentialRepository
	Provider service.TokenProvider
	Logger   *slog.Logger
}

// NewTokenService is the constructor for tokenService. It receives all dependencies as interfaces.
func NewTokenService(params TokenServiceParams) usecase.TokenUsecase {
	return &tokenService{
		credRepo: params.CredRepo,
		provider: params.Provider,
		logger:   params.Logger,
		now:      time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *tokenService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Exchange redeems a one-time authorization code. On success the credential
// is stored keyed by the provider account id with ownerID merged into the
// owners set; on provider failure nothing is written.
func (srv *tokenService) Exchange(ctx context.Context, ownerID string, input *usecase.ExchangeInput) (*usecase.ExchangeOutput, error) {
	srv.log(ctx).Info("Exchanging authorization code", slog.String("ownerID", ownerID))

	tokens, err := srv.provider.ExchangeCode(ctx, input.Code)
	if err != nil {
		return nil, errors.Wrapf(err, "code exchange failed for owner %s", ownerID)
	}

	cred := srv.credentialFromTokens(ownerID, tokens)
	if err := srv.credRepo.Upsert(ctx, cred); err != nil {
		return nil, domainerrors.NewStoreAccessError(err, "failed to store exchanged credential")
	}

	srv.log(ctx).Info("Authorization code exchanged",
		slog.String("ownerID", ownerID),
		slog.String("externalID", cred.ExternalID),
	)

	return &usecase.ExchangeOutput{ExternalID: cred.ExternalID}, nil
}

// Refresh mints a fresh token pair for the owner's stored credential.
func (srv *tokenService) Refresh(ctx context.Context, ownerID string) (*entity.Credential, error) {
	cred, err := srv.findByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return srv.refresh(ctx, ownerID, cred)
}

// EnsureFresh returns the owner's credential with a usable access token,
// refreshing synchronously when the stored token is expired.
func (srv *tokenService) EnsureFresh(ctx context.Context, ownerID string) (*entity.Credential, error) {
	cred, err := srv.findByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if cred.Usable(srv.now().Add(refreshSkew)) {
		return cred, nil
	}

	srv.log(ctx).Info("Access token expired, refreshing",
		slog.String("ownerID", ownerID),
		slog.Int64("expiresAt", cred.ExpiresAt),
	)

	return srv.refresh(ctx, ownerID, cred)
}

func (srv *tokenService) findByOwner(ctx context.Context, ownerID string) (*entity.Credential, error) {
	cred, err := srv.credRepo.FindByOwner(ctx, ownerID)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return nil, domainerrors.ErrCredentialNotFound.WrapMessage("no refresh token on file for owner " + ownerID)
	}
	if err != nil {
		return nil, domainerrors.NewStoreAccessError(err, "failed to look up credential by owner")
	}

	return cred, nil
}

// refresh performs exactly one provider refresh call and one upsert. The
// upsert preserves the externalId already on the record; the stored record is
// left untouched when the provider call fails.
func (srv *tokenService) refresh(ctx context.Context, ownerID string, cred *entity.Credential) (*entity.Credential, error) {
	tokens, err := srv.provider.RefreshAccessToken(ctx, cred.RefreshToken)
	if err != nil {
		return nil, errors.Wrapf(err, "token refresh failed for owner %s", ownerID)
	}

	// The record's external id is the source of truth for the key; the
	// provider response echoes it but the stored value wins.
	tokens.ExternalID = cred.ExternalID

	updated := srv.credentialFromTokens(ownerID, tokens)
	if err := srv.credRepo.Upsert(ctx, updated); err != nil {
		return nil, domainerrors.NewStoreAccessError(err, "failed to store refreshed credential")
	}

	srv.log(ctx).Info("Access token refreshed",
		slog.String("ownerID", ownerID),
		slog.String("externalID", updated.ExternalID),
	)

	return updated, nil
}

func (srv *tokenService) credentialFromTokens(ownerID string, tokens *service.ProviderTokens) *entity.Credential {
	return &entity.Credential{
		Key:          tokens.ExternalID,
		ExternalID:   tokens.ExternalID,
		Owners:       []string{ownerID},
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    srv.now().Add(time.Duration(tokens.ExpiresIn) * time.Second).UnixMilli(),
	}
}
