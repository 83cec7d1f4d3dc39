package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"bitelog/internal/domain/entity"
	domainerrors "bitelog/internal/domain/errors"
	"bitelog/internal/domain/repository"
	"bitelog/internal/domain/service"
	mockRepo "bitelog/internal/mocks/repository"
	mockService "bitelog/internal/mocks/service"
	"bitelog/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// tokenServiceFixtures holds all test dependencies for token service tests.
type tokenServiceFixtures struct {
	service  *tokenService
	credRepo *mockRepo.MockCredentialRepository
	provider *mockService.MockTokenProvider
	now      time.Time
}

func createTestTokenService(t *testing.T) tokenServiceFixtures {
	credRepo := mockRepo.NewMockCredentialRepository(t)
	provider := mockService.NewMockTokenProvider(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	service := &tokenService{
		credRepo: credRepo,
		provider: provider,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      func() time.Time { return now },
	}

	return tokenServiceFixtures{
		service:  service,
		credRepo: credRepo,
		provider: provider,
		now:      now,
	}
}

func TestTokenService_Exchange_Success(t *testing.T) {
	fx := createTestTokenService(t)

	ctx := context.Background()
	fx.provider.EXPECT().
		ExchangeCode(ctx, "auth-code-1").
		Return(&service.ProviderTokens{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExternalID:   "FB1234",
			ExpiresIn:    28800,
		}, nil)

	fx.credRepo.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.Credential")).
		Run(func(ctx context.Context, cred *entity.Credential) {
			assert.Equal(t, "FB1234", cred.Key)
			assert.Equal(t, "FB1234", cred.ExternalID)
			assert.Equal(t, []string{"owner-1"}, cred.Owners)
			assert.Equal(t, "access-1", cred.AccessToken)
			assert.Equal(t, "refresh-1", cred.RefreshToken)
			assert.Equal(t, fx.now.Add(28800*time.Second).UnixMilli(), cred.ExpiresAt)
		}).
		Return(nil)

	output, err := fx.service.Exchange(ctx, "owner-1", &usecase.ExchangeInput{Code: "auth-code-1"})
	require.NoError(t, err)
	assert.Equal(t, "FB1234", output.ExternalID)
}

func TestTokenService_Exchange_ProviderErrorWritesNothing(t *testing.T) {
	fx := createTestTokenService(t)

	ctx := context.Background()
	fx.provider.EXPECT().
		ExchangeCode(ctx, "bad-code").
		Return(nil, errors.New("invalid_grant"))

	output, err := fx.service.Exchange(ctx, "owner-1", &usecase.ExchangeInput{Code: "bad-code"})
	require.Error(t, err)
	assert.Nil(t, output)
	fx.credRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestTokenService_Refresh_NoRecordIsAuthFailure(t *testing.T) {
	fx := createTestTokenService(t)

	ctx := context.Background()
	fx.credRepo.EXPECT().
		FindByOwner(ctx, "owner-unknown").
		Return(nil, repository.ErrCredentialNotFound)

	cred, err := fx.service.Refresh(ctx, "owner-unknown")
	require.Error(t, err)
	assert.Nil(t, cred)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode())
	assert.Equal(t, domainerrors.ErrCredentialNotFound.ErrorCode(), appErr.ErrorCode())
}

func TestTokenService_Refresh_PreservesStoredExternalID(t *testing.T) {
	fx := createTestTokenService(t)

	ctx := context.Background()
	stored := &entity.Credential{
		Key:          "FB1234",
		ExternalID:   "FB1234",
		Owners:       []string{"owner-1"},
		AccessToken:  "stale-access",
		RefreshToken: "refresh-old",
		ExpiresAt:    fx.now.Add(-time.Hour).UnixMilli(),
	}

	fx.credRepo.EXPECT().
		FindByOwner(ctx, "owner-1").
		Return(stored, nil)

	// Provider echoes a casing variant of the account id; the stored key wins.
	fx.provider.EXPECT().
		RefreshAccessToken(ctx, "refresh-old").
		Return(&service.ProviderTokens{
			AccessToken:  "access-new",
			RefreshToken: "refresh-new",
			ExternalID:   "fb1234",
			ExpiresIn:    28800,
		}, nil)

	fx.credRepo.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.Credential")).
		Run(func(ctx context.Context, cred *entity.Credential) {
			assert.Equal(t, "FB1234", cred.Key)
			assert.Equal(t, "FB1234", cred.ExternalID)
			assert.Equal(t, "refresh-new", cred.RefreshToken)
		}).
		Return(nil)

	cred, err := fx.service.Refresh(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "FB1234", cred.ExternalID)
	assert.Equal(t, "access-new", cred.AccessToken)
}

func TestTokenService_Refresh_ProviderErrorLeavesStoreUntouched(t *testing.T) {
	fx := createTestTokenService(t)

	ctx := context.Background()
	stored := &entity.Credential{
		Key:          "FB1234",
		ExternalID:   "FB1234",
		Owners:       []string{"owner-1"},
		RefreshToken: "refresh-revoked",
		ExpiresAt:    fx.now.Add(-time.Hour).UnixMilli(),
	}

	fx.credRepo.EXPECT().
		FindByOwner(ctx, "owner-1").
		Return(stored, nil)

	fx.provider.EXPECT().
		RefreshAccessToken(ctx, "refresh-revoked").
		Return(nil, errors.New("invalid_grant"))

	cred, err := fx.service.Refresh(ctx, "owner-1")
	require.Error(t, err)
	assert.Nil(t, cred)
	fx.credRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestTokenService_EnsureFresh_ValidTokenSkipsRefresh(t *testing.T) {
	fx := createTestTokenService(t)

	ctx := context.Background()
	stored := &entity.Credential{
		Key:         "FB1234",
		ExternalID:  "FB1234",
		Owners:      []string{"owner-1"},
		AccessToken: "access-valid",
		ExpiresAt:   fx.now.Add(time.Hour).UnixMilli(),
	}

	fx.credRepo.EXPECT().
		FindByOwner(ctx, "owner-1").
		Return(stored, nil)

	cred, err := fx.service.EnsureFresh(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "access-valid", cred.AccessToken)
	fx.provider.AssertNotCalled(t, "RefreshAccessToken", mock.Anything, mock.Anything)
}

func TestTokenService_EnsureFresh_WithinSkewTriggersRefresh(t *testing.T) {
	fx := createTestTokenService(t)

	ctx := context.Background()
	// Expires in 10s, inside the refresh skew: treated as already expired.
	stored := &entity.Credential{
		Key:          "FB1234",
		ExternalID:   "FB1234",
		Owners:       []string{"owner-1"},
		AccessToken:  "access-nearly-dead",
		RefreshToken: "refresh-1",
		ExpiresAt:    fx.now.Add(10 * time.Second).UnixMilli(),
	}

	fx.credRepo.EXPECT().
		FindByOwner(ctx, "owner-1").
		Return(stored, nil)

	fx.provider.EXPECT().
		RefreshAccessToken(ctx, "refresh-1").
		Return(&service.ProviderTokens{
			AccessToken:  "access-new",
			RefreshToken: "refresh-2",
			ExternalID:   "FB1234",
			ExpiresIn:    28800,
		}, nil).
		Once()

	fx.credRepo.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.Credential")).
		Return(nil).
		Once()

	cred, err := fx.service.EnsureFresh(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "access-new", cred.AccessToken)
}
