package service

import (
	"context"

	"bitelog/internal/domain/entity"
)

// ProviderTokens is the fitness provider's token endpoint response, shared by
// the authorization-code exchange and the refresh grant.
type ProviderTokens struct {
	AccessToken  string // Short-lived access token.
	RefreshToken string // Long-lived refresh token; replaces the stored one.
	ExternalID   string // The provider's account id ("user_id" in the response).
	ExpiresIn    int    // Access token lifetime in seconds.
}

// TokenProvider wraps the provider's OAuth token endpoint. One call per
// operation, no retries; a non-2xx response surfaces as an external API error
// carrying the provider's own error message.
type TokenProvider interface {
	// ExchangeCode redeems a one-time authorization code for tokens.
	ExchangeCode(ctx context.Context, code string) (*ProviderTokens, error)

	// RefreshAccessToken mints a fresh token pair from a stored refresh token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (*ProviderTokens, error)
}

// FoodLogger wraps the provider's food-diary REST calls. Plain
// request/response, no state.
type FoodLogger interface {
	// LogFood records one food entry in the diary of the account the access
	// token belongs to.
	LogFood(ctx context.Context, accessToken string, entry *entity.FoodEntry) (*entity.LoggedFood, error)
}
