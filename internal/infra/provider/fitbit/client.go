// Package fitbit wraps the fitness provider's OAuth token endpoint and
// food-diary REST calls.
package fitbit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bitelog/config"
	"bitelog/internal/domain/entity"
	domainerrors "bitelog/internal/domain/errors"
	"bitelog/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultTokenURL   = "https://api.fitbit.com/oauth2/token"
	defaultAPIBaseURL = "https://api.fitbit.com"

	defaultRequestTimeout = 30 * time.Second
	maxErrorBodyBytes     = 1 << 20
)

// HTTPDoer is the minimal HTTP client surface, injectable for tests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the provider's token endpoint and food-diary API. It performs
// exactly one HTTP call per operation and never retries; OAuth client
// credentials are resolved through the secret source on every token call.
type Client struct {
	secrets            service.SecretSource
	clientIDSecret     string
	clientSecretSecret string
	tokenURL           string
	apiBaseURL         string
	httpClient         HTTPDoer
	logger             *slog.Logger
}

// NewClient creates a provider client from configuration.
func NewClient(cfg *config.Config, secrets service.SecretSource, logger *slog.Logger) (*Client, error) {
	if cfg.Fitbit == nil {
		return nil, errors.New("fitbit configuration is required")
	}

	tokenURL := cfg.Fitbit.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	apiBaseURL := strings.TrimSuffix(cfg.Fitbit.APIBaseURL, "/")
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}

	return &Client{
		secrets:            secrets,
		clientIDSecret:     cfg.Fitbit.ClientIDSecret,
		clientSecretSecret: cfg.Fitbit.ClientSecretSecret,
		tokenURL:           tokenURL,
		apiBaseURL:         apiBaseURL,
		httpClient:         &http.Client{Timeout: defaultRequestTimeout},
		logger:             logger,
	}, nil
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(doer HTTPDoer) *Client {
	c.httpClient = doer

	return c
}

// ExchangeCode redeems a one-time authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*service.ProviderTokens, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)

	return c.requestTokens(ctx, "exchange authorization code", data)
}

// RefreshAccessToken mints a fresh token pair from a stored refresh token.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*service.ProviderTokens, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	return c.requestTokens(ctx, "refresh access token", data)
}

func (c *Client) requestTokens(ctx context.Context, operation string, data url.Values) (*service.ProviderTokens, error) {
	authHeader, err := c.basicAuth(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create token request")
	}
	req.Header.Set("Authorization", authHeader)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call token endpoint (%s)", operation)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domainerrors.NewExternalAPIError(operation, c.upstreamMessage(resp))
	}

	var tokenResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		UserID       string `json:"user_id"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return nil, errors.Wrap(err, "failed to decode token response")
	}

	return &service.ProviderTokens{
		AccessToken:  tokenResponse.AccessToken,
		RefreshToken: tokenResponse.RefreshToken,
		ExternalID:   tokenResponse.UserID,
		ExpiresIn:    tokenResponse.ExpiresIn,
	}, nil
}

// LogFood records one food entry in the diary of the account the access
// token belongs to.
func (c *Client) LogFood(ctx context.Context, accessToken string, entry *entity.FoodEntry) (*entity.LoggedFood, error) {
	data := url.Values{}
	if entry.FoodID > 0 {
		data.Set("foodId", strconv.FormatInt(entry.FoodID, 10))
	} else {
		data.Set("foodName", entry.Name)
		data.Set("calories", strconv.Itoa(entry.Calories))
	}
	data.Set("mealTypeId", strconv.Itoa(entry.MealType))
	data.Set("unitId", strconv.Itoa(entry.UnitID))
	data.Set("amount", strconv.FormatFloat(entry.Amount, 'f', -1, 64))
	data.Set("date", entry.Date)

	endpoint := c.apiBaseURL + "/1/user/-/foods/log.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create food log request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call food log endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domainerrors.NewExternalAPIError("log food", c.upstreamMessage(resp))
	}

	var logResponse struct {
		FoodLog struct {
			LogID      int64  `json:"logId"`
			LogDate    string `json:"logDate"`
			LoggedFood struct {
				Name     string `json:"name"`
				Calories int    `json:"calories"`
			} `json:"loggedFood"`
		} `json:"foodLog"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&logResponse); err != nil {
		return nil, errors.Wrap(err, "failed to decode food log response")
	}

	return &entity.LoggedFood{
		LogID:    logResponse.FoodLog.LogID,
		FoodName: logResponse.FoodLog.LoggedFood.Name,
		Date:     logResponse.FoodLog.LogDate,
		Calories: logResponse.FoodLog.LoggedFood.Calories,
	}, nil
}

// basicAuth resolves the OAuth client credentials and builds the Basic
// authorization header the token endpoint requires.
func (c *Client) basicAuth(ctx context.Context) (string, error) {
	clientID, err := c.secrets.Get(ctx, c.clientIDSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve client id")
	}
	clientSecret, err := c.secrets.Get(ctx, c.clientSecretSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve client secret")
	}

	raw := clientID + ":" + clientSecret

	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// upstreamMessage extracts the provider's error message from a failure body,
// falling back to the HTTP status when the body has no recognizable shape.
func (c *Client) upstreamMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}

	var errorResponse struct {
		Errors []struct {
			ErrorType string `json:"errorType"`
			Message   string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &errorResponse); err == nil && len(errorResponse.Errors) > 0 {
		return errorResponse.Errors[0].Message
	}

	c.logger.Debug("Provider error body had no errors field",
		slog.Int("status", resp.StatusCode),
	)

	return fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
