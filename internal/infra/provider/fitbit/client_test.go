package fitbit

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitelog/config"
	"bitelog/internal/domain/entity"
	domainerrors "bitelog/internal/domain/errors"
	mockService "bitelog/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestClient(t *testing.T, serverURL string) (*Client, *mockService.MockSecretSource) {
	secrets := mockService.NewMockSecretSource(t)

	cfg := &config.Config{
		Fitbit: &config.FitbitConfig{
			ClientIDSecret:     "fitbit-client-id",
			ClientSecretSecret: "fitbit-client-secret",
			TokenURL:           serverURL + "/oauth2/token",
			APIBaseURL:         serverURL,
		},
	}

	client, err := NewClient(cfg, secrets, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return client, secrets
}

func expectClientCredentials(secrets *mockService.MockSecretSource) {
	secrets.EXPECT().Get(mock.Anything, "fitbit-client-id").Return("my-client-id", nil)
	secrets.EXPECT().Get(mock.Anything, "fitbit-client-secret").Return("my-client-secret", nil)
}

func TestClient_ExchangeCode_Success(t *testing.T) {
	var gotAuth, gotContentType, gotGrantType, gotCode string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotGrantType = r.FormValue("grant_type")
		gotCode = r.FormValue("code")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access-1","refresh_token":"refresh-1","user_id":"FB1234","expires_in":28800}`))
	}))
	defer server.Close()

	client, secrets := createTestClient(t, server.URL)
	expectClientCredentials(secrets)

	tokens, err := client.ExchangeCode(context.Background(), "auth-code-1")
	require.NoError(t, err)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("my-client-id:my-client-secret"))
	assert.Equal(t, wantAuth, gotAuth)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "authorization_code", gotGrantType)
	assert.Equal(t, "auth-code-1", gotCode)

	assert.Equal(t, "access-1", tokens.AccessToken)
	assert.Equal(t, "refresh-1", tokens.RefreshToken)
	assert.Equal(t, "FB1234", tokens.ExternalID)
	assert.Equal(t, 28800, tokens.ExpiresIn)
}

func TestClient_RefreshAccessToken_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"errorType":"invalid_grant","message":"Refresh token invalid"}]}`))
	}))
	defer server.Close()

	client, secrets := createTestClient(t, server.URL)
	expectClientCredentials(secrets)

	tokens, err := client.RefreshAccessToken(context.Background(), "refresh-revoked")
	require.Error(t, err)
	assert.Nil(t, tokens)

	var apiErr *domainerrors.ExternalAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.HTTPCode())
	assert.Contains(t, apiErr.Details(), "Refresh token invalid")
}

func TestClient_RefreshAccessToken_UnrecognizableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream hiccup"))
	}))
	defer server.Close()

	client, secrets := createTestClient(t, server.URL)
	expectClientCredentials(secrets)

	_, err := client.RefreshAccessToken(context.Background(), "refresh-1")
	require.Error(t, err)

	var apiErr *domainerrors.ExternalAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Details(), "status 502")
}

func TestClient_LogFood_ByName(t *testing.T) {
	var gotAuth, gotFoodName, gotCalories, gotMealType, gotDate string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/1/user/-/foods/log.json", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotAuth = r.Header.Get("Authorization")
		gotFoodName = r.FormValue("foodName")
		gotCalories = r.FormValue("calories")
		gotMealType = r.FormValue("mealTypeId")
		gotDate = r.FormValue("date")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"foodLog":{"logId":101,"logDate":"2025-06-01","loggedFood":{"name":"Oatmeal","calories":150}}}`))
	}))
	defer server.Close()

	client, _ := createTestClient(t, server.URL)

	logged, err := client.LogFood(context.Background(), "access-1", &entity.FoodEntry{
		Name:     "Oatmeal",
		MealType: 1,
		UnitID:   147,
		Amount:   1,
		Calories: 150,
		Date:     "2025-06-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer access-1", gotAuth)
	assert.Equal(t, "Oatmeal", gotFoodName)
	assert.Equal(t, "150", gotCalories)
	assert.Equal(t, "1", gotMealType)
	assert.Equal(t, "2025-06-01", gotDate)

	assert.Equal(t, int64(101), logged.LogID)
	assert.Equal(t, "Oatmeal", logged.FoodName)
	assert.Equal(t, "2025-06-01", logged.Date)
	assert.Equal(t, 150, logged.Calories)
}

func TestClient_LogFood_ByFoodID(t *testing.T) {
	var gotFoodID, gotFoodName string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotFoodID = r.FormValue("foodId")
		gotFoodName = r.FormValue("foodName")

		w.Write([]byte(`{"foodLog":{"logId":102,"logDate":"2025-06-01","loggedFood":{"name":"Banana","calories":90}}}`))
	}))
	defer server.Close()

	client, _ := createTestClient(t, server.URL)

	logged, err := client.LogFood(context.Background(), "access-1", &entity.FoodEntry{
		FoodID:   8100,
		MealType: 1,
		UnitID:   147,
		Amount:   1,
		Date:     "2025-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "8100", gotFoodID)
	assert.Empty(t, gotFoodName)
	assert.Equal(t, int64(102), logged.LogID)
}
