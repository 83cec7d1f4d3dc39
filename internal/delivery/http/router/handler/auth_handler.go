// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "bitelog/internal/delivery/context"
	"bitelog/internal/delivery/http/response"
	domainerrors "bitelog/internal/domain/errors"
	"bitelog/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for provider authorization handlers.
type AuthHandler struct {
	uc     usecase.TokenUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.TokenUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// ExchangeCode redeems a one-time authorization code for tokens and links
// the provider account to the authenticated owner.
func (h *AuthHandler) ExchangeCode(c echo.Context) error {
	var input *usecase.ExchangeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid authorization code input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	ownerID := deliverycontext.GetOwnerID(c.Request().Context())
	if ownerID == "" {
		return domainerrors.ErrIdentityTokenMissing
	}

	output, err := h.uc.Exchange(c.Request().Context(), ownerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Account linked successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
