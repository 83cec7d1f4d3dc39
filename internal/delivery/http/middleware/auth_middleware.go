package middleware

import (
	"strings"

	deliverycontext "bitelog/internal/delivery/context"
	domainerrors "bitelog/internal/domain/errors"
	"bitelog/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for identity token authentication.
type AuthMiddleware struct {
	verifier service.IdentityVerifier
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.IdentityVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate validates the bearer identity token and resolves the owner id.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrIdentityTokenMissing
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrIdentityTokenInvalid.WithDetails("must be a Bearer token")
		}

		ownerID, err := m.verifier.VerifyIDToken(c.Request().Context(), tokenString)
		if err != nil {
			return domainerrors.ErrIdentityTokenInvalid.WrapMessage(err.Error())
		}

		// Make the owner id available both to handlers and to usecases
		// further down the call chain.
		c.Set(string(deliverycontext.KeyOwnerID), ownerID)
		ctx := deliverycontext.WithOwnerID(c.Request().Context(), ownerID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
