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

// FoodLogHandler holds dependencies for food logging handlers.
type FoodLogHandler struct {
	uc     usecase.FoodLogUsecase
	logger *slog.Logger
}

// NewFoodLogHandler is the constructor for FoodLogHandler, injected by Fx.
func NewFoodLogHandler(uc usecase.FoodLogUsecase, logger *slog.Logger) *FoodLogHandler {
	return &FoodLogHandler{uc: uc, logger: logger}
}

// LogFoods records one or more food entries in the owner's linked diary.
func (h *FoodLogHandler) LogFoods(c echo.Context) error {
	var input *usecase.LogFoodsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid food log input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	ownerID := deliverycontext.GetOwnerID(c.Request().Context())
	if ownerID == "" {
		return domainerrors.ErrIdentityTokenMissing
	}

	output, err := h.uc.LogFoods(c.Request().Context(), ownerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Food entries logged successfully")
}
