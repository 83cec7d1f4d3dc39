package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bitelog/internal/delivery/context"
	"bitelog/internal/domain/entity"
	"bitelog/internal/domain/service"
	"bitelog/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// foodLogService implements the FoodLogUsecase interface.
type foodLogService struct {
	tokens    usecase.TokenUsecase
	foods     service.FoodLogger
	publisher service.EventPublisher
	logger    *slog.Logger
}

// FoodLogServiceParams holds dependencies for the food log service, injected by Fx.
type FoodLogServiceParams struct {
	fx.In

	Tokens    usecase.TokenUsecase
	Foods     service.FoodLogger
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewFoodLogService is the constructor for foodLogService.
func NewFoodLogService(params FoodLogServiceParams) usecase.FoodLogUsecase {
	return &foodLogService{
		tokens:    params.Tokens,
		foods:     params.Foods,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *foodLogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LogFoods records the given entries in the owner's provider diary, obtaining
// a usable access token first (refreshing at most once). A provider failure
// mid-batch aborts the remaining entries and surfaces the provider error.
func (srv *foodLogService) LogFoods(ctx context.Context, ownerID string, input *usecase.LogFoodsInput) (*usecase.LogFoodsOutput, error) {
	cred, err := srv.tokens.EnsureFresh(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	logged := make([]*entity.LoggedFood, 0, len(input.Entries))
	calories := 0

	for i := range input.Entries {
		entry := toFoodEntry(&input.Entries[i])

		result, err := srv.foods.LogFood(ctx, cred.AccessToken, entry)
		if err != nil {
			return nil, errors.Wrapf(err, "food log failed for owner %s after %d entries", ownerID, len(logged))
		}

		logged = append(logged, result)
		calories += result.Calories
	}

	srv.publishEvent(ctx, ownerID, cred.ExternalID, len(logged), calories)

	return &usecase.LogFoodsOutput{Logged: logged}, nil
}

// publishEvent publishes a food-log event best-effort; failures are logged,
// never surfaced to the caller.
func (srv *foodLogService) publishEvent(ctx context.Context, ownerID, externalID string, entries, calories int) {
	event := &service.FoodLogEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OwnerID:    ownerID,
		ExternalID: externalID,
		Entries:    entries,
		Calories:   calories,
		LoggedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := srv.publisher.PublishFoodLogEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish food log event",
			slog.String("ownerID", ownerID),
			slog.Any("error", err),
		)
	}
}

func toFoodEntry(input *usecase.FoodEntryInput) *entity.FoodEntry {
	return &entity.FoodEntry{
		Name:     input.Name,
		FoodID:   input.FoodID,
		MealType: input.MealType,
		UnitID:   input.UnitID,
		Amount:   input.Amount,
		Calories: input.Calories,
		Date:     input.Date,
	}
}
