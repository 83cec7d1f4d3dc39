package usecase

import (
	"context"

	"bitelog/internal/domain/entity"
)

// FoodEntryInput is one food item in a log request.
type FoodEntryInput struct {
	Name     string  `json:"name" validate:"required_without=FoodID"`
	FoodID   int64   `json:"food_id" validate:"omitempty,gt=0"`
	MealType int     `json:"meal_type" validate:"required,min=1,max=7"`
	UnitID   int     `json:"unit_id" validate:"required,gt=0"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Calories int     `json:"calories" validate:"omitempty,gte=0"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
}

// LogFoodsInput is the food-log request payload.
type LogFoodsInput struct {
	Entries []FoodEntryInput `json:"entries" validate:"required,min=1,dive"`
}

// LogFoodsOutput reports the provider confirmations for the created entries.
type LogFoodsOutput struct {
	Logged []*entity.LoggedFood `json:"logged"`
}

// FoodLogUsecase records food entries in the provider diary of the
// authenticated owner's linked account.
type FoodLogUsecase interface {
	LogFoods(ctx context.Context, ownerID string, input *LogFoodsInput) (*LogFoodsOutput, error)
}
