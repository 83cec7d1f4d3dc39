package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"bitelog/internal/domain/entity"
	"bitelog/internal/domain/service"
	mockRepo "bitelog/internal/mocks/repository"
	mockService "bitelog/internal/mocks/service"
	"bitelog/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// foodLogServiceFixtures holds all test dependencies for food log service tests.
type foodLogServiceFixtures struct {
	service   usecase.FoodLogUsecase
	credRepo  *mockRepo.MockCredentialRepository
	foods     *mockService.MockFoodLogger
	publisher *mockService.MockEventPublisher
}

func createTestFoodLogService(t *testing.T) foodLogServiceFixtures {
	credRepo := mockRepo.NewMockCredentialRepository(t)
	provider := mockService.NewMockTokenProvider(t)
	foods := mockService.NewMockFoodLogger(t)
	publisher := mockService.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens := &tokenService{
		credRepo: credRepo,
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}

	svc := &foodLogService{
		tokens:    tokens,
		foods:     foods,
		publisher: publisher,
		logger:    logger,
	}

	return foodLogServiceFixtures{
		service:   svc,
		credRepo:  credRepo,
		foods:     foods,
		publisher: publisher,
	}
}

func freshCred() *entity.Credential {
	return &entity.Credential{
		Key:         "FB1234",
		ExternalID:  "FB1234",
		Owners:      []string{"owner-1"},
		AccessToken: "access-1",
		ExpiresAt:   time.Now().Add(time.Hour).UnixMilli(),
	}
}

func TestFoodLogService_LogFoods_Success(t *testing.T) {
	fx := createTestFoodLogService(t)

	ctx := context.Background()
	fx.credRepo.EXPECT().
		FindByOwner(ctx, "owner-1").
		Return(freshCred(), nil)

	fx.foods.EXPECT().
		LogFood(ctx, "access-1", mock.AnythingOfType("*entity.FoodEntry")).
		Return(&entity.LoggedFood{LogID: 101, FoodName: "Oatmeal", Date: "2025-06-01", Calories: 150}, nil).
		Once()

	fx.foods.EXPECT().
		LogFood(ctx, "access-1", mock.AnythingOfType("*entity.FoodEntry")).
		Return(&entity.LoggedFood{LogID: 102, FoodName: "Banana", Date: "2025-06-01", Calories: 90}, nil).
		Once()

	fx.publisher.EXPECT().
		PublishFoodLogEvent(ctx, mock.AnythingOfType("*service.FoodLogEvent")).
		Run(func(ctx context.Context, event *service.FoodLogEvent) {
			assert.Equal(t, "owner-1", event.OwnerID)
			assert.Equal(t, "FB1234", event.ExternalID)
			assert.Equal(t, 2, event.Entries)
			assert.Equal(t, 240, event.Calories)
		}).
		Return(nil)

	output, err := fx.service.LogFoods(ctx, "owner-1", &usecase.LogFoodsInput{
		Entries: []usecase.FoodEntryInput{
			{Name: "Oatmeal", MealType: 1, UnitID: 147, Amount: 1, Calories: 150, Date: "2025-06-01"},
			{Name: "Banana", MealType: 1, UnitID: 147, Amount: 1, Calories: 90, Date: "2025-06-01"},
		},
	})
	require.NoError(t, err)
	require.Len(t, output.Logged, 2)
	assert.Equal(t, int64(101), output.Logged[0].LogID)
	assert.Equal(t, int64(102), output.Logged[1].LogID)
}

func TestFoodLogService_LogFoods_NoCredential(t *testing.T) {
	fx := createTestFoodLogService(t)

	ctx := context.Background()
	fx.credRepo.EXPECT().
		FindByOwner(ctx, "owner-unlinked").
		Return(nil, errors.New("wrapped: credential not found"))

	output, err := fx.service.LogFoods(ctx, "owner-unlinked", &usecase.LogFoodsInput{
		Entries: []usecase.FoodEntryInput{
			{Name: "Oatmeal", MealType: 1, UnitID: 147, Amount: 1, Date: "2025-06-01"},
		},
	})
	require.Error(t, err)
	assert.Nil(t, output)
	fx.foods.AssertNotCalled(t, "LogFood", mock.Anything, mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishFoodLogEvent", mock.Anything, mock.Anything)
}

func TestFoodLogService_LogFoods_MidBatchFailureAborts(t *testing.T) {
	fx := createTestFoodLogService(t)

	ctx := context.Background()
	fx.credRepo.EXPECT().
		FindByOwner(ctx, "owner-1").
		Return(freshCred(), nil)

	fx.foods.EXPECT().
		LogFood(ctx, "access-1", mock.AnythingOfType("*entity.FoodEntry")).
		Return(&entity.LoggedFood{LogID: 101, FoodName: "Oatmeal", Calories: 150}, nil).
		Once()

	fx.foods.EXPECT().
		LogFood(ctx, "access-1", mock.AnythingOfType("*entity.FoodEntry")).
		Return(nil, errors.New("rate limited")).
		Once()

	output, err := fx.service.LogFoods(ctx, "owner-1", &usecase.LogFoodsInput{
		Entries: []usecase.FoodEntryInput{
			{Name: "Oatmeal", MealType: 1, UnitID: 147, Amount: 1, Date: "2025-06-01"},
			{Name: "Banana", MealType: 1, UnitID: 147, Amount: 1, Date: "2025-06-01"},
			{Name: "Coffee", MealType: 1, UnitID: 147, Amount: 1, Date: "2025-06-01"},
		},
	})
	require.Error(t, err)
	assert.Nil(t, output)
	fx.foods.AssertNumberOfCalls(t, "LogFood", 2)
	fx.publisher.AssertNotCalled(t, "PublishFoodLogEvent", mock.Anything, mock.Anything)
}

func TestFoodLogService_LogFoods_PublishFailureIsNotFatal(t *testing.T) {
	fx := createTestFoodLogService(t)

	ctx := context.Background()
	fx.credRepo.EXPECT().
		FindByOwner(ctx, "owner-1").
		Return(freshCred(), nil)

	fx.foods.EXPECT().
		LogFood(ctx, "access-1", mock.AnythingOfType("*entity.FoodEntry")).
		Return(&entity.LoggedFood{LogID: 101, FoodName: "Oatmeal", Calories: 150}, nil)

	fx.publisher.EXPECT().
		PublishFoodLogEvent(ctx, mock.AnythingOfType("*service.FoodLogEvent")).
		Return(errors.New("broker unavailable"))

	output, err := fx.service.LogFoods(ctx, "owner-1", &usecase.LogFoodsInput{
		Entries: []usecase.FoodEntryInput{
			{Name: "Oatmeal", MealType: 1, UnitID: 147, Amount: 1, Date: "2025-06-01"},
		},
	})
	require.NoError(t, err)
	require.Len(t, output.Logged, 1)
}
