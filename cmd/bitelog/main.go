package main

import (
	"context"
	"log/slog"
	"os"

	"bitelog/config"
	"bitelog/internal/delivery"
	"bitelog/internal/delivery/http"
	"bitelog/internal/delivery/http/middleware"
	"bitelog/internal/delivery/http/router/handler"
	deliverymiddleware "bitelog/internal/delivery/middleware"
	"bitelog/internal/domain/service"
	"bitelog/internal/infra/auth"
	"bitelog/internal/infra/firebase"
	logs "bitelog/internal/infra/log"
	"bitelog/internal/infra/persistence/firestore"
	"bitelog/internal/infra/provider/fitbit"
	"bitelog/internal/infra/pubsub"
	"bitelog/internal/infra/secrets"
	"bitelog/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firebase.NewApp,
		firestore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewCredentialRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewIdentityVerifier,
			secrets.NewSecretSource,
			pubsub.NewEventPublisher,
			fx.Annotate(
				fitbit.NewClient,
				fx.As(new(service.TokenProvider)),
				fx.As(new(service.FoodLogger)),
			),
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewTokenService,
			impl.NewFoodLogService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewFoodLogHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
