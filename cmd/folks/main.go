package main

import (
	"context"
	"log/slog"
	"os"

	"folks/config"
	"folks/internal/delivery"
	"folks/internal/delivery/http"
	"folks/internal/delivery/http/middleware"
	"folks/internal/delivery/http/router/handler"
	"folks/internal/infra/auth"
	logs "folks/internal/infra/log"
	"folks/internal/infra/metrics"
	"folks/internal/infra/persistence"
	"folks/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
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
		fx.Annotate(
			metrics.NewRegistry,
			fx.As(new(prometheus.Registerer)),
			fx.As(new(prometheus.Gatherer)),
		),
		fx.Annotate(
			metrics.NewCollector,
			fx.As(new(metrics.Recorder)),
		),
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewUserRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewPasswordStrategy,
			impl.NewTokenStrategy,
			impl.NewUserService,
			impl.NewSessionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			newLoginRateLimiter,
		),
	)
}

// newLoginRateLimiter ties the limiter's sweep loop to the app lifecycle.
func newLoginRateLimiter(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) *middleware.LoginRateLimiter {
	limiter := middleware.NewLoginRateLimiter(cfg, logger)
	lc.Append(fx.StopHook(limiter.Stop))

	return limiter
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewAuthHandler,
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
	params.Lifecycle.Append(fx.StartHook(func() {
		for _, d := range params.Deliveries {
			go func() {
				if err := d.Serve(ctx); err != nil {
					slog.Error("Failed to start server", slog.Any("error", err))
					os.Exit(1)
				}
			}()
		}
	}))
}
