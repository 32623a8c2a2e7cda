package main

import (
	"context"
	"log/slog"
	"os"

	"ecofinds/config"
	"ecofinds/internal/delivery"
	"ecofinds/internal/delivery/http"
	"ecofinds/internal/delivery/http/middleware"
	"ecofinds/internal/delivery/http/router/handler"
	"ecofinds/internal/domain/lifecycle"
	"ecofinds/internal/domain/service"
	logs "ecofinds/internal/infra/log"
	"ecofinds/internal/infra/persistence"
	"ecofinds/internal/infra/persistence/kv"
	"ecofinds/internal/infra/pubsub"
	"ecofinds/internal/infra/qrcode"
	"ecofinds/internal/infra/storage"
	"ecofinds/internal/usecase"
	"ecofinds/internal/usecase/impl"

	"go.uber.org/fx"
)

const (
	defaultQRCodeSize    = 256
	defaultQRCodeLevel   = "M"
	defaultQRCodeBaseURL = "http://localhost:8080/products"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

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
			restoreSession,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		persistence.NewKeyValueStore,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			kv.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			storage.NewImageStorage,
			pubsub.NewEventPublisher,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(defaultQRCodeSize, defaultQRCodeLevel, defaultQRCodeBaseURL)
	}

	size := cfg.QRCode.Size
	if size <= 0 {
		size = defaultQRCodeSize
	}
	baseURL := cfg.QRCode.BaseURL
	if baseURL == "" {
		baseURL = defaultQRCodeBaseURL
	}

	return qrcode.NewQRCodeService(size, cfg.QRCode.ErrorCorrectionLevel, baseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionManager,
			impl.NewCatalogManager,
			impl.NewCartManager,
			impl.NewViewController,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewViewHandler,
			handler.NewProductHandler,
			handler.NewCartHandler,
			handler.NewImageHandler,
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

// restoreSession resumes at the dashboard when a user was stored by a previous run.
func restoreSession(lc fx.Lifecycle, view usecase.ViewUsecase, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := view.Restore(ctx); err != nil {
				logger.Warn("Failed to restore session", slog.Any("error", err))
			}

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
