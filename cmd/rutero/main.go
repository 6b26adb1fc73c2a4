package main

import (
	"context"
	"log/slog"
	"os"

	"rutero/config"
	"rutero/internal/delivery"
	"rutero/internal/delivery/http"
	"rutero/internal/delivery/http/middleware"
	"rutero/internal/delivery/http/router/handler"
	"rutero/internal/domain/service"
	"rutero/internal/infra/auth"
	"rutero/internal/infra/directions"
	"rutero/internal/infra/excel"
	logs "rutero/internal/infra/log"
	"rutero/internal/infra/persistence/postgres"
	"rutero/internal/infra/pubsub"
	"rutero/internal/infra/qrcode"
	"rutero/internal/infra/storage"
	"rutero/internal/usecase/impl"

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
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewCustomerRepository,
			postgres.NewRouteRepository,
			postgres.NewInvoiceRepository,
			postgres.NewDispatchRepository,
			postgres.NewAssignmentRepository,
			postgres.NewLocationRepository,
			postgres.NewUserRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			storage.NewReceiptStorage,
			pubsub.NewEventPublisher,
			excel.NewInvoiceImporter,
			newDirectionsService,
			newQRCodeService,
		),
	)
}

// newDirectionsService creates the external routing client with dependency injection
func newDirectionsService(cfg *config.Config, logger *slog.Logger) (service.DirectionsService, error) {
	return directions.NewOSRMClient(cfg.Directions, logger)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewCustomerService,
			impl.NewRouteService,
			impl.NewInvoiceService,
			impl.NewDispatchService,
			impl.NewTrackingService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewCustomerHandler,
			handler.NewRouteHandler,
			handler.NewInvoiceHandler,
			handler.NewDispatchHandler,
			handler.NewTrackingHandler,
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
