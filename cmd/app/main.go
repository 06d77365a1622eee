package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodtruck/cmd"
	httpin "foodtruck/internal/adapters/in/http"
	"foodtruck/internal/adapters/out/outbox"
	"foodtruck/internal/adapters/out/postgres"
	"foodtruck/internal/adapters/out/rabbitmq"
	"foodtruck/internal/core/ports"
	"foodtruck/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := openDatabase(ctx, configs, logger)

	publisher, closePublisher := newPublisher(configs, logger)
	defer closePublisher()

	auth, err := httpin.NewTokenAuthenticator(configs.JWTSecret)
	if err != nil {
		log.Fatalf("JWT_SECRET: %v", err)
	}

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		httpin.NewContextIdentity(),
		publisher,
		logger,
	)

	jobManager := jobs.NewJobManager(app.CreateRelayOutboxCommandHandler(), configs.OutboxRelaySchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, auth, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:            os.Getenv("HTTP_PORT"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              os.Getenv("DB_PORT"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBSslMode:           os.Getenv("DB_SSLMODE"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		RabbitMQURL:         os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:    os.Getenv("RABBITMQ_EXCHANGE"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
		OutboxRelaySchedule: os.Getenv("OUTBOX_RELAY_SCHEDULE"),
	}
	return config.WithDefaults()
}

func openDatabase(ctx context.Context, configs cmd.Config, logger *slog.Logger) *gorm.DB {
	if !configs.UsesDatabase() {
		logger.Warn("DB_HOST is not set, orders are kept in memory")
		return nil
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return gormDB
}

func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if configs.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL is not set, events are written to the log")
		return outbox.NewLogPublisher(logger), func() {}
	}

	publisher, err := rabbitmq.NewPublisher(configs.RabbitMQURL, configs.RabbitMQExchange)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	return publisher, func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("close rabbitmq publisher", "error", closeErr)
		}
	}
}

func startWebServer(
	ctx context.Context,
	app *cmd.CompositionRoot,
	auth httpin.TokenAuthenticator,
	port string,
	logger *slog.Logger,
) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := httpin.NewMetrics(registry)

	server := httpin.NewServer(
		httpin.CommandHandlers{
			CreateOrder:       app.CreateCreateOrderCommandHandler(),
			ChangeOrderStatus: app.CreateChangeOrderStatusCommandHandler(),
			RateOrder:         app.CreateRateOrderCommandHandler(),
			DeleteOrder:       app.CreateDeleteOrderCommandHandler(),
			CreateProduct:     app.CreateCreateProductCommandHandler(),
			UpdateProduct:     app.CreateUpdateProductCommandHandler(),
		},
		httpin.QueryHandlers{
			GetOrder:        app.CreateGetOrderQueryHandler(),
			GetActiveOrders: app.CreateGetActiveOrdersQueryHandler(),
			GetTransitions:  app.CreateGetTransitionTableQueryHandler(),
			ListProducts:    app.CreateListProductsQueryHandler(),
		},
		httpin.NewContextIdentity(),
		metrics,
		logger,
	)

	e, err := httpin.NewEcho(server, auth, metrics, logger)
	if err != nil {
		log.Fatalf("Failed to build HTTP server: %v", err)
	}

	go func() {
		logger.Info("http server started", "port", port)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			e.Logger.Fatal(startErr)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
}
