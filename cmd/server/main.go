package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpchandler "github.com/hsbu/gopay-api-demo/internal/delivery/grpc"
	httpdelivery "github.com/hsbu/gopay-api-demo/internal/delivery/http"
	"github.com/hsbu/gopay-api-demo/internal/domain/event"
	"github.com/hsbu/gopay-api-demo/internal/domain/latency"
	"github.com/hsbu/gopay-api-demo/internal/domain/repository"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/config"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/eventlog"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/logging"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/memory"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/postgres"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/qrgenerator"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/rabbitmq"
	"github.com/hsbu/gopay-api-demo/internal/infrastructure/sleeper"
	"github.com/hsbu/gopay-api-demo/internal/usecase/account"
	"github.com/hsbu/gopay-api-demo/internal/usecase/generateqr"
	"github.com/hsbu/gopay-api-demo/internal/usecase/kyc"
	"github.com/hsbu/gopay-api-demo/internal/usecase/payqris"
	"github.com/hsbu/gopay-api-demo/internal/usecase/topup"
	"github.com/hsbu/gopay-api-demo/internal/walletrpc"
)

const (
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	accounts, closeStore, err := initStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("account store init failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	publisher, closePublisher := initPublisher(cfg, logger)
	defer closePublisher()

	delayer := sleeper.New(map[latency.Stage]time.Duration{
		latency.StageLimitCheck: cfg.DelayLimitCheck,
		latency.StagePayment:    cfg.DelayPayment,
		latency.StageTopUp:      cfg.DelayTopUp,
		latency.StageKYC:        cfg.DelayKYC,
	})

	accountUC := account.NewUseCase(accounts, cfg.BasicLimit)
	payUC := payqris.NewUseCase(accounts, delayer, publisher, logger)
	topUpUC := topup.NewUseCase(delayer, publisher, logger)
	kycUC := kyc.NewUseCase(accounts, delayer, publisher, logger, cfg.VerifiedLimit)
	generateQRUC := generateqr.NewUseCase(qrgenerator.NewGenerator(cfg.QRCodeSize))

	created, err := accountUC.Seed(ctx, cfg.DefaultUserID)
	if err != nil {
		logger.Error("seed default account failed", "error", err)
		os.Exit(1)
	}
	logger.Info("default account ready", "user_id", cfg.DefaultUserID, "created", created)

	handler := httpdelivery.NewHandler(httpdelivery.HandlerDeps{
		Pay:           payUC,
		TopUp:         topUpUC,
		KYC:           kycUC,
		Account:       accountUC,
		GenerateQR:    generateQRUC,
		DefaultUserID: cfg.DefaultUserID,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpdelivery.NewRouter(handler, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", serveErr)
			cancel()
		}
	}()

	var grpcSrv *grpc.Server
	if cfg.GRPCEnabled {
		grpcSrv = grpc.NewServer()
		walletrpc.RegisterWalletSimulatorServer(
			grpcSrv,
			grpchandler.NewHandler(payUC, topUpUC, kycUC, accountUC, cfg.DefaultUserID),
		)
		reflection.Register(grpcSrv)

		lis, listenErr := net.Listen("tcp", cfg.GRPCAddr)
		if listenErr != nil {
			logger.Error("listen failed", "error", listenErr)
			cancel()
		} else {
			go func() {
				logger.Info("gRPC server starting", "addr", cfg.GRPCAddr)
				if serveErr := grpcSrv.Serve(lis); serveErr != nil {
					logger.Error("grpc serve failed", "error", serveErr)
				}
			}()
		}
	}

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
}

func initStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.AccountRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("using in-memory account store")
		return memory.NewAccountStore(), func() {}, nil
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	store := postgres.NewAccountStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	logger.Info("using postgres account store")
	return store, pool.Close, nil
}

func initPublisher(cfg config.Config, logger *slog.Logger) (event.Publisher, func()) {
	if cfg.RabbitMQURL == "" {
		return eventlog.NewPublisher(logger), func() {}
	}

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.EventExchange)
	if err != nil {
		logger.Warn("rabbitmq unavailable, logging events instead", "error", err)
		return eventlog.NewPublisher(logger), func() {}
	}

	logger.Info("publishing events to rabbitmq", "exchange", cfg.EventExchange)
	return publisher, publisher.Close
}
