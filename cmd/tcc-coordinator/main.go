package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/goodnatureofminers/tcc-settler/internal/metrics"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/audit"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/coordinator"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/executor"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/ledger"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
	chrepo "github.com/goodnatureofminers/tcc-settler/internal/tcc/repository/clickhouse"
	"github.com/goodnatureofminers/tcc-settler/internal/transport"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	serviceName          = "tcc-coordinator"
	grpcHealthService    = "tcc.Coordinator"
	healthUpdateInterval = time.Second
)

var config Config

func main() {
	if _, err := flags.Parse(&config); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(config.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, config, logger); err != nil {
		logger.Fatal("coordinator stopped with error", zap.Error(err))
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	key, err := cfg.privateKey()
	if err != nil {
		return err
	}

	logger = logger.With(zap.String("network", cfg.Network))
	logger.Info("connecting to ledger", zap.String("rpc", cfg.RPCURL))
	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("dial ledger rpc: %w", err)
	}
	defer eth.Close()

	chainID := big.NewInt(cfg.ChainID)
	if cfg.ChainID == 0 {
		if chainID, err = eth.ChainID(ctx); err != nil {
			return fmt.Errorf("query chain id: %w", err)
		}
	}

	ledgerClient, err := ledger.NewClient(eth, ledger.Config{
		Contract:       common.HexToAddress(cfg.ContractAddress),
		PrivateKey:     key,
		ChainID:        chainID,
		GasLimit:       cfg.GasLimit,
		ReceiptTimeout: cfg.ReceiptTimeout,
		RPS:            cfg.RPCRPS,
	}, metrics.NewLedgerRPC(cfg.Network))
	if err != nil {
		return fmt.Errorf("create ledger client: %w", err)
	}
	logger.Info("service provider",
		zap.String("address", ledgerClient.ProviderAddress().Hex()),
		zap.String("contract", ledgerClient.ContractAddress().Hex()),
		zap.String("chain_id", chainID.String()),
	)
	logBalances(ctx, ledgerClient, logger)

	recorder, stopRecorder, err := newRecorder(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stopRecorder()

	generator, err := executor.NewImageGenerator(logger, cfg.ExecutorDelay, cfg.ExecutorSuccessRate)
	if err != nil {
		return fmt.Errorf("create executor: %w", err)
	}

	coordinatorMetrics := metrics.NewCoordinator(cfg.Network)
	settler, err := coordinator.NewSettlementSubmitter(ledgerClient, coordinatorMetrics, logger,
		coordinator.WithCancelBuffer(cfg.CancelBuffer),
		coordinator.WithTokenURIPrefix(cfg.TokenURIPrefix),
	)
	if err != nil {
		return fmt.Errorf("create settlement submitter: %w", err)
	}
	txCoordinator, err := coordinator.NewTransactionCoordinator(generator, settler, ledgerClient, recorder, coordinatorMetrics, logger)
	if err != nil {
		return fmt.Errorf("create transaction coordinator: %w", err)
	}
	reporter, err := audit.NewLogReporter(metrics.NewAudit(), logger)
	if err != nil {
		return fmt.Errorf("create failure reporter: %w", err)
	}

	service, err := coordinator.NewService(coordinator.Config{
		Provider:      ledgerClient.ProviderAddress(),
		PollInterval:  cfg.PollInterval,
		MaxBlockRange: cfg.MaxBlockRange,
	}, ledgerClient, txCoordinator, reporter, metrics.NewEventPoller(cfg.Network), coordinatorMetrics, logger)
	if err != nil {
		return fmt.Errorf("create coordinator service: %w", err)
	}

	serveMetrics(ctx, cfg.MetricsAddr, logger)
	serveStatus(ctx, cfg, service, logger)
	if err := serveGRPC(ctx, cfg.GRPCAddr, service, logger); err != nil {
		return err
	}

	if err := service.Start(ctx); err != nil {
		return fmt.Errorf("start coordinator: %w", err)
	}
	<-ctx.Done()

	logger.Info("shutting down")
	service.Stop()

	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := service.Wait(drainCtx); err != nil {
		logger.Warn("in-flight settlements still running at exit, ledger timeout will resolve them",
			zap.Int64("in_flight", service.Snapshot().InFlight),
			zap.Error(err),
		)
	}
	return nil
}

func logBalances(ctx context.Context, l *ledger.Client, logger *zap.Logger) {
	balance, err := l.Balance(ctx)
	if err != nil {
		logger.Warn("provider balance unavailable", zap.Error(err))
	} else {
		logger.Info("provider balance", zap.String("balance", model.FormatAmount(balance)))
		if balance.Sign() == 0 {
			logger.Warn("provider balance is zero, settlements may fail for lack of gas")
		}
	}

	earned, err := l.ServiceBalance(ctx)
	if err != nil {
		logger.Warn("service balance unavailable", zap.Error(err))
		return
	}
	logger.Info("service balance on contract", zap.String("balance", model.FormatAmount(earned)))
}

// newRecorder returns the audit recorder and a function that flushes and stops it.
func newRecorder(ctx context.Context, cfg Config, logger *zap.Logger) (coordinator.Recorder, func(), error) {
	if cfg.ClickhouseDSN == "" {
		logger.Info("settlement audit log disabled")
		return audit.NopRecorder{}, func() {}, nil
	}

	repo, err := chrepo.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, nil, fmt.Errorf("create clickhouse repository: %w", err)
	}
	recorder, err := audit.NewRecorder(repo, metrics.NewAudit(), logger)
	if err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("create audit recorder: %w", err)
	}
	// tasks keep recording while they drain after shutdown starts
	recorder.Start(context.WithoutCancel(ctx))

	return recorder, func() {
		recorder.Stop()
		if err := repo.Close(); err != nil {
			logger.Warn("close clickhouse repository", zap.Error(err))
		}
	}, nil
}

func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	serveHTTP(ctx, "metrics", addr, mux, logger)
}

func serveStatus(ctx context.Context, cfg Config, service *coordinator.Service, logger *zap.Logger) {
	handler := transport.NewStatusHandler(service, transport.Info{
		Service:  serviceName,
		Contract: common.HexToAddress(cfg.ContractAddress).Hex(),
		RPCURL:   cfg.RPCURL,
	}, logger)
	serveHTTP(ctx, "status", cfg.HTTPAddr, cors.Default().Handler(handler.Routes()), logger)
}

func serveHTTP(ctx context.Context, name, addr string, handler http.Handler, logger *zap.Logger) {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server", zap.String("server", name))
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.String("server", name), zap.Error(err))
		}
	}()
	go func() {
		logger.Info("Starting HTTP server", zap.String("server", name), zap.String("addr", addr))
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to listen and serve", zap.String("server", name), zap.Error(err))
		}
	}()
}

func serveGRPC(ctx context.Context, addr string, service *coordinator.Service, logger *zap.Logger) error {
	unary := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	stream := []grpc.StreamServerInterceptor{
		grpcRecovery.StreamServerInterceptor(),
		grpcCtxTags.StreamServerInterceptor(),
		grpcPrometheus.StreamServerInterceptor,
		grpcZap.StreamServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(unary...)),
		grpc.StreamInterceptor(grpcMiddleware.ChainStreamServer(stream...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	go transport.WatchHealth(ctx, healthServer, service, grpcHealthService, healthUpdateInterval)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", addr, err)
	}
	go func() {
		logger.Info("Starting GRPC server", zap.String("addr", addr))
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("GRPC server stopped", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()
	return nil
}
