package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"foodline-dispatch/internal/config"
	"foodline-dispatch/internal/dispatch"
	"foodline-dispatch/internal/http/pprofserver"
	"foodline-dispatch/internal/logx"
	"foodline-dispatch/internal/notify"
	"foodline-dispatch/internal/repository"
	"foodline-dispatch/internal/token"
	"foodline-dispatch/internal/transport/kafka"
)

// MustRun starts the service using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In

	Ctx      context.Context
	Cfg      *config.Config
	Logger   logx.Logger
	Server   *http.Server
	Pool     *pgxpool.Pool
	Engine   *dispatch.Engine
	Tokens   *token.Allocator
	Archive  *repository.OrderArchive
	Consumer *kafka.Consumer
	Producer *notify.KafkaNotifier
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		// resume from the archived high-water mark so tokens stay
		// unique across restarts
		last, err := in.Archive.LastToken(in.Ctx)
		if err != nil {
			return fmt.Errorf("seed token allocator: %w", err)
		}
		in.Tokens.Seed(last)

		startServer(in.Server, in.Logger)
		pprofSrv := startPprof(in.Cfg, in.Logger)
		consumerDone := startConsumer(in.Ctx, in.Consumer, in.Logger)

		waitForShutdown(in.Ctx, in.Logger)

		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		if pprofSrv != nil {
			gracefulShutdown(pprofSrv, in.Logger, 5*time.Second)
		}
		if consumerDone != nil {
			<-consumerDone
		}
		in.Engine.Shutdown()
		closeResources(in)
		return nil
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("service-dispatch listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func startPprof(cfg *config.Config, logger logx.Logger) *http.Server {
	if cfg.Pprof.Port <= 0 {
		return nil
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Pprof.Port),
		Handler:           pprofserver.Handler(pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("pprof listening", logx.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("pprof listen error", logx.Err(err))
		}
	}()
	return srv
}

func startConsumer(ctx context.Context, consumer *kafka.Consumer, logger logx.Logger) chan struct{} {
	if consumer == nil {
		logger.Info("intake kafka not configured, consumer disabled")
		return nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("kafka consumer stopped", logx.Err(err))
		}
	}()
	return done
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down service-dispatch")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(in runIn) {
	if in.Consumer != nil {
		if err := in.Consumer.Close(); err != nil {
			in.Logger.Error("kafka consumer close error", logx.Err(err))
		}
	}
	if in.Producer != nil {
		if err := in.Producer.Close(); err != nil {
			in.Logger.Error("kafka producer close error", logx.Err(err))
		}
	}
	if err := in.Server.Close(); err != nil {
		in.Logger.Error("server close error", logx.Err(err))
	}
	in.Pool.Close()
	_ = in.Logger.Sync()
}
