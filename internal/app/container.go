package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"foodline-dispatch/internal/config"
	"foodline-dispatch/internal/dispatch"
	"foodline-dispatch/internal/http/handlers"
	"foodline-dispatch/internal/http/router"
	"foodline-dispatch/internal/intake"
	"foodline-dispatch/internal/logx"
	"foodline-dispatch/internal/notify"
	"foodline-dispatch/internal/registry"
	"foodline-dispatch/internal/repository"
	"foodline-dispatch/internal/session"
	"foodline-dispatch/internal/store"
	"foodline-dispatch/internal/token"
	"foodline-dispatch/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerKafka(container); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	if err := provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
	); err != nil {
		return err
	}
	return registerMetrics(container)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	providerArchive := func(ctx context.Context, pool *pgxpool.Pool) (*repository.OrderArchive, error) {
		archive := repository.NewOrderArchive(pool)
		if err := archive.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return archive, nil
	}
	return provideAll(container, providerDB, providerArchive)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) *registry.Registry {
			return registry.New(cfg.Dispatch.MainOperatorID)
		},
		store.New,
		token.NewAllocator,
		func(cfg *config.Config, logger logx.Logger) (notify.Notifier, *notify.KafkaNotifier, error) {
			kn, err := notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.OutTopic)
			if err != nil {
				return nil, nil, err
			}
			if kn == nil {
				logger.Info("outbound kafka not configured, deliveries are dropped")
				return notify.Nop(), nil, nil
			}
			return kn, kn, nil
		},
		func(reg *registry.Registry, notifier notify.Notifier, logger logx.Logger, in sessionMetricsIn) *session.Router {
			return session.NewRouter(reg, notifier, logger, in.SessionsOpen)
		},
		func(
			cfg *config.Config,
			reg *registry.Registry,
			orders *store.OrderStore,
			sessions *session.Router,
			notifier notify.Notifier,
			tokens *token.Allocator,
			archive *repository.OrderArchive,
			logger logx.Logger,
			m *dispatch.Metrics,
		) *dispatch.Engine {
			return dispatch.NewEngine(
				reg, orders, sessions, notifier, tokens, archive,
				nil, cfg.Dispatch.EscalationTimeout, logger, m,
			)
		},
		func(engine *dispatch.Engine, logger logx.Logger) *intake.Collector {
			return intake.NewCollector(engine, logger)
		},
	)
}

func registerKafka(container *dig.Container) error {
	return provideAll(container,
		func(engine *dispatch.Engine, notifier notify.Notifier, logger logx.Logger) kafka.HandleFunc {
			return makeIntakeHandler(engine, notifier, logger)
		},
		func(cfg *config.Config, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	if err := registerRateLimit(container); err != nil {
		return err
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDispatchUsecase,
		handlers.NewOperatorDirectory,
		handlers.NewRelayUsecase,
		handlers.NewOrderReader,
		handlers.NewIntakeUsecase,
		handlers.NewOperatorHandler,
		handlers.NewOrderHandler,
		handlers.NewMessageHandler,
		handlers.NewIntakeHandler,
		router.New,
		serverProvider,
	)
}
