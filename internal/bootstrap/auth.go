package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/config"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/adapters/authroles"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/adapters/backend"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/adapters/codegen"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/adapters/memory"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/adapters/notify"
	redisadapter "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/adapters/redis"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/adapters/tokens"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/observability/statsd"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/service"
)

// AuthDeps contains what BuildAuthService needs beyond the config.
type AuthDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
	// Backend overrides the HTTP client, mainly for tests.
	Backend ports.Backend
}

// AuthRuntime is the wired auth service plus the resources backing it.
type AuthRuntime struct {
	Service *service.AuthService
	Close   func() error
}

// kvStores groups the durable (session) and ephemeral (challenge) stores.
type kvStores struct {
	durable   ports.KeyValueStore
	ephemeral ports.KeyValueStore
	closers   []func() error
}

// BuildAuthService wires storage, adapters and observability into an AuthService.
// The returned Close releases Redis connections and the metrics socket.
func BuildAuthService(ctx context.Context, deps AuthDeps) (*AuthRuntime, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	stores, err := buildKVStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	closers := stores.closers

	be := deps.Backend
	if be == nil {
		client, clientErr := backend.NewClient(backend.Config{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.Backend.Timeout,
		})
		if clientErr != nil {
			return nil, errors.Join(fmt.Errorf("backend client: %w", clientErr), closeAll(closers))
		}
		be = client
	}

	notifier, err := buildNotifier(cfg.Notify, logger)
	if err != nil {
		return nil, errors.Join(err, closeAll(closers))
	}

	var sink statsd.Sink
	if metrics := buildMetricsSink(logger, cfg.Observability.Metrics); metrics != nil {
		sink = metrics
		closers = append(closers, metrics.Close)
	}

	sessions := service.NewSessionStore(service.SessionStoreOptions{
		KV:     stores.durable,
		Roles:  authroles.NewNameRoleMapper(),
		Logger: logger,
	})
	challenges := service.NewChallengeStore(service.ChallengeStoreOptions{
		KV:     stores.ephemeral,
		Codes:  codegen.New(cfg.Challenge.CodeSource),
		Config: service.ChallengeConfig{TTL: cfg.Challenge.TTL},
	})

	svc := service.NewAuthService(service.AuthServiceOptions{
		Backend: be,
		Stores:  service.AuthStores{Sessions: sessions, Challenges: challenges},
		Config: service.AuthServiceConfig{
			Roles:      authroles.NewNameRoleMapper(),
			Tokens:     tokens.NewJWTInspector(),
			Notifier:   notifier,
			Metrics:    sink,
			Logger:     logger,
			ResetDelay: cfg.Challenge.ResetPasswordDelay,
		},
	})

	return &AuthRuntime{
		Service: svc,
		Close:   func() error { return closeAll(closers) },
	}, nil
}

func buildKVStores(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (kvStores, error) {
	if !cfg.UsesRedis() {
		logger.Debug("using in-memory stores; the session will not outlive this process")
		return kvStores{durable: memory.NewKVStore(), ephemeral: memory.NewKVStore()}, nil
	}

	durable, err := ConnectRedis(ctx, RedisConnectConfig{
		Redis:  cfg.Redis,
		DB:     cfg.Store.DurableDB,
		Logger: logger,
	})
	if err != nil {
		return kvStores{}, fmt.Errorf("connect durable store: %w", err)
	}

	// Cluster clients have a single database, so one connection serves both stores.
	var ephemeral redis.UniversalClient = durable
	closers := []func() error{durable.Close}
	if !cfg.Redis.UseCluster && cfg.Store.EphemeralDB != cfg.Store.DurableDB {
		ephemeral, err = ConnectRedis(ctx, RedisConnectConfig{
			Redis:  cfg.Redis,
			DB:     cfg.Store.EphemeralDB,
			Logger: logger,
		})
		if err != nil {
			return kvStores{}, errors.Join(fmt.Errorf("connect ephemeral store: %w", err), closeAll(closers))
		}
		closers = append(closers, ephemeral.Close)
	}

	return kvStores{
		durable:   redisadapter.NewKVStoreWithPrefix(durable, cfg.Store.DurablePrefix),
		ephemeral: redisadapter.NewKVStoreWithPrefix(ephemeral, cfg.Store.EphemeralPrefix),
		closers:   closers,
	}, nil
}

// buildNotifier relays codes to the webhook when configured. Without one,
// codes are written to the log so development setups can still complete a reset.
func buildNotifier(cfg config.NotifyConfig, logger *slog.Logger) (*notify.Fanout, error) {
	if !cfg.WebhookEnabled() {
		return notify.NewFanout(logger, notify.Channel{Name: "log", Notifier: notify.NewLogNotifier(logger)}), nil
	}

	webhook, err := notify.NewWebhookNotifier(notify.WebhookConfig{
		URL:        cfg.WebhookURL,
		Timeout:    cfg.WebhookTimeout,
		RetryLimit: cfg.WebhookRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("notify webhook: %w", err)
	}
	return notify.NewFanout(logger, notify.Channel{Name: "webhook", Notifier: webhook}), nil
}

// buildMetricsSink returns nil when metrics are disabled or the client cannot be created.
func buildMetricsSink(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
