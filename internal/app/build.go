package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/ent0n29/lexassist/internal/config"
	"github.com/ent0n29/lexassist/internal/conversation"
	"github.com/ent0n29/lexassist/internal/httpapi"
	"github.com/ent0n29/lexassist/internal/inference"
	"github.com/ent0n29/lexassist/internal/observability"
	"github.com/ent0n29/lexassist/internal/resolver"
)

type BuildResult struct {
	Config       config.Config
	API          *httpapi.Server
	Orchestrator *resolver.Orchestrator
	Store        conversation.Store
	Metrics      *observability.Metrics
	Registry     *prometheus.Registry
	// RemoteEnabled reports whether a remote inference tier was configured.
	RemoteEnabled bool

	// Cleanup should be called on shutdown to release external resources (DB pool).
	Cleanup func() error
}

func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*BuildResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(cfg.MetricsNamespace, registry)

	store, err := conversation.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("conversation store init failed: %w", err)
	}

	generator, err := inference.NewGenerator(inference.Config{
		Mode:     cfg.InferenceMode,
		URL:      cfg.InferenceURL,
		APIToken: cfg.InferenceAPIToken,
		Timeout:  cfg.InferenceTimeout,
		Parameters: inference.Parameters{
			MaxLength:   cfg.InferenceMaxLength,
			Temperature: cfg.InferenceTemperature,
			DoSample:    cfg.InferenceDoSample,
		},
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("inference init failed: %w", err)
	}

	var resolvers []resolver.Resolver
	if generator != nil {
		resolvers = append(resolvers, resolver.NewRemoteResolver(generator, metrics))
	}
	resolvers = append(resolvers, resolver.NewLocalResolver(store))

	recordTiers := []resolver.Tier{resolver.TierLocal}
	if cfg.HistoryRecordRemote {
		recordTiers = append(recordTiers, resolver.TierRemote)
	}
	orchestrator := resolver.New(store, resolvers, logger, metrics, resolver.Options{
		DefaultUserID: cfg.DefaultUserID,
		RecordTiers:   recordTiers,
		RedactPII:     cfg.HistoryRedactPII,
	})

	logger.Info("legal assistant assembled",
		zap.Bool("remote_tier", generator != nil),
		zap.String("inference_mode", cfg.InferenceMode),
		zap.Bool("postgres_history", cfg.DatabaseURL != ""),
	)

	api := httpapi.New(cfg, orchestrator, metrics, logger)

	cleanup := func() error {
		if err := store.Close(); err != nil {
			return fmt.Errorf("close conversation store: %w", err)
		}
		return nil
	}

	return &BuildResult{
		Config:        cfg,
		API:           api,
		Orchestrator:  orchestrator,
		Store:         store,
		Metrics:       metrics,
		Registry:      registry,
		RemoteEnabled: generator != nil,
		Cleanup:       cleanup,
	}, nil
}

// StartBackground launches the idle-user janitor when history lives in memory.
// Postgres history is bounded per user by the store itself.
func (b *BuildResult) StartBackground(ctx context.Context) {
	mem, ok := b.Store.(*conversation.InMemoryStore)
	if !ok {
		return
	}
	metrics := b.Metrics
	mem.SetEvictHook(func(string) {
		metrics.SetTrackedUsers(mem.Users())
	})
	mem.StartJanitor(ctx, b.Config.HistoryJanitorInterval, b.Config.HistoryIdleTTL)
}
