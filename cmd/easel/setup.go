package main

import (
	"log/slog"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/config"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/adapters/redis"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/observability"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/session"
)

// editorOptions maps the configuration onto editor options.
func editorOptions(cfg config.Config, logger *slog.Logger, hooks domain.HistoryHooks) []easel.Option {
	opts := []easel.Option{
		easel.WithLogger(logger),
		easel.WithHooks(hooks),
		easel.WithCoalesceWindow(cfg.History.CoalesceWindow()),
		easel.WithMaxDepth(cfg.History.MaxDepth),
		easel.WithDuplicateOffset(cfg.Editor.DuplicateOffset.DX, cfg.Editor.DuplicateOffset.DY),
	}
	if bg := cfg.Editor.Background; bg != nil {
		opts = append(opts, easel.WithBackground(bg.Width, bg.Height))
	}
	return opts
}

// newStore returns the Redis store when configured, the in-memory one otherwise.
// The locker is nil for the in-memory store.
func newStore(cfg config.Config, logger *slog.Logger) (ports.SceneStore, ports.DistributedLocker, func() error) {
	if cfg.Redis == nil || cfg.Redis.Addr == "" {
		logger.Info("using in-memory scene store")
		return memory.NewStore(), nil, func() error { return nil }
	}

	var opts []redis.Option
	if cfg.Redis.Prefix != "" {
		opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
	}
	if ttl := cfg.Redis.TTL(); ttl > 0 {
		opts = append(opts, redis.WithTTL(ttl))
	}
	store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = redis.DefaultPrefix
	}
	locker := redis.NewLocker(store.Client(), prefix+"lock:")

	logger.Info("using redis scene store", "addr", cfg.Redis.Addr, "prefix", prefix)
	return store, locker, store.Close
}

// newManager wires the session manager with metrics and structured history logs.
func newManager(cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (*session.Manager, func() error) {
	store, locker, closeStore := newStore(cfg, logger)

	hooks := observability.Chain(metrics.Hooks(), observability.LogHooks(logger))
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithEditorOptions(editorOptions(cfg, logger, hooks)...),
		session.OnOpen(func(docID string, ed *easel.Editor) {
			ed.SubscribeHistory(metrics.DepthListener(docID))
		}),
	}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker), session.WithLockTTL(10*time.Second))
	}
	return session.NewManager(store, opts...), closeStore
}
