package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quiz-host/internal/app"
	"quiz-host/internal/config"
	"quiz-host/internal/display"
	"quiz-host/internal/infra/api"
	"quiz-host/internal/infra/memory"
	"quiz-host/internal/infra/postgres"
	redisstore "quiz-host/internal/infra/redis"
)

// runtime is the controller with its collaborators, shared by serve and console.
type runtime struct {
	ctrl     *app.Controller
	hub      *display.Hub
	interval time.Duration
	closers  []func()
}

func (r *runtime) Close() {
	r.ctrl.Stop()
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func buildRuntime(ctx context.Context, cfg config.Config, logger *zap.Logger, fresh bool) (*runtime, error) {
	rt := &runtime{
		hub:      display.NewHub(),
		interval: config.TTLDuration(cfg.Scoreboard.Interval, 2*time.Second),
	}
	backend := api.NewClient(cfg.Backend.URL, config.TTLDuration(cfg.Backend.Timeout, 5*time.Second))

	var (
		quizzes app.QuizSource  = backend
		rounds  app.RoundSource = backend
	)
	switch cfg.Quiz.Source {
	case "", config.SourceAPI:
	case config.SourcePostgres:
		if cfg.Postgres.URL == "" {
			return nil, fmt.Errorf("quiz source %q needs postgres.url", cfg.Quiz.Source)
		}
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
		loader := postgres.NewQuizLoader(pool, cfg.Quiz.Snapshot)
		quizzes, rounds = loader, loader
	default:
		return nil, fmt.Errorf("unknown quiz source %q", cfg.Quiz.Source)
	}

	var selections app.SelectionStore = memory.NewSelectionStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = client.Close() })
		store := redisstore.NewSelectionStore(client, cfg.Redis.Key, config.TTLDuration(cfg.Redis.TTL, 12*time.Hour))
		if fresh {
			if err := store.Clear(ctx); err != nil {
				logger.Warn("clear selection checkpoint failed", zap.Error(err))
			}
		}
		selections = store
	}

	rt.ctrl = app.NewController(app.Deps{
		Quizzes:    memory.NewQuizRepository(quizzes, config.TTLDuration(cfg.Quiz.TTL, 0)),
		Rounds:     rounds,
		Scores:     backend,
		Selections: selections,
		Renderer:   rt.hub,
		Logger:     logger,
	})
	logger.Info("runtime ready",
		zap.String("backend", cfg.Backend.URL),
		zap.String("quizSource", cfg.Quiz.Source),
		zap.Bool("redis", cfg.Redis.Addr != ""))
	return rt, nil
}
