package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vietddude/readflow/internal/core/config"
	"github.com/vietddude/readflow/internal/core/domain"
	"github.com/vietddude/readflow/internal/fetch"
	"github.com/vietddude/readflow/internal/infra/blogapi"
	"github.com/vietddude/readflow/internal/infra/kv"
	redisstore "github.com/vietddude/readflow/internal/infra/kv/redis"
	sqlitestore "github.com/vietddude/readflow/internal/infra/kv/sqlite"
	"github.com/vietddude/readflow/internal/reading/history"
	"github.com/vietddude/readflow/internal/reading/paging"
	"github.com/vietddude/readflow/internal/reading/recommend"
)

// Reader is the application struct wiring the content pipeline: kv backend,
// history store, CMS client, recommender, and controller factory.
type Reader struct {
	cfg     *config.AppConfig
	store   kv.Store
	history *history.Store
	api     *blogapi.Client
	rec     *recommend.Recommender
	server  *Server
	log     *slog.Logger
}

// NewReader creates a Reader with all dependencies initialized.
func NewReader(cfg *config.AppConfig) (*Reader, error) {
	store, err := openStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	hist := history.NewStore(context.Background(), store, cfg.History.Capacity)
	api := blogapi.NewClient(cfg.API)
	rec := recommend.New(api, hist, retryConfig(cfg))

	r := &Reader{
		cfg:     cfg,
		store:   store,
		history: hist,
		api:     api,
		rec:     rec,
		log:     slog.Default(),
	}
	r.server = NewServer(r, cfg.Server.Port)
	return r, nil
}

func openStore(cfg config.StoreConfig) (kv.Store, error) {
	switch cfg.Backend {
	case "redis":
		slog.Info("Using Redis store", "url", cfg.Redis.URL)
		return redisstore.NewStore(cfg.Redis)
	case "sqlite":
		slog.Info("Using SQLite store", "path", cfg.SQLite.Path)
		return sqlitestore.NewStore(cfg.SQLite)
	case "memory", "":
		slog.Info("Using Memory store")
		return kv.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}

func retryConfig(cfg *config.AppConfig) fetch.Config {
	return fetch.Config{
		MaxRetries:      cfg.Retry.MaxRetries,
		InitialDelay:    cfg.Retry.InitialDelay,
		BackoffMultiple: cfg.Retry.BackoffMultiple,
		AttemptTimeout:  cfg.Retry.AttemptTimeout,
	}
}

// NewController creates a pagination controller for one UI surface. Each
// surface owns its controller; they are not shared.
func (r *Reader) NewController(mode paging.Mode) *paging.Controller {
	filters := map[string]string{}
	if r.cfg.Logging.Lang != "" {
		filters["lang"] = r.cfg.Logging.Lang
	}
	return paging.NewController(r.api, paging.Config{
		Mode:        mode,
		PageSize:    r.cfg.Paging.PageSize,
		WindowWidth: r.cfg.Paging.WindowWidth,
		Filters:     filters,
		Retry:       retryConfig(r.cfg),
	})
}

// History returns the recency/bookmark store.
func (r *Reader) History() *history.Store {
	return r.history
}

// API returns the CMS client.
func (r *Reader) API() *blogapi.Client {
	return r.api
}

// Related returns recommendations biased by recent views.
func (r *Reader) Related(ctx context.Context, limit int) ([]domain.Post, error) {
	return r.rec.Related(ctx, limit)
}

// Start launches the health/metrics server.
func (r *Reader) Start(ctx context.Context) error {
	go func() {
		if err := r.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.log.Error("health server stopped", "error", err)
		}
	}()
	r.log.Info("Reader started", "port", r.cfg.Server.Port)
	return nil
}

// Stop shuts down the server and closes the store.
func (r *Reader) Stop(ctx context.Context) error {
	if err := r.server.Stop(ctx); err != nil {
		return err
	}
	return r.store.Close()
}
