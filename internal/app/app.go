package app

import (
	"context"
	"errors"
	"time"

	"github.com/patrickprogramme/transcripter/internal/cache"
	"github.com/patrickprogramme/transcripter/internal/config"
	"github.com/patrickprogramme/transcripter/internal/fetch"
	"github.com/patrickprogramme/transcripter/internal/metrics"
	"github.com/patrickprogramme/transcripter/internal/yt"
)

const (
	defaultExtractTimeout  = 2 * time.Minute
	defaultDownloadTimeout = 2 * time.Minute
	defaultFallbackTimeout = 15 * time.Second
	defaultLockTimeout     = 5 * time.Second
)

// ErrEmptyVideoID : identifiant ou URL vide.
var ErrEmptyVideoID = errors.New("the video ID/URL parameter is empty")

// FetchFunc télécharge une URL (fichier de sous-titres) ; remplaçable en test.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

func defaultFetch(ctx context.Context, url string) ([]byte, error) {
	return fetch.FetchBytesWithTimeout(ctx, url, defaultFallbackTimeout, fetch.DefaultMaxBytes)
}

// App orchestre les dépendances (client yt-dlp, cache, métriques).
type App struct {
	cfg      *config.Config
	ytClient yt.Interface
	cache    *cache.Store
	metrics  *metrics.Metrics
	fetch    FetchFunc
}

type Option func(*App)

func WithCache(s *cache.Store) Option {
	return func(a *App) { a.cache = s }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

func WithFetcher(f FetchFunc) Option {
	return func(a *App) { a.fetch = f }
}

// New construit l'application. Pour les tests, on injecte une implémentation factice de yt.Interface.
func New(cfg *config.Config, client yt.Interface, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		cfg:      cfg,
		ytClient: client,
		fetch:    defaultFetch,
	}
	for _, o := range opts {
		o(a)
	}
	if a.metrics == nil {
		a.metrics = metrics.New(nil)
	}
	return a
}

// Config retourne la configuration utilisée.
func (a *App) Config() *config.Config { return a.cfg }
