package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/patrickprogramme/transcripter/internal/app"
	"github.com/patrickprogramme/transcripter/internal/cache"
	"github.com/patrickprogramme/transcripter/internal/config"
	"github.com/patrickprogramme/transcripter/internal/logging"
	"github.com/patrickprogramme/transcripter/internal/metrics"
	"github.com/patrickprogramme/transcripter/internal/updater"
	"github.com/patrickprogramme/transcripter/internal/yt"
)

const defaultUpdateTimeout = 15 * time.Second

type commandContext struct {
	configPath string
	ytDlpPath  string
	logLevel   string

	cookieFile   string
	cookieString string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		// logger minimal tant que la config n'est pas lue
		logging.Init(logging.DefaultConfig())

		cfg, err := config.Load(strings.TrimSpace(c.configPath))
		if err != nil {
			c.configErr = err
			return
		}

		// si l'utilisateur a passé --yt-dlp-path, l'appliquer et re-resoudre
		if c.ytDlpPath != "" {
			cfg.YtDlp.Path = c.ytDlpPath
			cfg.ResolveYtDlpPath()
		}
		if c.logLevel != "" {
			cfg.Log.Level = c.logLevel
		}
		if c.cookieString != "" || c.cookieFile != "" {
			cfg.Auth.Method = "cookies"
			cfg.Auth.CookieString = c.cookieString
			cfg.Auth.CookieFile = c.cookieFile
		}
		logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

		warnings, err := cfg.Validate()
		log := logging.WithComponent("config")
		for _, w := range warnings {
			log.Warn().Msg(w)
		}
		if err != nil {
			c.configErr = fmt.Errorf("configuration invalide (%s) : %w", cfg.FilePath(), err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// runtimeDeps : tout ce qu'une commande de traitement doit fermer en sortie.
type runtimeDeps struct {
	app      *app.App
	registry *prometheus.Registry
	store    *cache.Store
	version  string
}

func (d *runtimeDeps) Close() {
	if d.store != nil {
		_ = d.store.Close()
	}
}

// newApp initialise yt-dlp (vérification + version), le cache et les métriques.
func (c *commandContext) newApp(ctx context.Context, useCache bool) (*runtimeDeps, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log := logging.WithComponent("init")

	client, ver, err := yt.InitYtDlp(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("yt init: %w", err)
	}
	log.Debug().Str("version", ver).Msg("yt-dlp ready")

	if cfg.YtDlp.AutoUpdateCheck && ver != "" {
		ytDlpUpdateCheck(ctx, ver)
	}

	deps := &runtimeDeps{registry: prometheus.NewRegistry(), version: ver}
	opts := []app.Option{app.WithMetrics(metrics.New(deps.registry))}

	if useCache && cfg.Cache.Enabled {
		store, err := cache.Open(ctx, cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		deps.store = store
		opts = append(opts, app.WithCache(store))
	}

	deps.app = app.New(cfg, client, opts...)
	return deps, nil
}

// ytDlpUpdateCheck journalise si une version plus récente de yt-dlp existe. Jamais bloquant.
func ytDlpUpdateCheck(ctx context.Context, localVer string) {
	log := logging.WithComponent("updater")
	uctx, cancel := context.WithTimeout(ctx, defaultUpdateTimeout)
	defer cancel()

	up, err := updater.CheckYtDlp(uctx, localVer, runtime.GOOS)
	if err != nil {
		log.Warn().Err(err).Msg("update check failed")
		return
	}
	if up.Outdated {
		log.Info().
			Str("current", up.Current).
			Str("latest", up.Latest.Tag).
			Str("download", up.Link()).
			Msg("nouvelle version de yt-dlp disponible")
	}
}

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
