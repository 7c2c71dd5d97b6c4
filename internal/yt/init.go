package yt

import (
	"context"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/patrickprogramme/transcripter/internal/config"
	"github.com/patrickprogramme/transcripter/internal/logging"
)

const defaultVersionTimeout = 5 * time.Second

// InitYtDlp initialise le client YtDlp, vérifie le binaire et récupère la version.
// Avec yt_dlp.auto_install, go-ytdlp télécharge et met en cache un binaire si besoin.
// Retourne le client (implémentant Interface) et la version.
func InitYtDlp(ctx context.Context, cfg *config.Config) (Interface, string, error) {
	log := logging.WithComponent("yt-dlp")
	ytDlpcfg := NewYtDlpConfig(cfg.YtDlp.ShowWarnings)

	exe := cfg.YtDlp.ResolvedPath
	if cfg.YtDlp.AutoInstall {
		if _, err := ytdlp.Install(ctx, nil); err != nil {
			return nil, "", fmt.Errorf("%w: install: %v", ErrBinaryNotFound, err)
		}
		exe = "" // binaire géré par go-ytdlp
	}

	dl := NewYtDlp(cfg.YtDlp.Name, exe, *ytDlpcfg)
	log.Debug().Str("path", dl.executable()).Msg("yt-dlp path")

	// vérifier la présence du binaire
	if !cfg.YtDlp.AutoInstall {
		if err := dl.CheckBinary(); err != nil {
			return nil, "", err
		}
	}

	// récupérer la version (avec timeout)
	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := dl.GetVersion(vctx)
	if err != nil {
		return dl, "", fmt.Errorf("échec récupération version yt-dlp : %w", err)
	}

	return dl, version, nil
}
