package yt

import (
	"github.com/lrstanley/go-ytdlp"
)

// YtDlpConfig représente les flags ajoutables quand on utilise yt-dlp
type YtDlpConfig struct {
	NoWarnings bool // true => ajouter --no-warnings
	NoProgress bool
	NoConfig   bool // true => ajouter --ignore-config pour ignorer les configs utilisateur
}

// NewYtDlpConfig initalise une configuration standard de yt-dlp, showWarning vient du yaml de config
func NewYtDlpConfig(showWarning bool) *YtDlpConfig {
	return &YtDlpConfig{
		NoWarnings: !showWarning,
		NoProgress: true,
		NoConfig:   true,
	}
}

// base construit la commande commune à tous les appels.
// exe vide => go-ytdlp résout lui-même le binaire (PATH ou install gérée).
func (c YtDlpConfig) base(exe, cookieFile string) *ytdlp.Command {
	cmd := ytdlp.New()
	if exe != "" {
		cmd = cmd.SetExecutable(exe)
	}
	if c.NoConfig {
		cmd = cmd.IgnoreConfig()
	}
	if c.NoWarnings {
		cmd = cmd.NoWarnings()
	}
	if c.NoProgress {
		cmd = cmd.NoProgress()
	}
	if cookieFile != "" {
		cmd = cmd.Cookies(cookieFile)
	}
	return cmd
}

// MetadataCommand : équivalent de `yt-dlp --dump-json --skip-download`.
func (c YtDlpConfig) MetadataCommand(exe, cookieFile string) *ytdlp.Command {
	return c.base(exe, cookieFile).DumpJSON().SkipDownload()
}

// SubtitleCommand : téléchargement de la seule piste choisie, sans la vidéo.
// manual => --write-subs, sinon --write-auto-subs.
func (c YtDlpConfig) SubtitleCommand(exe, cookieFile, lang string, manual bool, outputTemplate string) *ytdlp.Command {
	cmd := c.base(exe, cookieFile).
		SkipDownload().
		SubLangs(lang).
		SubFormat("vtt/srt/best").
		Output(outputTemplate)
	if manual {
		return cmd.WriteSubs()
	}
	return cmd.WriteAutoSubs()
}
