// Package logging configure le logger zerolog global.
// Les logs vont sur stderr : stdout est réservé au JSON produit par les commandes.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config : niveau et format des logs.
type Config struct {
	Level  string // trace, debug, info, warn, error
	Format string // auto, console, json
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "auto"}
}

// Init initialise le logger global. Format "auto" : console si stderr est un terminal, json sinon.
func Init(cfg Config) {
	InitWriter(cfg, os.Stderr)
}

// InitWriter : comme Init mais vers w (utile en test).
func InitWriter(cfg Config, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := w
	if useConsole(cfg.Format, w) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

func useConsole(format string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "text":
		return true
	case "json":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WithComponent retourne un logger tagué avec le composant.
func WithComponent(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// WithVideo retourne un logger tagué avec la vidéo traitée.
func WithVideo(component, videoID string) zerolog.Logger {
	return log.With().Str("component", component).Str("video", videoID).Logger()
}
