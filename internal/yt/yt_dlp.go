package yt

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickprogramme/transcripter/internal/logging"
	"github.com/patrickprogramme/transcripter/internal/subtitles"
	"github.com/patrickprogramme/transcripter/pkg/model"
)

// NewYtDlp construit une instance. Path doit être le chemin résolu vers l'exe
func NewYtDlp(name string, resolvedPath string, cfg YtDlpConfig) *YtDlp {
	return &YtDlp{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
	}
}

func (y *YtDlp) executable() string {
	if y.Path != "" {
		return y.Path
	}
	return y.Name
}

// CheckBinary vérifie que le binaire existe et est exécutable (chemin ou nom dans PATH).
func (y *YtDlp) CheckBinary() error {
	if y == nil {
		return fmt.Errorf("%w: client non initialisé", ErrBinaryNotFound)
	}
	exe := y.executable()
	if exe == "" {
		return fmt.Errorf("%w: aucun nom ni chemin configuré", ErrBinaryNotFound)
	}

	if strings.ContainsRune(exe, filepath.Separator) || strings.Contains(exe, "/") {
		info, err := os.Stat(exe)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrBinaryNotFound, exe, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s est un répertoire", ErrBinaryNotFound, exe)
		}
		return nil
	}

	if _, err := exec.LookPath(exe); err != nil {
		return fmt.Errorf("%w: %s introuvable dans PATH", ErrBinaryNotFound, exe)
	}
	return nil
}

// ExtractRaw exécute `yt-dlp --dump-json --skip-download <url>` et renvoie la sortie JSON brute.
// La sortie est validée comme JSON avant d'être renvoyée.
func (y *YtDlp) ExtractRaw(ctx context.Context, url string, cookieFile string) (*ExtractedRaw, error) {
	log := logging.WithComponent("yt-dlp")
	start := time.Now()
	defer func() {
		log.Debug().Dur("elapsed", time.Since(start)).Str("url", url).Msg("metadata extracted")
	}()

	res, err := y.Config.MetadataCommand(y.Path, cookieFile).Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video metadata: %w", classifyRunError(err))
	}

	var jsonLine string
	for _, line := range strings.Split(res.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "{") {
			jsonLine = line
			break
		}
	}
	if jsonLine == "" {
		return nil, fmt.Errorf("aucun JSON détecté dans la sortie: %s", truncate(res.Stdout, 200))
	}

	var warnings []string
	for _, line := range strings.Split(res.Stderr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			warnings = append(warnings, line)
		}
	}
	return &ExtractedRaw{
		JSON:     []byte(jsonLine),
		Warnings: warnings,
	}, nil
}

// DownloadSubtitle télécharge la piste choisie dans un répertoire temporaire,
// lit le fichier de cues puis supprime le répertoire.
func (y *YtDlp) DownloadSubtitle(ctx context.Context, req SubtitleRequest) ([]byte, error) {
	dir, err := os.MkdirTemp("", "transcripter-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	base := filepath.Join(dir, "transcript-"+uuid.NewString())
	manual := req.Source == model.SubSourceManual
	cmd := y.Config.SubtitleCommand(y.Path, req.CookieFile, req.Lang, manual, base+".%(ext)s")
	if _, err := cmd.Run(ctx, req.URL); err != nil {
		return nil, fmt.Errorf("failed to download transcript: %w", classifyRunError(err))
	}

	for _, p := range candidateFiles(base, req.Lang, req.RequestedLang) {
		data, err := os.ReadFile(p)
		if err == nil && len(data) > 0 {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: could not read transcript file for language %q", ErrSubtitleFileMissing, req.RequestedLang)
}

// candidateFiles : <base>.<tag>.vtt puis .srt, pour le code retenu puis les
// variantes du code demandé, sans doublon.
func candidateFiles(base, selected, requested string) []string {
	tags := []string{selected}
	if requested != "" {
		tags = append(tags, subtitles.LanguageVariants(requested)...)
	}
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		for _, f := range []model.Format{model.FormatVTT, model.FormatSRT} {
			out = append(out, base+"."+tag+f.Extension())
		}
	}
	return out
}

// classifyRunError rattache les échecs de lancement du binaire à ErrBinaryNotFound.
func classifyRunError(err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrBinaryNotFound, err)
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
