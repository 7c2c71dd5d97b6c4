package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/patrickprogramme/transcripter/internal/fsutil"
	"github.com/patrickprogramme/transcripter/internal/logging"
	"github.com/patrickprogramme/transcripter/internal/subtitles"
	"github.com/patrickprogramme/transcripter/internal/yt"
	"github.com/patrickprogramme/transcripter/pkg/model"
)

// Statuts d'un item de batch.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusFailed   = "failed"
)

// NoCues : BatchItem.Cues d'un item sans sortie structurée ou en échec.
const NoCues = -1

// BatchItem : compte rendu pour une vidéo.
type BatchItem struct {
	VideoID      string
	Status       string
	SubtitleType string
	Cues         int // NoCues si la sortie ne contient pas de cues
	Path         string
	Err          error
}

// BatchReport : compte rendu d'un lot, dans l'ordre des entrées.
type BatchReport struct {
	RunID string
	Items []BatchItem
}

func (r BatchReport) Count(status string) int {
	n := 0
	for _, it := range r.Items {
		if it.Status == status {
			n++
		}
	}
	return n
}

// ReadInputs lit une vidéo par ligne. Lignes vides et commentaires (#) ignorés.
func ReadInputs(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	return out, nil
}

// RunBatch traite reqs dans l'ordre et écrit <id>.json dans outDir.
// Sans continue_on_fail, la première erreur arrête le lot.
// Avec, l'item en échec produit {"youtubeId", "error"}. Un binaire yt-dlp absent arrête toujours le lot.
func (a *App) RunBatch(ctx context.Context, reqs []Request, outDir string) (BatchReport, error) {
	report := BatchReport{RunID: uuid.NewString()}
	log := logging.WithComponent("batch").With().Str("run", report.RunID).Logger()

	lockCtx, cancel := context.WithTimeout(ctx, defaultLockTimeout)
	lock, err := fsutil.LockDir(lockCtx, outDir)
	cancel()
	if err != nil {
		return report, err
	}
	defer func() { _ = lock.Unlock() }()

	used := make(map[string]bool, len(reqs))
	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		item := BatchItem{VideoID: strings.TrimSpace(req.VideoID), Cues: NoCues}
		res, perr := a.Process(ctx, req)
		if perr != nil {
			item.Err = perr
			item.Status = StatusFailed
			if errors.Is(perr, subtitles.ErrNoSubtitle) {
				item.Status = StatusNotFound
			}
			log.Warn().Err(perr).Str("video", item.VideoID).Int("index", i).Msg("item failed")

			if !a.cfg.ContinueOnFail || errors.Is(perr, yt.ErrBinaryNotFound) || errors.Is(perr, context.Canceled) {
				report.Items = append(report.Items, item)
				return report, fmt.Errorf("item %d (%s): %w", i, item.VideoID, perr)
			}
			res = &model.Result{YoutubeID: item.VideoID, Error: perr.Error()}
		} else {
			item.Status = StatusOK
			item.SubtitleType = res.SubtitleType
			if res.Transcript != nil {
				item.Cues = len(res.Transcript)
			}
		}

		base := fsutil.SanitizeFilename(item.VideoID)
		name := base
		for n := i; used[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		if name != base {
			log.Warn().Str("video", item.VideoID).Str("file", name+".json").Msg("output name already used, index appended")
		}
		used[name] = true
		item.Path = filepath.Join(outDir, name+".json")
		if err := fsutil.WriteJSONAtomic(item.Path, res); err != nil {
			report.Items = append(report.Items, item)
			return report, err
		}
		report.Items = append(report.Items, item)
	}

	log.Info().
		Int("ok", report.Count(StatusOK)).
		Int("not_found", report.Count(StatusNotFound)).
		Int("failed", report.Count(StatusFailed)).
		Msg("batch done")
	return report, nil
}
