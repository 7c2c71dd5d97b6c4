package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickprogramme/transcripter/internal/auth"
	"github.com/patrickprogramme/transcripter/internal/cache"
	"github.com/patrickprogramme/transcripter/internal/logging"
	"github.com/patrickprogramme/transcripter/internal/metrics"
	"github.com/patrickprogramme/transcripter/internal/subtitles"
	"github.com/patrickprogramme/transcripter/internal/yt"
	"github.com/patrickprogramme/transcripter/pkg/model"
)

// Process exécute le flux complet pour une vidéo :
// métadonnées -> sélection de piste -> téléchargement -> parsing -> résultat.
func (a *App) Process(ctx context.Context, req Request) (*model.Result, error) {
	start := time.Now()
	res, err := a.process(ctx, req.normalized())
	a.metrics.RequestDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		a.metrics.RequestsTotal.WithLabelValues(metrics.ResultOK).Inc()
	case errors.Is(err, subtitles.ErrNoSubtitle):
		a.metrics.RequestsTotal.WithLabelValues(metrics.ResultNotFound).Inc()
	default:
		a.metrics.RequestsTotal.WithLabelValues(metrics.ResultError).Inc()
	}
	return res, err
}

func (a *App) process(ctx context.Context, req Request) (*model.Result, error) {
	if req.VideoID == "" {
		return nil, ErrEmptyVideoID
	}
	if a.ytClient == nil {
		return nil, fmt.Errorf("%w: client non initialisé", yt.ErrBinaryNotFound)
	}
	log := logging.WithVideo("app", req.VideoID)
	url := yt.VideoURL(req.VideoID)

	key := cache.Key(url, req.Language, req.PreferManual, req.OutputFormat, req.IncludeMetadata)
	if a.cache != nil {
		cached, ok, err := a.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Msg("cache lookup failed")
		} else if ok {
			a.metrics.CacheHits.Inc()
			log.Debug().Msg("served from cache")
			return cached, nil
		}
		a.metrics.CacheMisses.Inc()
	}

	cookies, err := auth.Prepare(auth.Options{
		Method:       a.cfg.Auth.Method,
		CookieString: a.cfg.Auth.CookieString,
		CookieFile:   a.cfg.Auth.CookieFile,
	})
	if err != nil {
		return nil, fmt.Errorf("prepare cookies: %w", err)
	}
	defer cookies.Cleanup()

	// Extraction des métadonnées
	exCtx, exCancel := context.WithTimeout(ctx, defaultExtractTimeout)
	defer exCancel()
	raw, err := a.ytClient.ExtractRaw(exCtx, url, cookies.File())
	if err != nil {
		return nil, err
	}
	for _, w := range raw.Warnings {
		log.Debug().Str("yt-dlp", w).Msg("warning")
	}

	meta, err := yt.ParseYTDLP(raw.JSON)
	if err != nil {
		return nil, fmt.Errorf("parse ytdlp: %w", err)
	}

	sel, err := subtitles.Select(meta.Captions, req.Language, req.PreferManual)
	if err != nil {
		return nil, err
	}
	a.metrics.SelectedTracks.WithLabelValues(string(sel.Source)).Inc()
	log.Debug().Str("lang", sel.Lang).Str("source", string(sel.Source)).Msg("track selected")

	data, err := a.download(ctx, url, req, sel, meta, cookies.File())
	if err != nil {
		return nil, err
	}

	tr, stats := subtitles.ParseDetailed(string(data))
	a.metrics.CuesParsed.Add(float64(stats.Cues))
	a.metrics.CuesDropped.Add(float64(stats.Dropped))
	a.metrics.MalformedTimecodes.Add(float64(stats.MalformedTimecodes))
	if stats.MalformedTimecodes > 0 {
		log.Warn().Int("count", stats.MalformedTimecodes).Msg("malformed timecodes parsed leniently")
	}

	res := buildResult(req, sel, tr, meta)

	if a.cache != nil {
		if err := a.cache.Put(ctx, key, res); err != nil {
			log.Warn().Err(err).Msg("cache store failed")
		}
	}
	return res, nil
}

// download : yt-dlp d'abord ; si aucun fichier n'est produit, téléchargement direct
// d'une piste vtt/srt du catalogue.
func (a *App) download(ctx context.Context, url string, req Request, sel subtitles.Selection, meta *model.Meta, cookieFile string) ([]byte, error) {
	dlCtx, cancel := context.WithTimeout(ctx, defaultDownloadTimeout)
	defer cancel()

	data, err := a.ytClient.DownloadSubtitle(dlCtx, yt.SubtitleRequest{
		URL:           url,
		Lang:          sel.Lang,
		RequestedLang: req.Language,
		Source:        sel.Source,
		CookieFile:    cookieFile,
	})
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, yt.ErrSubtitleFileMissing) {
		return nil, err
	}

	for _, tr := range subtitles.SelectedTracks(meta.Captions, sel) {
		if !tr.Format.IsCueText() || tr.URL == "" {
			continue
		}
		b, ferr := a.fetch(ctx, tr.URL)
		if ferr != nil {
			a.metrics.FallbackDownloads.WithLabelValues(metrics.ResultError).Inc()
			log := logging.WithVideo("app", req.VideoID)
			log.Debug().Err(ferr).Str("format", tr.Format.String()).Msg("direct download failed")
			continue
		}
		a.metrics.FallbackDownloads.WithLabelValues(metrics.ResultOK).Inc()
		return b, nil
	}
	return nil, err
}

func buildResult(req Request, sel subtitles.Selection, tr subtitles.Transcript, meta *model.Meta) *model.Result {
	res := &model.Result{
		YoutubeID:    req.VideoID,
		SubtitleType: sel.SubtitleType(),
		Language:     sel.Lang,
	}
	if req.OutputFormat.WantsStructured() {
		res.Transcript = tr.Cues
		if res.Transcript == nil {
			res.Transcript = []model.Cue{}
		}
	}
	if req.OutputFormat.WantsPlainText() {
		text := tr.PlainText()
		res.TranscriptText = &text
	}
	if req.IncludeMetadata && meta != nil {
		md := meta.Video
		res.Metadata = &md
	}
	return res
}
