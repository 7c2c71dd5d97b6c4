package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/patrickprogramme/transcripter/internal/app"
	"github.com/patrickprogramme/transcripter/internal/subtitles"
	"github.com/patrickprogramme/transcripter/internal/yt"
	"github.com/patrickprogramme/transcripter/pkg/model"
)

type transcriptHandler struct {
	proc     Processor
	defaults app.Request
}

// Get : GET /transcripts/{videoID}?lang=&prefer_manual=&format=&metadata=
func (h *transcriptHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestFrom(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.proc.Process(r.Context(), req)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *transcriptHandler) requestFrom(r *http.Request) (app.Request, error) {
	req := h.defaults
	req.VideoID = chi.URLParam(r, "videoID")
	q := r.URL.Query()

	if v := q.Get("lang"); v != "" {
		req.Language = v
	}
	if v := q.Get("prefer_manual"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("invalid prefer_manual %q", v)
		}
		req.PreferManual = b
	}
	if v := q.Get("format"); v != "" {
		f, err := model.ParseOutputFormat(v)
		if err != nil {
			return req, err
		}
		req.OutputFormat = f
	}
	if v := q.Get("metadata"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("invalid metadata %q", v)
		}
		req.IncludeMetadata = b
	}
	return req, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrEmptyVideoID):
		return http.StatusBadRequest
	case errors.Is(err, subtitles.ErrNoSubtitle):
		return http.StatusNotFound
	case errors.Is(err, yt.ErrBinaryNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
