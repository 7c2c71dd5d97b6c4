package yt

import (
	"regexp"
	"strings"
)

var ytRegex = regexp.MustCompile(`(?i)https?://(www\.|m\.)?(youtube\.com/(watch\?v=|shorts/|live/)|youtu\.be/)`)

const baseWatchURL = "https://www.youtube.com/watch?v="

func IsYouTubeURL(s string) bool {
	return ytRegex.MatchString(s)
}

// VideoURL : une entrée contenant youtube.com ou youtu.be est utilisée telle quelle,
// tout le reste est traité comme un identifiant de vidéo.
func VideoURL(idOrURL string) string {
	s := strings.TrimSpace(idOrURL)
	if strings.Contains(s, "youtube.com") || strings.Contains(s, "youtu.be") {
		return s
	}
	return baseWatchURL + s
}

var videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsVideoInput : URL YouTube ou identifiant à 11 caractères.
func IsVideoInput(s string) bool {
	s = strings.TrimSpace(s)
	return IsYouTubeURL(s) || videoIDRegex.MatchString(s)
}
