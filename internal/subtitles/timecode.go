package subtitles

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedTimecode est retournée par ParseTimecode uniquement ; ToSeconds ne
// retourne jamais d'erreur.
var ErrMalformedTimecode = errors.New("malformed timecode")

var (
	leadingFloatRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)
	leadingIntRe   = regexp.MustCompile(`^[+-]?\d+`)
)

// ToSeconds convertit "H:MM:SS.fff", "MM:SS.fff" ou "SS.fff" en secondes.
// Règle tolérante : une composante illisible ou absente vaut 0, seul le préfixe
// numérique de chaque composante est lu ("05.000abc" -> 5). La virgule SRT est
// acceptée comme séparateur décimal.
func ToSeconds(token string) float64 {
	token = normalizeTimecode(token)
	parts := strings.Split(token, ":")
	switch len(parts) {
	case 3:
		return leadingInt(parts[0])*3600 + leadingInt(parts[1])*60 + leadingFloat(parts[2])
	case 2:
		return leadingInt(parts[0])*60 + leadingFloat(parts[1])
	default:
		return leadingFloat(token)
	}
}

// ParseTimecode est la variante stricte de ToSeconds : chaque composante doit être
// entièrement numérique et positive. Le parser s'en sert pour compter les
// timecodes mal formés sans changer les valeurs produites.
func ParseTimecode(token string) (float64, error) {
	norm := normalizeTimecode(token)
	parts := strings.Split(norm, ":")
	if norm == "" || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, token)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 || math.IsInf(secs, 0) || math.IsNaN(secs) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, token)
	}

	total := secs
	mult := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, token)
		}
		total += float64(n) * mult
		mult *= 60
	}
	return total, nil
}

func normalizeTimecode(token string) string {
	return strings.ReplaceAll(strings.TrimSpace(token), ",", ".")
}

func leadingFloat(s string) float64 {
	m := leadingFloatRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

func leadingInt(s string) float64 {
	m := leadingIntRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return float64(v)
}

// roundMillis arrondit à 3 décimales (demi-valeur loin de zéro).
func roundMillis(v float64) float64 {
	return math.Round(v*1000) / 1000
}
