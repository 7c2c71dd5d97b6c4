package model

import (
	"fmt"
	"strings"
)

// Format : extension d'un fichier de sous-titres tel que produit par yt-dlp.
type Format string

const (
	FormatVTT   Format = "vtt"
	FormatSRT   Format = "srt"
	FormatJSON3 Format = "json3"
	FormatSRV3  Format = "srv3"
	FormatTTML  Format = "ttml"
)

// du format en chaine à la constante de type Format, return une erreur si format inconnu
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "vtt":
		return FormatVTT, nil
	case "srt":
		return FormatSRT, nil
	case "json3":
		return FormatJSON3, nil
	case "srv3":
		return FormatSRV3, nil
	case "ttml":
		return FormatTTML, nil
	default:
		return "", fmt.Errorf("format de sous-titres inconnu: %s", s)
	}
}

// IsCueText indique si le format est un fichier texte à cues (VTT/SRT),
// le seul que le parser sait lire.
func (f Format) IsCueText() bool {
	return f == FormatVTT || f == FormatSRT
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}

// OutputFormat : champs de transcript présents dans le Result.
type OutputFormat string

const (
	OutputStructured OutputFormat = "structured"
	OutputPlainText  OutputFormat = "plainText"
	OutputBoth       OutputFormat = "both"
)

// ParseOutputFormat accepte aussi les variantes en minuscules ("plaintext").
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "structured":
		return OutputStructured, nil
	case "plaintext", "plain", "text":
		return OutputPlainText, nil
	case "both":
		return OutputBoth, nil
	default:
		return "", fmt.Errorf("output format inconnu: %q (structured, plainText, both)", s)
	}
}

func (o OutputFormat) WantsStructured() bool {
	return o == OutputStructured || o == OutputBoth
}

func (o OutputFormat) WantsPlainText() bool {
	return o == OutputPlainText || o == OutputBoth
}
