package fsutil

import (
	"regexp"
	"strings"
)

// limite de longueur de la chaine
const max = 200

// invalidFileRunes définit les caractères interdits dans les noms de fichiers
// \x00-\x1F sont les caractères de contrôle
var invalidFileRunes = regexp.MustCompile(`[<>:"/\\|?*&=\x00-\x1F]`)

// multiSep réduit les séquences de séparateurs/espaces à un seul "_".
var multiSep = regexp.MustCompile(`[\s_]+`)

// SanitizeFilename nettoie une chaîne (id vidéo ou URL) pour en faire un nom de fichier valide.
// La casse est conservée : les identifiants YouTube y sont sensibles.
func SanitizeFilename(name string) string {
	clean := invalidFileRunes.ReplaceAllString(strings.TrimSpace(name), "_")
	clean = multiSep.ReplaceAllString(clean, "_")
	clean = strings.Trim(clean, "_.")

	if clean == "" {
		return "untitled"
	}
	if len(clean) > max {
		clean = clean[:max]
	}
	return clean
}
