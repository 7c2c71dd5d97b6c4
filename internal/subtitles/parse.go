package subtitles

import (
	"regexp"
	"strings"

	"github.com/patrickprogramme/transcripter/pkg/model"
)

// timingSeparator sépare début et fin sur une ligne de timing VTT/SRT.
const timingSeparator = " --> "

// markupRe : balises inline (<b>, <c.colorE5E5E5>, <00:00:01.000>, ...).
var markupRe = regexp.MustCompile(`<[^>]*>`)

// ParseStats résume un passage du parser. Aucune de ces situations n'est une erreur.
type ParseStats struct {
	TimingLines        int // lignes de timing rencontrées
	Cues               int // cues émis
	Dropped            int // cues sans texte après nettoyage
	MalformedTimecodes int // timecodes refusés par ParseTimecode (ramenés à 0 par ToSeconds)
}

// cueScan est le résultat de la lecture d'un bloc à partir de sa ligne de timing.
type cueScan struct {
	cue       model.Cue
	hasText   bool
	malformed int
	next      int // index de la première ligne non consommée
}

// Parse lit un fichier de cues VTT/SRT et retourne le transcript dans l'ordre du fichier.
// Ne retourne jamais d'erreur : une entrée illisible donne un transcript vide.
func Parse(raw string) Transcript {
	tr, _ := ParseDetailed(raw)
	return tr
}

// ParseDetailed fait le même travail que Parse et retourne en plus les statistiques.
func ParseDetailed(raw string) (Transcript, ParseStats) {
	var stats ParseStats
	lines := strings.Split(raw, "\n")
	cues := make([]model.Cue, 0, len(lines)/3)

	for i := 0; i < len(lines); {
		if !isTimingLine(lines[i]) {
			// en-têtes, identifiants, numéros, blocs STYLE/NOTE...
			i++
			continue
		}

		stats.TimingLines++
		sc := scanCue(lines, i)
		stats.MalformedTimecodes += sc.malformed
		if sc.hasText {
			cues = append(cues, sc.cue)
			stats.Cues++
		} else {
			stats.Dropped++
		}
		i = sc.next
	}

	return Transcript{Cues: cues}, stats
}

func isTimingLine(line string) bool {
	return strings.Contains(strings.TrimSpace(line), timingSeparator)
}

// scanCue lit la ligne de timing lines[at] puis les lignes de texte qui suivent,
// jusqu'à une ligne vide ou une nouvelle ligne de timing.
func scanCue(lines []string, at int) cueScan {
	startTok, endTok := splitTiming(strings.TrimSpace(lines[at]))

	sc := cueScan{}
	for _, tok := range []string{startTok, endTok} {
		if _, err := ParseTimecode(tok); err != nil {
			sc.malformed++
		}
	}
	start := ToSeconds(startTok)
	end := ToSeconds(endTok)

	var b strings.Builder
	i := at + 1
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" || strings.Contains(line, timingSeparator) {
			break
		}
		clean := strings.TrimSpace(markupRe.ReplaceAllString(line, ""))
		if clean != "" {
			b.WriteString(clean)
			b.WriteByte(' ')
		}
	}
	sc.next = i

	text := strings.TrimSpace(b.String())
	if text == "" {
		return sc
	}
	sc.hasText = true
	sc.cue = model.Cue{
		Text:     text,
		Start:    roundMillis(start),
		Duration: roundMillis(end - start), // pas de clamp : fin < début reste visible
	}
	return sc
}

// splitTiming découpe "start --> end [réglages]". Les réglages de cue VTT
// (align:start position:0%) qui suivent le timecode de fin sont ignorés.
func splitTiming(line string) (start, end string) {
	before, after, _ := strings.Cut(line, timingSeparator)
	start = strings.TrimSpace(before)
	if fields := strings.Fields(after); len(fields) > 0 {
		end = fields[0]
	}
	return start, end
}
