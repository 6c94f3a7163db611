package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const softHyphen = "\u00ad"

type textPatterns struct {
	cid        *regexp.Regexp
	hspace     *regexp.Regexp
	blankRuns  *regexp.Regexp
	anySpace   *regexp.Regexp
	date       *regexp.Regexp
	devanagari *regexp.Regexp
	letter     *regexp.Regexp
}

func newTextPatterns() textPatterns {
	return textPatterns{
		cid:        regexp.MustCompile(`\(cid:\d+\)`),
		hspace:     regexp.MustCompile(`[ \t]+`),
		blankRuns:  regexp.MustCompile(`\n{3,}`),
		anySpace:   regexp.MustCompile(`\s+`),
		date:       regexp.MustCompile(`([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`),
		devanagari: regexp.MustCompile(`[\x{0900}-\x{097F}]+`),
		letter:     regexp.MustCompile(`[A-Za-z]`),
	}
}

// Normalize removes soft hyphens and glyph-id placeholders, collapses
// horizontal whitespace and runs of blank lines, and trims the result.
// Normalize(Normalize(x)) == Normalize(x).
func (e *Extractor) Normalize(text string) string {
	t := e.stripArtifacts(text)
	if e.opts.UnicodeNFKC {
		// Folding can surface new artifacts (full-width parentheses), and
		// removing artifacts can join composable runes, so fold on both sides.
		t = e.stripArtifacts(norm.NFKC.String(t))
		t = norm.NFKC.String(t)
	}
	t = e.p.text.hspace.ReplaceAllString(t, " ")
	t = e.p.text.blankRuns.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}

// stripArtifacts removes soft hyphens and (cid:N) placeholders only,
// preserving line layout.
func (e *Extractor) stripArtifacts(text string) string {
	t := strings.ReplaceAll(text, softHyphen, "")
	return e.p.text.cid.ReplaceAllString(t, "")
}

// cleanTableCell normalizes a table cell while keeping its line breaks.
func (e *Extractor) cleanTableCell(cell string) string {
	t := e.stripArtifacts(cell)
	var lines []string
	for _, ln := range strings.Split(t, "\n") {
		ln = strings.TrimSpace(e.p.text.hspace.ReplaceAllString(ln, " "))
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return strings.Join(lines, "\n")
}

func (e *Extractor) cleanTable(table Table) [][]string {
	var rows [][]string
	for _, row := range table {
		if len(row) == 0 {
			continue
		}
		cleaned := make([]string, len(row))
		for i, c := range row {
			cleaned[i] = e.cleanTableCell(c)
		}
		rows = append(rows, cleaned)
	}
	return rows
}

func (e *Extractor) collapseSpaces(s string) string {
	return strings.TrimSpace(e.p.text.anySpace.ReplaceAllString(s, " "))
}

func (e *Extractor) firstDate(s string) string {
	if m := e.p.text.date.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

func (e *Extractor) hasLetter(s string) bool {
	return e.p.text.letter.MatchString(s)
}

// firstSubmatch returns the trimmed first capture group of re in s.
func firstSubmatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil && len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func headLines(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// splitSentences splits text after sentence-ending punctuation that is
// followed by whitespace. Empty pieces are dropped.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '.', '!', '?':
		default:
			continue
		}
		if !isSpaceByte(text[i+1]) {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
