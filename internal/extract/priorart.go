package extract

import (
	"regexp"
	"strings"
)

const (
	minHeadingAbstractWords = 28
	minParagraphWords       = 35
	paragraphFlushWords     = 320
	lastResortWords         = 160
	candidateLineWindow     = 220
	candidateOverrunWords   = 90
	candidateBreakWords     = 45
)

var abstractPhrases = []string{
	"present invention",
	"relates to",
	"discloses",
	"provides",
	"method",
	"system",
	"apparatus",
	"problem",
	"solution",
}

var sectionHeadingStarts = []string{
	"abstract",
	"technical field",
	"field of the invention",
	"background",
	"summary",
	"brief description",
	"detailed description",
	"claims",
	"what is claimed",
	"drawings",
	"examples",
}

type priorArtPatterns struct {
	stopHeading     *regexp.Regexp
	abstractHeading *regexp.Regexp
	abstractInline  *regexp.Regexp
	numberedHeading *regexp.Regexp
	word            *regexp.Regexp
	terminal        *regexp.Regexp
	wherein         *regexp.Regexp
	comprising      *regexp.Regexp

	url            *regexp.Regexp
	searchStamp    *regexp.Regexp
	searchBanner   *regexp.Regexp
	searchResults  *regexp.Regexp
	hyphenWrap     *regexp.Regexp
	continuation   *regexp.Regexp
	multiSpace     *regexp.Regexp
	residue        *regexp.Regexp
	enumeratedTail *regexp.Regexp
	enumeratedItem *regexp.Regexp
	lastWord       *regexp.Regexp

	reference *regexp.Regexp
	dLabel    *regexp.Regexp
}

func newPriorArtPatterns() priorArtPatterns {
	return priorArtPatterns{
		stopHeading: regexp.MustCompile(`(?i)^(?:what\s+is\s+claimed|claims?|we\s+claim|claim\s*\d+|` +
			`detailed\s+description|description(?:\s+of\s+the\s+drawings?)?|` +
			`brief\s+description(?:\s+of\s+the\s+drawings?)?|` +
			`technical\s+field|field\s+of\s+the\s+invention|background(?:\s+of\s+the\s+invention)?|` +
			`summary(?:\s+of\s+the\s+invention)?|examples?|drawings?)\b`),
		abstractHeading: regexp.MustCompile(`(?i)^(?:\[\d{1,3}\]\s*)?abstract(?:\s+of\s+the\s+disclosure)?\b\s*[:\-]?\s*(.*)$`),
		abstractInline:  regexp.MustCompile(`(?i)\babstract\s*[:\-]\s*(.+)$`),
		numberedHeading: regexp.MustCompile(`^\d+[.)]\s+[A-Z][A-Za-z ]{2,80}$`),
		word:            regexp.MustCompile(`[A-Za-z]+`),
		terminal:        regexp.MustCompile(`[.!?]\s*$`),
		wherein:         regexp.MustCompile(`\bwherein\b`),
		comprising:      regexp.MustCompile(`\bcomprising\b`),

		url: regexp.MustCompile(`(?i)https?://\S+|www\.\S+`),
		searchStamp: regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{2,4},?\s+\d{1,2}:\d{2}\s*(?:AM|PM)\s+` +
			`Espacenet\s*[–-]\s*search\s+results\b`),
		searchBanner:  regexp.MustCompile(`(?i)\bEspacenet\s*[–-]\s*search\s+results\b`),
		searchResults: regexp.MustCompile(`(?i)\bsearch\s+results\b`),
		hyphenWrap:    regexp.MustCompile(`(\w)-[ \t]*\n\s*(\w)`),
		continuation: regexp.MustCompile(`(?i)^(?:This\s+application\s+is\s+a\s+)?(?:continuation(?:-in-part)?|division(?:al)?)` +
			`\s+of\s+(?:U\.?S\.?\s+)?(?:application|appl\.?|patent)\b`),
		multiSpace:     regexp.MustCompile(`[ \t]{2,}`),
		residue:        regexp.MustCompile(`(?:\s+[A-Za-z])+$`),
		enumeratedTail: regexp.MustCompile(`\(\d{2,4}\)`),
		enumeratedItem: regexp.MustCompile(`;\s*\([A-Za-z0-9,]+\)\s*[A-Za-z]`),
		lastWord:       regexp.MustCompile(`\w+`),

		reference: regexp.MustCompile(`(?i)\b(D\d{1,3})\s*[:\-]\s*([A-Z]{2}[A-Z0-9]{4,})\s*` +
			`(?:\(|Pub\s*Date\s*[:\-]?\s*)?([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`),
		dLabel: regexp.MustCompile(`^D(\d{1,3})$`),
	}
}

// ParsePriorArt extracts the cleaned abstract of a prior-art document.
func (e *Extractor) ParsePriorArt(doc Document) string {
	return e.ExtractAbstract(doc.Pages)
}

// ExtractAbstract selects the abstract of a prior-art reference from its
// leading pages: the best "Abstract" heading candidate, else the paragraph
// that reads most like an abstract, else the first words of the document.
// The result never exceeds the configured word cap.
func (e *Extractor) ExtractAbstract(pages []string) string {
	if len(pages) > e.opts.PriorArtPageLimit {
		pages = pages[:e.opts.PriorArtPageLimit]
	}
	lines := e.buildLines(strings.Join(pages, "\n\n"))
	if len(lines) == 0 {
		return ""
	}

	abstract := e.firstOf("abstract", []strategy{
		{"heading", func() (string, bool) { return found(e.abstractFromHeadings(lines)) }},
		{"best-paragraph", func() (string, bool) { return found(e.bestParagraph(lines)) }},
		{"leading-words", func() (string, bool) {
			var content []string
			for _, ln := range lines {
				if ln != "" {
					content = append(content, ln)
				}
			}
			return found(e.trimWords(strings.Join(content, " "), lastResortWords))
		}},
	})
	return e.CleanPriorArtText(abstract)
}

// buildLines normalizes each line and drops noise, keeping blank lines as
// paragraph separators.
func (e *Extractor) buildLines(text string) []string {
	var lines []string
	for _, raw := range splitLines(text) {
		ln := e.collapseSpaces(raw)
		if ln == "" {
			lines = append(lines, "")
			continue
		}
		if e.IsNoiseLine(ln) {
			continue
		}
		lines = append(lines, ln)
	}
	if len(strings.TrimSpace(strings.Join(lines, ""))) == 0 {
		return nil
	}
	return lines
}

func (e *Extractor) isSectionHeading(line string) bool {
	pp := e.p.priorArt
	s := strings.Trim(line, " :-")
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, h := range sectionHeadingStarts {
		if strings.HasPrefix(lower, h) {
			return true
		}
	}
	if len(s) <= 85 && strings.ToUpper(s) == s {
		if n := len(pp.word.FindAllString(s, -1)); n >= 1 && n <= 12 {
			return true
		}
	}
	return pp.numberedHeading.MatchString(s)
}

// abstractFromHeadings collects a candidate after every "Abstract" heading
// and keeps the best scoring one. Multi-column layouts can repeat the
// heading.
func (e *Extractor) abstractFromHeadings(lines []string) string {
	pp := e.p.priorArt
	var best *abstractCandidate
	for i, ln := range lines {
		inline, ok := "", false
		if m := pp.abstractHeading.FindStringSubmatch(ln); m != nil {
			inline, ok = m[1], true
		} else if m := pp.abstractInline.FindStringSubmatch(ln); m != nil {
			inline, ok = m[1], true
		}
		if !ok {
			continue
		}
		text := e.collectCandidate(lines, i+1, inline)
		if wordCount(text) < minHeadingAbstractWords {
			continue
		}
		cand := abstractCandidate{text: text, score: e.scoreHeadingCandidate(text)}
		if best == nil || cand.score > best.score {
			best = &cand
		}
	}
	if best == nil {
		return ""
	}
	return best.text
}

// scoreHeadingCandidate prefers candidates of typical abstract length that
// end on a complete sentence.
func (e *Extractor) scoreHeadingCandidate(text string) int {
	score := 0
	switch n := wordCount(text); {
	case n >= 35 && n <= 350:
		score += 6
	case n > 350:
		score += 2
	}
	if e.p.priorArt.terminal.MatchString(text) {
		score += 3
	}
	return score
}

func (e *Extractor) collectCandidate(lines []string, start int, inline string) string {
	pp := e.p.priorArt
	limit := e.opts.AbstractWordCap
	var parts []string
	if s := e.collapseSpaces(inline); s != "" && !e.IsNoiseLine(s) {
		parts = append(parts, s)
	}

	end := min(len(lines), start+candidateLineWindow)
	for i := start; i < end; i++ {
		ln := lines[i]
		if ln == "" {
			if len(parts) > 0 && wordCount(strings.Join(parts, " ")) >= candidateBreakWords {
				break
			}
			continue
		}
		if e.IsNoiseLine(ln) {
			continue
		}
		if pp.stopHeading.MatchString(ln) {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if e.isSectionHeading(ln) && len(parts) >= 2 {
			break
		}
		parts = append(parts, ln)
		joined := strings.Join(parts, " ")
		n := wordCount(joined)
		if n >= limit && pp.terminal.MatchString(joined) {
			break
		}
		if n >= limit+candidateOverrunWords {
			break
		}
	}
	candidate := strings.TrimSpace(strings.Join(parts, " "))
	if candidate == "" {
		return ""
	}
	return e.trimWords(candidate, limit)
}

// scoreParagraph rates how much a paragraph reads like an abstract. Short
// paragraphs are disqualified.
func (e *Extractor) scoreParagraph(text string) int {
	pp := e.p.priorArt
	t := e.collapseSpaces(text)
	n := wordCount(t)
	if n < minParagraphWords {
		return -999
	}
	score := 0
	switch {
	case n >= 55 && n <= 220:
		score += 7
	case n <= 320:
		score += 3
	default:
		score -= 3
	}
	low := strings.ToLower(t)
	for _, kw := range abstractPhrases {
		if strings.Contains(low, kw) {
			score += 2
		}
	}
	score -= strings.Count(low, "claim") * 3
	score -= strings.Count(low, "figure") * 2
	score -= strings.Count(low, "embodiment")
	if pp.wherein.MatchString(low) {
		score -= 2
	}
	if pp.comprising.MatchString(low) {
		score--
	}
	return score
}

func (e *Extractor) bestParagraph(lines []string) string {
	var paragraphs, cur []string
	flush := func() {
		if p := strings.TrimSpace(strings.Join(cur, " ")); p != "" {
			paragraphs = append(paragraphs, p)
		}
		cur = nil
	}
	for _, ln := range lines {
		if ln == "" || e.isSectionHeading(ln) {
			flush()
			continue
		}
		if e.IsNoiseLine(ln) {
			continue
		}
		cur = append(cur, ln)
		if wordCount(strings.Join(cur, " ")) >= paragraphFlushWords {
			flush()
		}
	}
	flush()
	if len(paragraphs) == 0 {
		return ""
	}

	best, bestScore := paragraphs[0], e.scoreParagraph(paragraphs[0])
	for _, p := range paragraphs[1:] {
		if s := e.scoreParagraph(p); s > bestScore {
			best, bestScore = p, s
		}
	}
	if bestScore < 1 {
		e.log.Debug().Int("score", bestScore).Msg("no paragraph scored as abstract, taking longest")
		best = paragraphs[0]
		for _, p := range paragraphs[1:] {
			if wordCount(p) > wordCount(best) {
				best = p
			}
		}
	}
	return e.trimWords(best, e.opts.AbstractWordCap)
}

// trimWords caps text at maxWords. A cut text is shortened to its last
// complete sentence when that keeps at least 35% of it, otherwise it is
// closed with a period.
func (e *Extractor) trimWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	cut := strings.Join(words[:maxWords], " ")
	if strings.HasSuffix(cut, ".") || strings.HasSuffix(cut, "!") || strings.HasSuffix(cut, "?") {
		return cut
	}
	if back := strings.LastIndexAny(cut, ".!?"); back >= 0 && back >= len(cut)*35/100 {
		return strings.TrimSpace(cut[:back+1])
	}
	return strings.TrimRight(cut, " ,;:-") + "."
}

// CleanPriorArtText removes search-engine chrome, URLs and bibliographic
// header lines from an abstract, joins words hyphenated across lines,
// rebuilds paragraphs and closes a truncated last sentence.
func (e *Extractor) CleanPriorArtText(text string) string {
	pp := e.p.priorArt
	t := e.stripArtifacts(text)
	t = pp.url.ReplaceAllString(t, "")
	t = pp.searchStamp.ReplaceAllString(t, " ")
	t = pp.searchBanner.ReplaceAllString(t, " ")
	t = pp.searchResults.ReplaceAllString(t, " ")
	t = pp.hyphenWrap.ReplaceAllString(t, "$1$2")

	var paragraphs, cur []string
	flush := func() {
		if p := strings.TrimSpace(strings.Join(cur, " ")); p != "" {
			paragraphs = append(paragraphs, p)
		}
		cur = nil
	}
	for _, raw := range splitLines(t) {
		ln := e.collapseSpaces(raw)
		if ln == "" {
			flush()
			continue
		}
		if e.IsNoiseLine(ln) || e.isPatentMetaLine(ln) || pp.continuation.MatchString(ln) {
			continue
		}
		cur = append(cur, ln)
	}
	flush()

	cleaned := strings.TrimSpace(pp.multiSpace.ReplaceAllString(strings.Join(paragraphs, "\n\n"), " "))
	return e.polishTail(cleaned)
}

// polishTail drops trailing single-letter OCR residue and makes sure the
// text ends a sentence. Enumerated reference tails such as "(210) ...;(212)"
// are kept whole.
func (e *Extractor) polishTail(text string) string {
	pp := e.p.priorArt
	t := strings.TrimSpace(pp.residue.ReplaceAllString(strings.TrimSpace(text), ""))
	if t == "" {
		return ""
	}
	if strings.ContainsAny(t[len(t)-1:], ".!?") {
		return t
	}
	if pp.enumeratedTail.MatchString(t) || pp.enumeratedItem.MatchString(t) {
		return t + "."
	}
	words := pp.lastWord.FindAllString(t, -1)
	if len(words) > 0 && len(words[len(words)-1]) <= 2 {
		if cut := strings.LastIndexAny(t, ".!?"); cut >= 0 && cut >= len(t)*40/100 {
			return strings.TrimSpace(t[:cut+1])
		}
	}
	return t + "."
}
