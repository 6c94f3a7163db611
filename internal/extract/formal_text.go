package extract

import (
	"regexp"
	"strings"
)

const (
	formalRemarkCap = 900
	formalRowCap    = 1200
)

type mixedCue struct {
	category string
	re       *regexp.Regexp
}

type formalTextPatterns struct {
	header        *regexp.Regexp
	furniture     *regexp.Regexp
	partFourRest  *regexp.Regexp
	leadingPipes  *regexp.Regexp
	documentsLine *regexp.Regexp
	partFourLine  *regexp.Regexp
	emptyQuote    *regexp.Regexp
	drawnToOf     *regexp.Regexp
	toOfAct       *regexp.Regexp
	ivTail        *regexp.Regexp
	nonAlnum      *regexp.Regexp
	mixed         []mixedCue
}

func newFormalTextPatterns() formalTextPatterns {
	return formalTextPatterns{
		header:        regexp.MustCompile(`(?i)Objections?[^\n]*?Remarks?`),
		furniture:     regexp.MustCompile(`(?i)\n?Page\s+\d+\s+of\s+\d+\s*\n?THE\s+PATENT\s+OFFICE\s*\n?`),
		partFourRest:  regexp.MustCompile(`(?is)\bPART\s*[-–]\s*IV\b.*$`),
		leadingPipes:  regexp.MustCompile(`^[/|]+`),
		documentsLine: regexp.MustCompile(`(?i)^DOCUMENTS\s+ON\s+RECORD`),
		partFourLine:  regexp.MustCompile(`(?i)^PART\s*[-–]\s*IV`),
		emptyQuote:    regexp.MustCompile(`words ""`),
		drawnToOf:     regexp.MustCompile(`(?i)Applicant attention is drawn to of the Patents Act\.?`),
		toOfAct:       regexp.MustCompile(`(?i)\bto of the Patents Act\.?`),
		ivTail:        regexp.MustCompile(`(?i)\s*-\s*IV\s*:?\s*/?\s*$`),
		nonAlnum:      regexp.MustCompile(`[^a-z0-9]+`),
		mixed: []mixedCue{
			{"Form 1", regexp.MustCompile(`(?i)\bWhile filing the instant application,\s*in Form\s*1\b`)},
			{"Form 2", regexp.MustCompile(`(?i)\bIn Form\s*2\b`)},
			{"Form 28", regexp.MustCompile(`(?i)\bApplicant is required to submit Form 28\b`)},
		},
	}
}

// FormalRowsFromText parses formal-requirement rows from the flat text of
// the PART-III section, for documents whose tables could not be recovered.
// Each line naming a category opens a row and the lines below it form its
// remark. Rows of the same category are merged in discovery order. If no row
// is recognised the whole section becomes one fallback row.
func (e *Extractor) FormalRowsFromText(text string) []FormalRow {
	ft := e.p.formal.fromText
	if strings.TrimSpace(text) == "" {
		return []FormalRow{}
	}

	tableText := text
	if loc := ft.header.FindStringIndex(text); loc != nil {
		tableText = strings.TrimSpace(text[loc[1]:])
	}
	tableText = ft.furniture.ReplaceAllString(tableText, "\n")
	tableText = strings.TrimSpace(ft.partFourRest.ReplaceAllString(tableText, ""))

	var rows []FormalRow
	var current *categoryRule
	var parts []string
	flush := func() {
		if current != nil {
			if remark := e.collapseSpaces(strings.Join(parts, " ")); remark != "" {
				rows = append(rows, FormalRow{
					Category: current.Category,
					Remark:   truncateRunes(e.cleanFormalRemark(remark), formalRowCap),
				})
			}
		}
		current = nil
		parts = nil
	}

	for _, raw := range splitLines(tableText) {
		ln := e.collapseSpaces(ft.leadingPipes.ReplaceAllString(strings.TrimSpace(raw), ""))
		if len(ln) <= 2 {
			continue
		}
		if ft.documentsLine.MatchString(ln) || ft.partFourLine.MatchString(ln) {
			break
		}
		if rule := e.categoryFromLine(strings.Trim(ln, " /:-")); rule != nil {
			flush()
			current = rule
			if rest := strings.Trim(rule.leading.ReplaceAllString(ln, ""), " :-"); rest != "" {
				parts = append(parts, rest)
			}
			continue
		}
		if current != nil {
			parts = append(parts, ln)
		}
	}
	flush()

	rows = e.splitMixedFormalRows(rows)

	byCategory := map[string][]string{}
	var order []string
	for _, r := range rows {
		if _, ok := byCategory[r.Category]; !ok {
			order = append(order, r.Category)
		}
		byCategory[r.Category] = append(byCategory[r.Category], r.Remark)
	}
	final := []FormalRow{}
	for _, cat := range order {
		if joined := e.collapseSpaces(strings.Join(byCategory[cat], " ")); joined != "" {
			final = append(final, FormalRow{Category: cat, Remark: truncateRunes(joined, formalRemarkCap)})
		}
	}

	if len(final) == 0 && tableText != "" {
		e.log.Debug().Msg("no formal categories recognised, emitting section as one row")
		return []FormalRow{{Category: FallbackFormalCategory, Remark: truncateRunes(tableText, e.opts.FormalFallbackCap)}}
	}
	return final
}

// cleanFormalRemark repairs common OCR gaps in formal remarks and removes
// repeated sentences, keeping the first occurrence.
func (e *Extractor) cleanFormalRemark(remark string) string {
	ft := e.p.formal.fromText
	t := e.collapseSpaces(remark)
	if t == "" {
		return ""
	}
	t = ft.emptyQuote.ReplaceAllString(t, `words "We Claim"`)
	t = ft.drawnToOf.ReplaceAllString(t, "Applicant attention is drawn to section 78(2) of the Patents Act.")
	t = ft.toOfAct.ReplaceAllString(t, "to section 78(2) of the Patents Act.")
	t = strings.TrimSpace(ft.ivTail.ReplaceAllString(e.collapseSpaces(t), ""))

	seen := map[string]bool{}
	var kept []string
	for _, s := range splitSentences(t) {
		key := ft.nonAlnum.ReplaceAllString(strings.ToLower(s), "")
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, s)
	}
	if len(kept) > 0 {
		t = strings.Join(kept, " ")
	}
	return t
}

// splitMixedFormalRows splits a remark that runs into the next category's
// text at a known opening phrase of that category.
func (e *Extractor) splitMixedFormalRows(rows []FormalRow) []FormalRow {
	out := make([]FormalRow, 0, len(rows))
	for _, r := range rows {
		split := false
		for _, cue := range e.p.formal.fromText.mixed {
			loc := cue.re.FindStringIndex(r.Remark)
			if loc == nil || cue.category == r.Category {
				continue
			}
			if head := e.cleanFormalRemark(r.Remark[:loc[0]]); head != "" {
				out = append(out, FormalRow{Category: r.Category, Remark: head})
			}
			if tail := e.cleanFormalRemark(r.Remark[loc[0]:]); tail != "" {
				out = append(out, FormalRow{Category: cue.category, Remark: tail})
			}
			split = true
			break
		}
		if !split {
			out = append(out, FormalRow{Category: r.Category, Remark: e.cleanFormalRemark(r.Remark)})
		}
	}
	return out
}
