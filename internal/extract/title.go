package extract

import (
	"regexp"
	"strings"
)

const titleLookahead = 8

type titlePatterns struct {
	heading       *regexp.Regexp
	headingPrefix *regexp.Regexp
	stop          *regexp.Regexp
	bracketNumber *regexp.Regexp
	leadNumber    *regexp.Regexp
	pageOfM       *regexp.Regexp
	formLine      *regexp.Regexp
	labeledLine   *regexp.Regexp
	cellInline    *regexp.Regexp
	cellKey       *regexp.Regexp
}

func newTitlePatterns() titlePatterns {
	return titlePatterns{
		heading:       regexp.MustCompile(`(?i)\bTITLE\s+OF\s+THE\s+INVENTION\b`),
		headingPrefix: regexp.MustCompile(`(?i)^.*?\bTITLE\s+OF\s+THE\s+INVENTION\b\s*[:\-]?\s*`),
		stop: regexp.MustCompile(`(?i)\b(?:NAME\s+AND\s+ADDRESS\s+OF\s+THE\s+APPLICANT|APPLICANTS?|NATIONALITY|ADDRESS|` +
			`TECHNICAL\s+FIELD|FIELD\s+OF\s+INVENTION|BACKGROUND|OBJECT\s+OF\s+THE\s+INVENTION|` +
			`SUMMARY\s+OF\s+THE\s+INVENTION|DETAILED\s+DESCRIPTION|CLAIMS?|ABSTRACT)\b`),
		bracketNumber: regexp.MustCompile(`^\[\d{1,4}\]\s*`),
		leadNumber:    regexp.MustCompile(`^\d+\s+`),
		pageOfM:       regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+$`),
		formLine:      regexp.MustCompile(`(?i)^FORM\s*\d+`),
		labeledLine:   regexp.MustCompile(`(?im)^\s*Title\s*[:\-]\s*([A-Za-z][A-Za-z0-9 &/',.-]{5,})`),
		cellInline:    regexp.MustCompile(`(?is)\bTitle\s*[:\-]\s*(.+)$`),
		cellKey:       regexp.MustCompile(`(?i)^title\s*:?$`),
	}
}

// ExtractTitle resolves the title of the invention: a title cell in the
// tables of the leading pages, then the "TITLE OF THE INVENTION" heading,
// then a plain "Title:" line.
func (e *Extractor) ExtractTitle(text string, tables [][]Table) string {
	return e.firstOf("title", []strategy{
		{"tables", func() (string, bool) { return found(e.titleFromTables(tables)) }},
		{"heading", func() (string, bool) { return found(e.titleFromHeading(text)) }},
		{"labeled-line", func() (string, bool) { return found(firstSubmatch(e.p.title.labeledLine, text)) }},
	})
}

// ferTitle is the title cascade for examination reports, which carry no
// specification tables.
func (e *Extractor) ferTitle(text string) string {
	return e.ExtractTitle(text, nil)
}

func (e *Extractor) cleanTitleLine(s string) string {
	tp := e.p.title
	x := e.stripArtifacts(strings.TrimSpace(s))
	x = tp.bracketNumber.ReplaceAllString(x, "")
	x = tp.leadNumber.ReplaceAllString(x, "")
	return strings.Trim(e.collapseSpaces(x), " :-")
}

func (e *Extractor) titleFromTables(tables [][]Table) string {
	tp := e.p.title
	pages := tables
	if len(pages) > e.opts.ApplicantTablePages {
		pages = pages[:e.opts.ApplicantTablePages]
	}
	for _, page := range pages {
		for _, table := range page {
			for _, row := range e.cleanTable(table) {
				for ci, cell := range row {
					c := strings.TrimSpace(cell)
					if c == "" {
						continue
					}
					if m := tp.cellInline.FindStringSubmatch(c); m != nil {
						if cand := e.cleanTitleLine(m[1]); cand != "" && !tp.stop.MatchString(cand) {
							return cand
						}
					}
					if !tp.cellKey.MatchString(c) {
						continue
					}
					var others []string
					for j, x := range row {
						if j != ci && strings.TrimSpace(x) != "" {
							others = append(others, x)
						}
					}
					if len(others) == 0 {
						continue
					}
					if cand := e.cleanTitleLine(strings.Join(others, " ")); cand != "" && !tp.stop.MatchString(cand) {
						return cand
					}
				}
			}
		}
	}
	return ""
}

// titleFromHeading takes the remainder of the heading line, or collects the
// following lines until a blank line or a stop heading.
func (e *Extractor) titleFromHeading(text string) string {
	tp := e.p.title
	lines := splitLines(text)
	for i, ln := range lines {
		if !tp.heading.MatchString(ln) {
			continue
		}
		if inline := e.cleanTitleLine(tp.headingPrefix.ReplaceAllString(ln, "")); inline != "" && !tp.stop.MatchString(inline) {
			return e.capTitle(inline)
		}

		var parts []string
		end := min(i+1+titleLookahead, len(lines))
		for _, next := range lines[i+1 : end] {
			s := e.cleanTitleLine(next)
			if s == "" {
				if len(parts) > 0 {
					break
				}
				continue
			}
			if tp.pageOfM.MatchString(s) || tp.formLine.MatchString(s) {
				continue
			}
			if tp.stop.MatchString(s) {
				break
			}
			parts = append(parts, s)
			if len(strings.Join(parts, " ")) >= e.opts.TitleMaxChars {
				break
			}
		}
		if title := strings.Trim(e.collapseSpaces(strings.Join(parts, " ")), " :-"); title != "" {
			return e.capTitle(title)
		}
	}
	return ""
}

// capTitle cuts a title to TitleMaxChars at the last word boundary.
func (e *Extractor) capTitle(title string) string {
	limit := e.opts.TitleMaxChars
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.Trim(cut, " ,;:-")
}
