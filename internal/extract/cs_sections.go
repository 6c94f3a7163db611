package extract

import (
	"regexp"
	"strings"
)

type csSectionPatterns struct {
	background     []*regexp.Regexp
	summary        []*regexp.Regexp
	backgroundStop []*regexp.Regexp
	summaryStop    []*regexp.Regexp

	pageOfM      *regexp.Regexp
	pipePage     *regexp.Regexp
	pageNumber   *regexp.Regexp
	patentOffice *regexp.Regexp
	bareNumber   *regexp.Regexp
	paraNumber   *regexp.Regexp
	lineNumber   *regexp.Regexp
	itemNumber   *regexp.Regexp
	multiSpace   *regexp.Regexp
}

func newCSSectionPatterns() csSectionPatterns {
	const numbered = `(?:\[\d{3,4}\]\s*)?(?:\d+[.)]?\s*)?(?:[A-Z]\.\s*)?`
	heading := func(h string) *regexp.Regexp {
		return regexp.MustCompile(`(?im)^[ \t]*` + numbered + h + `[ \t]*[:\-]?[ \t]*`)
	}
	summary := []*regexp.Regexp{
		heading(`SUMMARY\s+OF\s+THE\s+INVENTION`),
		heading(`SUMMARY\s+OF\s+INVENTION`),
		heading(`SUMMARY`),
	}
	objects := []*regexp.Regexp{
		heading(`OBJECTS?\s+OF\s+THE\s+INVENTION`),
		heading(`OBJECTIVES?\s+OF\s+THE\s+INVENTION`),
		heading(`OBJECT\s+OF\s+INVENTION`),
	}
	summaryStop := []*regexp.Regexp{
		heading(`BRIEF\s+DESCRIPTION(?:\s+OF\s+DRAWINGS?)?`),
		heading(`DETAILED\s+DESCRIPTION(?:\s+OF\s+THE\s+INVENTION)?`),
		heading(`DESCRIPTION`),
		heading(`CLAIMS?`),
		heading(`ABSTRACT`),
	}
	var backgroundStop []*regexp.Regexp
	backgroundStop = append(backgroundStop, objects...)
	backgroundStop = append(backgroundStop, summary...)
	backgroundStop = append(backgroundStop, summaryStop...)

	return csSectionPatterns{
		background: []*regexp.Regexp{
			heading(`BACKGROUND\s+OF\s+THE\s+INVENTION`),
			heading(`BACKGROUND\s+OF\s+INVENTION`),
			heading(`BACKGROUND`),
		},
		summary:        summary,
		backgroundStop: backgroundStop,
		summaryStop:    summaryStop,

		pageOfM:      regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+$`),
		pipePage:     regexp.MustCompile(`(?i)^\d+\s*\|\s*Page\b`),
		pageNumber:   regexp.MustCompile(`(?i)^Page\s+\d+$`),
		patentOffice: regexp.MustCompile(`(?i)^THE\s+PATENT\s+OFFICE$`),
		bareNumber:   regexp.MustCompile(`^[\[(]?\d{1,4}[\])]?$`),
		paraNumber:   regexp.MustCompile(`^\[\d{3,5}\]\s*`),
		lineNumber:   regexp.MustCompile(`^\(?\d{1,3}\)?\s+([A-Za-z])`),
		itemNumber:   regexp.MustCompile(`^\(?\d{1,3}\)?[.:]\s*`),
		multiSpace:   regexp.MustCompile(`\s{2,}`),
	}
}

// earliestMatch returns the span of the earliest match of any pattern in
// text at or after from.
func earliestMatch(res []*regexp.Regexp, text string, from int) []int {
	var best []int
	for _, re := range res {
		loc := re.FindStringIndex(text[from:])
		if loc == nil {
			continue
		}
		if best == nil || from+loc[0] < best[0] {
			best = []int{from + loc[0], from + loc[1]}
		}
	}
	return best
}

// BackgroundAndSummary returns the cleaned "Background of the invention" and
// "Summary of the invention" sections of a Complete Specification.
func (e *Extractor) BackgroundAndSummary(text string) (background, summary string) {
	if strings.TrimSpace(text) == "" {
		return "", ""
	}
	sp := e.p.sections
	return e.csSection(text, sp.background, sp.backgroundStop), e.csSection(text, sp.summary, sp.summaryStop)
}

func (e *Extractor) csSection(text string, headings, stops []*regexp.Regexp) string {
	head := earliestMatch(headings, text, 0)
	if head == nil {
		return ""
	}
	end := len(text)
	if stop := earliestMatch(stops, text, head[1]); stop != nil {
		end = stop[0]
	}
	return e.cleanCSSection(text[head[1]:end])
}

// cleanCSSection removes page furniture and paragraph numbering from a
// specification section while keeping its paragraph breaks.
func (e *Extractor) cleanCSSection(section string) string {
	sp := e.p.sections
	text := strings.ReplaceAll(e.stripArtifacts(section), "\r", "\n")

	var out []string
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(e.p.text.hspace.ReplaceAllString(raw, " "))
		if line == "" {
			if n := len(out); n > 0 && out[n-1] != "" {
				out = append(out, "")
			}
			continue
		}
		if sp.pageOfM.MatchString(line) || sp.pipePage.MatchString(line) || sp.pageNumber.MatchString(line) ||
			sp.patentOffice.MatchString(line) || sp.bareNumber.MatchString(line) {
			continue
		}
		line = sp.paraNumber.ReplaceAllString(line, "")
		line = sp.lineNumber.ReplaceAllString(line, "$1")
		line = sp.itemNumber.ReplaceAllString(line, "")
		line = strings.TrimSpace(sp.multiSpace.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	cleaned := strings.Trim(strings.Join(out, "\n"), " \n\t:-")
	return e.p.text.blankRuns.ReplaceAllString(cleaned, "\n\n")
}
