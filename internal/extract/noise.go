package extract

import (
	"regexp"
	"strings"
)

type noisePatterns struct {
	searchChrome  *regexp.Regexp
	url           *regexp.Regexp
	pageOfM       *regexp.Regexp
	bracketNumber *regexp.Regexp
	bareNumber    *regexp.Regexp
	docNumber     *regexp.Regexp
	bareDate      *regexp.Regexp
	clockTime     *regexp.Regexp
	patentOffice  *regexp.Regexp
	generatedOn   *regexp.Regexp
	ipcCode       *regexp.Regexp
	patentMeta    *regexp.Regexp
	pageNumber    *regexp.Regexp
	pipePage      *regexp.Regexp
	letter        *regexp.Regexp
}

func newNoisePatterns() noisePatterns {
	return noisePatterns{
		searchChrome:  regexp.MustCompile(`(?i)\bsearch\s+results\b|\bEspacenet\b`),
		url:           regexp.MustCompile(`(?i)https?://|www\.|espacenet\.com`),
		pageOfM:       regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+$`),
		bracketNumber: regexp.MustCompile(`^\[\d{1,4}\]$`),
		bareNumber:    regexp.MustCompile(`^\d{1,4}$`),
		docNumber:     regexp.MustCompile(`^[A-Z]{1,3}\d{5,}[A-Z0-9]*$`),
		bareDate:      regexp.MustCompile(`^\d{2,4}[/-]\d{2}[/-]\d{2,4}$`),
		clockTime:     regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:AM|PM)\b`),
		patentOffice:  regexp.MustCompile(`(?i)^THE\s+PATENT\s+OFFICE$`),
		generatedOn:   regexp.MustCompile(`(?i)\bDocument\s+generated\s+on\b`),
		ipcCode:       regexp.MustCompile(`^(?:[A-H]\d{2}[A-Z]\s*\d{1,4}/\d{2,6}[;,]?\s*)+$`),
		patentMeta: regexp.MustCompile(`(?i)^(?:\(\d{2}\)\s*)?(?:Int\.?\s*Cl\.?|U\.?S\.?\s*Cl\.?|CPC\b|Pat\.?\s*No\.?|` +
			`Appl\.?\s*No\.?|Related\s+U\.?S\.?\s+Application\s+Data|Field\s+of\s+Classification\s+Search)`),
		pageNumber: regexp.MustCompile(`(?i)^Page\s+\d+$`),
		pipePage:   regexp.MustCompile(`(?i)^\d+\s*\|\s*Page\b`),
		letter:     regexp.MustCompile(`[A-Za-z]`),
	}
}

// IsNoiseLine reports whether a line is extraction noise rather than
// content: search-engine chrome, URLs, page numbers, document or
// classification codes, timestamps, office boilerplate and lone short tokens.
func (e *Extractor) IsNoiseLine(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return true
	}
	n := e.p.noise
	switch {
	case n.searchChrome.MatchString(s),
		n.url.MatchString(s),
		n.pageOfM.MatchString(s),
		n.bracketNumber.MatchString(s),
		n.bareNumber.MatchString(s),
		n.docNumber.MatchString(s),
		n.bareDate.MatchString(s),
		n.clockTime.MatchString(s),
		n.patentOffice.MatchString(s),
		n.generatedOn.MatchString(s),
		n.ipcCode.MatchString(s):
		return true
	}
	letters := len(n.letter.FindAllString(s, -1))
	return letters < 2 && len(s) < 8
}

// isPatentMetaLine reports bibliographic header lines of a patent
// publication (classification fields, related application data).
func (e *Extractor) isPatentMetaLine(line string) bool {
	return e.p.noise.patentMeta.MatchString(strings.TrimSpace(line))
}

// isPageFurniture reports running headers and footers that interrupt the
// flow of a FER or specification: page counters and the office banner.
func (e *Extractor) isPageFurniture(line string) bool {
	s := strings.TrimSpace(line)
	n := e.p.noise
	return n.pageOfM.MatchString(s) ||
		n.pageNumber.MatchString(s) ||
		n.pipePage.MatchString(s) ||
		n.patentOffice.MatchString(s)
}

// dropPageFurniture removes page-furniture lines from a block of text.
func (e *Extractor) dropPageFurniture(text string) string {
	lines := splitLines(text)
	kept := lines[:0]
	for _, ln := range lines {
		if e.isPageFurniture(ln) {
			continue
		}
		kept = append(kept, ln)
	}
	return strings.Join(kept, "\n")
}
