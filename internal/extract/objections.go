package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Canonical objection headings.
const (
	HeadingNovelty             = "NOVELTY"
	HeadingInventiveStep       = "INVENTIVE STEP"
	HeadingNonPatentability    = "NON PATENTABILITY"
	HeadingRegardingClaims     = "REGARDING CLAIMS"
	HeadingSufficiency         = "SUFFICIENCY OF DISCLOSURE"
	HeadingClarity             = "CLARITY AND CONCISENESS"
	HeadingDefinitiveness      = "DEFINITIVENESS"
	HeadingScope               = "SCOPE"
	HeadingOthersRequirements  = "OTHERS REQUIREMENTS"
	objectionHeadingAlternates = `NOVELTY|INVENTIVE\s+STEP|NON[\s\-]*PATENTABILITY|REGARDING\s+CLAIMS|` +
		`SUFFICIENCY\s+OF\s+DISCLOSURE|CLARITY\s+AND\s+CONCISENESS|DEFINITIVENESS|` +
		`SCOPE(?:\s+OF(?:\s+THE)?\s+CLAIMS?)?|OTHERS?\s+REQUIREMENTS?`
)

type objectionPatterns struct {
	observationStarts []*regexp.Regexp
	observationEnds   []*regexp.Regexp
	formalCut         *regexp.Regexp
	strict            *regexp.Regexp
	lenient           *regexp.Regexp
	scope             *regexp.Regexp
	nonPatentability  *regexp.Regexp
	others            *regexp.Regexp
	subsection        *regexp.Regexp
	rule              *regexp.Regexp
	claimsParen       *regexp.Regexp
	claimsList        *regexp.Regexp
	digit             *regexp.Regexp
}

func newObjectionPatterns() objectionPatterns {
	return objectionPatterns{
		observationStarts: []*regexp.Regexp{
			regexp.MustCompile(`(?i)B\.\s*Detailed\s+observations\s+on\s+the\s+requirements\s+under\s+the\s+Act`),
			regexp.MustCompile(`(?i)Detailed\s+observations\s+on\s+the\s+requirements\s+under\s+the\s+Act`),
		},
		observationEnds: []*regexp.Regexp{
			regexp.MustCompile(`(?i)PART\s*[-–]\s*III\s*[:\-]\s*FORMAL`),
			regexp.MustCompile(`(?i)PART\s*[-–]\s*III`),
			regexp.MustCompile(`(?i)FORMAL\s+REQUIREMENTS`),
		},
		formalCut: regexp.MustCompile(`(?i)PART\s*[-–]\s*III|FORMAL\s+REQUIREMENTS`),
		strict: regexp.MustCompile(`(?im)^\s*(?:\(?\d{1,2}\)?\.?)?\s*/?\s*(?P<head>` +
			objectionHeadingAlternates + `)\s*[:\-]?\s*$`),
		lenient:          regexp.MustCompile(`(?i)(?P<head>` + objectionHeadingAlternates + `)\s*:`),
		scope:            regexp.MustCompile(`^SCOPE(?:\s+OF(?:\s+THE)?\s+CLAIMS?)?$`),
		nonPatentability: regexp.MustCompile(`^NON[\s\-]*PATENTABILITY`),
		others:           regexp.MustCompile(`^OTHERS?\s+REQUIREMENT`),
		subsection:       regexp.MustCompile(`(?i)\b(\d+\(\d+\)\([a-z]\)|\d+\([a-z]\)|\d+\(\d+\))`),
		rule:             regexp.MustCompile(`(?i)\bRule\s*\d+(?:\s*\(\d+\))?`),
		claimsParen:      regexp.MustCompile(`(?i)Claim\(s\)\s*\(([^)]+)\)`),
		claimsList:       regexp.MustCompile(`(?i)Claims?\s*[:\-]?\s*([0-9,\-\s]+)`),
		digit:            regexp.MustCompile(`\d`),
	}
}

// DetailedObservations returns the "Detailed observations on the
// requirements under the Act" block of a FER, ending before PART-III or the
// formal requirements. It returns "" when the block heading is absent.
func (e *Extractor) DetailedObservations(text string) string {
	op := e.p.objection
	t := e.Normalize(text)
	for _, start := range op.observationStarts {
		loc := start.FindStringIndex(t)
		if loc == nil {
			continue
		}
		tail := t[loc[0]:]
		return strings.TrimSpace(cutAtFirst(tail, op.observationEnds...))
	}
	return ""
}

// NormalizeHeading maps a heading variant to its canonical form.
func (e *Extractor) NormalizeHeading(raw string) string {
	op := e.p.objection
	h := strings.Trim(e.collapseSpaces(strings.ToUpper(raw)), " :-")
	switch {
	case op.nonPatentability.MatchString(h):
		return HeadingNonPatentability
	case op.scope.MatchString(h):
		return HeadingScope
	case op.others.MatchString(h):
		return HeadingOthersRequirements
	}
	return h
}

// SplitObjections segments text into objections at the known headings.
// Headings standing alone on a line are preferred; only when none exist is
// an inline "HEADING:" form accepted. Objections are numbered in the order
// they appear, and text from PART-III onward is ignored.
func (e *Extractor) SplitObjections(text string) []Objection {
	return e.splitObjections(text, []PriorArtReference{})
}

func (e *Extractor) splitObjections(text string, arts []PriorArtReference) []Objection {
	op := e.p.objection
	t := e.Normalize(text)
	if t == "" {
		return []Objection{}
	}
	if loc := op.formalCut.FindStringIndex(t); loc != nil {
		t = t[:loc[0]]
	}

	re := op.strict
	matches := re.FindAllStringSubmatchIndex(t, -1)
	if len(matches) == 0 {
		e.log.Debug().Msg("no standalone objection headings, trying inline form")
		re = op.lenient
		matches = re.FindAllStringSubmatchIndex(t, -1)
	}
	head := re.SubexpIndex("head")

	objections := []Objection{}
	for i, m := range matches {
		end := len(t)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(e.dropPageFurniture(t[m[1]:end]))
		if body == "" {
			continue
		}
		objections = append(objections, Objection{
			Number:    len(objections) + 1,
			Heading:   e.NormalizeHeading(t[m[2*head]:m[2*head+1]]),
			Body:      body,
			Sections:  e.SectionsFromText(body),
			Claims:    e.objectionClaims(body),
			PriorArts: arts,
		})
	}
	return objections
}

// SectionsFromText collects statute subsections such as 2(1)(j) or 3(d) and
// rule references such as Rule 13(7), sorted and de-duplicated.
func (e *Extractor) SectionsFromText(body string) []string {
	op := e.p.objection
	set := map[string]bool{}
	for _, m := range op.subsection.FindAllStringSubmatch(body, -1) {
		set[m[1]] = true
	}
	for _, m := range op.rule.FindAllString(body, -1) {
		set[e.collapseSpaces(m)] = true
	}
	sections := make([]string, 0, len(set))
	for s := range set {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	return sections
}

// objectionClaims returns the claim range an objection refers to, e.g. "1-5".
func (e *Extractor) objectionClaims(body string) string {
	op := e.p.objection
	if v := firstSubmatch(op.claimsParen, body); v != "" {
		return e.collapseSpaces(v)
	}
	for _, m := range op.claimsList.FindAllStringSubmatch(body, -1) {
		if !op.digit.MatchString(m[1]) {
			continue
		}
		return strings.Trim(e.collapseSpaces(m[1]), " ,-")
	}
	return ""
}
