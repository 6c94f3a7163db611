package extract

import (
	"regexp"
	"sort"
	"strings"
)

const (
	maxApplicantWords  = 14
	maxSuffixWalkBack  = 10
	freeTextFollowUp   = 5
	nameAddressLookout = 20

	brandReattachWindow = 3
)

var companyStopWords = toSet(
	"unit", "floor", "sector", "road", "street", "lane", "nagar", "building",
	"tower", "towers", "pin", "postcode", "state", "district", "city",
	"village", "plot", "door", "flat", "apartment", "block", "phase",
	"extension", "enclave", "no", "number",
)

var institutionStopWords = toSet(
	"name", "nationality", "address", "indian",
	"unit", "floor", "sector", "road", "street", "lane", "nagar", "building",
	"tower", "towers", "pin", "postcode", "state", "district", "city",
	"village", "plot", "door", "flat", "apartment", "block", "phase",
	"extension", "enclave", "no", "number", "post", "mile",
	"bengaluru", "bangalore", "hyderabad", "chennai", "karnataka", "telangana", "india",
)

type applicantPatterns struct {
	companySuffix     *regexp.Regexp
	institutionSuffix *regexp.Regexp

	labelPrefix    *regexp.Regexp
	pluralPrefix   *regexp.Regexp
	columnsPrefix  *regexp.Regexp
	trailingMeta   *regexp.Regexp
	trailingLabel  *regexp.Regexp
	trailingSpec   *regexp.Regexp
	addressLabel   *regexp.Regexp
	addressWords   *regexp.Regexp
	digitRun       *regexp.Regexp
	word           *regexp.Regexp
	token          *regexp.Regexp
	nonAlpha       *regexp.Regexp
	digit          *regexp.Regexp
	leadInitials   *regexp.Regexp
	brandToken     *regexp.Regexp
	brandInitial   *regexp.Regexp
	metaBoundary   *regexp.Regexp
	applicantWord  *regexp.Regexp
	applicantLine  *regexp.Regexp
	applicantColon *regexp.Regexp
	applicantHindi *regexp.Regexp

	blockStart    *regexp.Regexp
	blockStops    *regexp.Regexp
	nameLabel     *regexp.Regexp
	nameEnd       *regexp.Regexp
	applicantEnd  *regexp.Regexp
	nameAddress   *regexp.Regexp
	columnsHeader *regexp.Regexp
	followingSpec *regexp.Regexp
	nameAddrStop  *regexp.Regexp
	pageOfM       *regexp.Regexp
	cellApplicant *regexp.Regexp
	cellName      *regexp.Regexp
	keyApplicant  *regexp.Regexp
	keyName       *regexp.Regexp
	junkValue     *regexp.Regexp
	junkNameValue *regexp.Regexp
}

func newApplicantPatterns() applicantPatterns {
	const company = `(?:Private\s+Limited|Public\s+Limited|Pvt\.?\s*Ltd\.?|Limited|Ltd\.?|LLP|Inc\.?|Corporation|Corp\.?|Company)`
	const stops = `\n\s*(?:The\s+following\s+specification|FIELD\s+OF\s+INVENTION\b|TECHNICAL\s+FIELD\b|` +
		`BACKGROUND\b|OBJECT(?:S|IVE)?\s+OF\s+THE\s+INVENTION\b)`
	return applicantPatterns{
		companySuffix: regexp.MustCompile(`(?i)\b` + company + `\b`),
		institutionSuffix: regexp.MustCompile(`(?i)\b(?:University|Institute|College|Academy|School|` +
			`Laborator(?:y|ies)|Centre|Center|Foundation|Trust|Society|Hospital)\b`),

		labelPrefix: regexp.MustCompile(
			`(?i)^(?:Name\s+and\s+Address\s+of\s+the\s+Applicant|Applicants?\s*(?:\(\s*s\s*\))?)\s*[:\-]?\s*`),
		pluralPrefix:  regexp.MustCompile(`(?i)^\(\s*s\s*\)\s*[:\-]?\s*`),
		columnsPrefix: regexp.MustCompile(`(?i)^Name\s+Nationality\s+Address\s*`),
		trailingMeta: regexp.MustCompile(
			`(?i)\s*\b(?:Request|Exam(?:ination)?|PCT|Date|Filing|Priority|Controller|Examiner)\b.*$`),
		trailingLabel: regexp.MustCompile(`(?i)\s*\b(?:Nationality|Address)\s*[:\-].*$`),
		trailingSpec:  regexp.MustCompile(`(?i)\s*The\s+following\s+specification\b.*$`),
		addressLabel:  regexp.MustCompile(`(?i)\b(?:Nationality|Address|Name)\b`),
		addressWords: regexp.MustCompile(`(?i)\b(?:road|street|lane|nagar|city|state|district|post|pin|postcode|` +
			`building|floor|sector|circle|park|block|phase|enclave|miles?|karnataka|telangana|india)\b`),
		digitRun:     regexp.MustCompile(`\d{3,}`),
		word:         regexp.MustCompile(`[A-Za-z]+`),
		token:        regexp.MustCompile(`[A-Za-z0-9&().'/+-]+`),
		nonAlpha:     regexp.MustCompile(`[^a-z]`),
		digit:        regexp.MustCompile(`\d`),
		leadInitials: regexp.MustCompile(`^(?:[A-Z]{1,2}\s+){1,2}`),
		brandToken:   regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9&'-]+)`),
		brandInitial: regexp.MustCompile(`^(\S+)\s+[A-Z]{1,2}\s+`),
		metaBoundary: regexp.MustCompile(`(?i)\b(?:Application|Date|Dispatch|Filing|Priority|Controller|Examiner|` +
			`Title|Ref\.?\s*No|Letter\s*No|PCT|Patent\s+Office|Report|FER|Claim)\b`),
		applicantWord:  regexp.MustCompile(`(?i)\bApplicant\b`),
		applicantLine:  regexp.MustCompile(`(?i)\bApplicant\b(?:\s*/\s*[\x{0900}-\x{097F}]+)?\s*[:\-]?\s*(.*)$`),
		applicantColon: regexp.MustCompile(`(?im)^\s*Applicant\s*[:\-]\s*(.+?)$`),
		applicantHindi: regexp.MustCompile(`(?im)Applicant\s*/\s*[\x{0900}-\x{097F}]+\s*[:\-]?\s*(.+?)$`),

		blockStart:    regexp.MustCompile(`(?i)\bAPPLICANTS?\s*(?:\(\s*s\s*\))?\s*[:\-]?\s*`),
		blockStops:    regexp.MustCompile(`(?i)` + stops),
		nameLabel:     regexp.MustCompile(`(?i)\bName\s*[:\-]\s*`),
		nameEnd:       regexp.MustCompile(`(?i)\n\s*(?:Nationality|Address)\s*[:\-]`),
		applicantEnd:  regexp.MustCompile(`(?i)\n\s*(?:Nationality|Address)\b`),
		nameAddress:   regexp.MustCompile(`(?i)NAME\s+AND\s+ADDRESS\s+OF\s+THE\s+APPLICANT`),
		columnsHeader: regexp.MustCompile(`(?i)\bName\s+Nationality\s+Address\b`),
		followingSpec: regexp.MustCompile(`(?i)\bThe\s+following\s+specification\b`),
		nameAddrStop: regexp.MustCompile(`(?i)\b(?:NAME\s+AND\s+ADDRESS|NATIONALITY|TITLE\s+OF\s+THE\s+INVENTION|` +
			`FIELD\s+OF\s+INVENTION|BACKGROUND)\b`),
		pageOfM:       regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+$`),
		cellApplicant: regexp.MustCompile(`(?is)\bApplicant(?:s|\(\s*s\s*\))?\s*[:\-]?\s*(.+?)(?:\bNationality\b|\bAddress\b|$)`),
		cellName:      regexp.MustCompile(`(?is)\bName\s*[:\-]?\s*(.+?)(?:\bNationality\b|$)`),
		keyApplicant:  regexp.MustCompile(`(?i)^applicant(?:s|\(\s*s\s*\))?\s*:?$`),
		keyName:       regexp.MustCompile(`(?i)^name\s*:?$`),
		junkValue:     regexp.MustCompile(`(?i)^(?:name|nationality|address|indian|applicant(?:s|\(\s*s\s*\))?)$`),
		junkNameValue: regexp.MustCompile(`(?i)^(?:name|nationality|address|indian)$`),
	}
}

// ResolveApplicant resolves the applicant of a Complete Specification from
// its text: a labeled APPLICANT block, then a NAME AND ADDRESS block, then a
// free-text scan.
func (e *Extractor) ResolveApplicant(text string) string {
	return e.resolveApplicant(text, nil)
}

func (e *Extractor) resolveApplicant(text string, tables [][]Table) string {
	return e.firstOf("applicant", []strategy{
		{"labeled-block", func() (string, bool) { return found(e.applicantFromLabeledBlock(text)) }},
		{"name-and-address", func() (string, bool) { return found(e.applicantFromNameAddress(text)) }},
		{"tables", func() (string, bool) { return found(e.ApplicantFromTables(tables)) }},
		{"free-text", func() (string, bool) { return found(e.CleanApplicantName(e.applicantFromText(text))) }},
	})
}

// CleanApplicantName reduces a raw capture to an organization or person
// name. Compact captures are kept as they are; long or address-like ones are
// cut down around a company or institution suffix. When nothing better is
// available the normalized capture is returned.
func (e *Extractor) CleanApplicantName(raw string) string {
	normalized := e.normalizeApplicantName(raw)
	if normalized != "" {
		words := e.p.applicant.word.FindAllString(normalized, -1)
		if len(words) > 0 && len(words) <= maxApplicantWords && !e.looksLikeAddress(normalized) {
			return normalized
		}
	}
	if v := e.companyFromBlock(raw); v != "" {
		return v
	}
	if v := e.institutionFromBlock(raw); v != "" {
		return v
	}
	return normalized
}

func (e *Extractor) normalizeApplicantName(text string) string {
	ap := e.p.applicant
	s := strings.Trim(strings.ReplaceAll(text, "|", " "), " /:;,.-|")
	if s == "" {
		return ""
	}
	s = e.stripArtifacts(e.collapseSpaces(s))
	s = ap.labelPrefix.ReplaceAllString(s, "")
	s = ap.pluralPrefix.ReplaceAllString(s, "")
	s = ap.columnsPrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(ap.trailingMeta.ReplaceAllString(s, ""))
	s = strings.TrimSpace(ap.trailingLabel.ReplaceAllString(s, ""))
	s = strings.TrimSpace(ap.trailingSpec.ReplaceAllString(s, ""))

	if loc := ap.companySuffix.FindStringIndex(s); loc != nil {
		s = strings.Trim(s[:loc[1]], " ,;.")
	}
	s = strings.Trim(s, " /:;,.-|")
	if !e.hasLetter(s) {
		return ""
	}
	return s
}

func (e *Extractor) looksLikeAddress(s string) bool {
	ap := e.p.applicant
	return ap.addressLabel.MatchString(s) || ap.addressWords.MatchString(s) || ap.digitRun.MatchString(s)
}

type suffixCandidate struct {
	name    string
	penalty int
	words   int
	first   int
}

// walkBack collects up to maxSuffixWalkBack tokens preceding a suffix match,
// skipping stopwords and digit tokens until the first kept token and stopping
// at the next one after that. first is the index of the earliest kept token
// among the tokens of prefix.
func (e *Extractor) walkBack(prefix string, stop map[string]bool) (base string, first int) {
	ap := e.p.applicant
	tokens := ap.token.FindAllString(prefix, -1)
	var kept []string
	first = len(tokens)
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		low := strings.Trim(strings.ToLower(tok), ".,")
		alpha := ap.nonAlpha.ReplaceAllString(low, "")
		if ap.digit.MatchString(tok) || stop[low] || stop[alpha] {
			if len(kept) > 0 {
				break
			}
			continue
		}
		kept = append(kept, strings.Trim(tok, ".,"))
		first = i
		if len(kept) >= maxSuffixWalkBack {
			break
		}
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return strings.TrimSpace(strings.Join(kept, " ")), first
}

// bestSuffixCandidate prefers the candidate with the fewest stray address
// tokens, then the fewest words, then the shortest text.
func bestSuffixCandidate(cands []suffixCandidate) (suffixCandidate, bool) {
	if len(cands) == 0 {
		return suffixCandidate{}, false
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.penalty != b.penalty {
			return a.penalty < b.penalty
		}
		if a.words != b.words {
			return a.words < b.words
		}
		return len(a.name) < len(b.name)
	})
	return cands[0], true
}

func (e *Extractor) companyFromBlock(block string) string {
	ap := e.p.applicant
	s := e.collapseSpaces(block)
	if s == "" {
		return ""
	}
	brand := firstSubmatch(ap.brandToken, s)

	var cands []suffixCandidate
	for _, loc := range ap.companySuffix.FindAllStringIndex(s, -1) {
		base, first := e.walkBack(s[:loc[0]], companyStopWords)
		if base == "" {
			continue
		}
		cand := strings.Trim(e.collapseSpaces(base+" "+s[loc[0]:loc[1]]), " ,;.")
		cand = strings.TrimSpace(ap.leadInitials.ReplaceAllString(cand, ""))
		words := ap.word.FindAllString(cand, -1)
		if len(words) < 2 {
			continue
		}
		penalty := 0
		for _, w := range words {
			if companyStopWords[strings.ToLower(w)] {
				penalty++
			}
		}
		if ap.digit.MatchString(cand) {
			penalty += 2
		}
		cands = append(cands, suffixCandidate{name: cand, penalty: penalty, words: len(words), first: first})
	}
	top, ok := bestSuffixCandidate(cands)
	if !ok {
		return ""
	}
	best := top.name

	// OCR sometimes separates the brand token from the rest of the name.
	if brand != "" && top.first > 0 && top.first <= brandReattachWindow &&
		!strings.Contains(strings.ToLower(best), strings.ToLower(brand)) && wordCount(best) <= 6 {
		best = brand + " " + best
		best = strings.TrimSpace(ap.brandInitial.ReplaceAllString(best, "$1 "))
	}
	return e.normalizeApplicantName(best)
}

func (e *Extractor) institutionFromBlock(block string) string {
	ap := e.p.applicant
	s := e.collapseSpaces(block)
	if s == "" {
		return ""
	}
	seen := map[string]bool{}
	var cands []suffixCandidate
	for _, loc := range ap.institutionSuffix.FindAllStringIndex(s, -1) {
		base, _ := e.walkBack(s[:loc[0]], institutionStopWords)
		if base == "" {
			continue
		}
		cand := e.normalizeApplicantName(base + " " + s[loc[0]:loc[1]])
		if cand == "" || seen[cand] {
			continue
		}
		seen[cand] = true
		cands = append(cands, suffixCandidate{name: cand, words: wordCount(cand)})
	}
	top, _ := bestSuffixCandidate(cands)
	return top.name
}

// cutAtFirst truncates s at the earliest match of any pattern.
func cutAtFirst(s string, res ...*regexp.Regexp) string {
	end := len(s)
	for _, re := range res {
		if loc := re.FindStringIndex(s); loc != nil && loc[0] < end {
			end = loc[0]
		}
	}
	return s[:end]
}

// applicantFromLabeledBlock reads the block after an APPLICANT(S) label up to
// the next specification heading, preferring a "Name:" sub-label.
func (e *Extractor) applicantFromLabeledBlock(text string) string {
	ap := e.p.applicant
	if strings.TrimSpace(text) == "" {
		return ""
	}
	loc := ap.blockStart.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	block := cutAtFirst(text[loc[1]:], ap.blockStops)

	var raw string
	if nl := ap.nameLabel.FindStringIndex(block); nl != nil {
		raw = cutAtFirst(block[nl[1]:], ap.nameEnd)
	} else {
		raw = cutAtFirst(block, ap.applicantEnd)
	}
	raw = strings.Trim(e.collapseSpaces(raw), " ,;:-")
	if raw == "" {
		return ""
	}
	candidate := e.CleanApplicantName(raw)
	if !e.hasLetter(candidate) {
		return ""
	}
	return candidate
}

// applicantFromNameAddress reads the lines below a "NAME AND ADDRESS OF THE
// APPLICANT" heading until a blank line, a section heading or a company
// suffix completes the name.
func (e *Extractor) applicantFromNameAddress(text string) string {
	ap := e.p.applicant
	lines := splitLines(text)
	start := -1
	for i, ln := range lines {
		if ap.nameAddress.MatchString(ln) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}
	var parts []string
	end := min(start+nameAddressLookout, len(lines))
	for _, ln := range lines[start+1 : end] {
		s := strings.Trim(e.stripArtifacts(ln), " /:;-\t")
		if s == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if ap.pageOfM.MatchString(s) || ap.columnsHeader.MatchString(s) {
			continue
		}
		if ap.followingSpec.MatchString(s) {
			break
		}
		if !e.hasLetter(s) {
			continue
		}
		if ap.nameAddrStop.MatchString(s) {
			break
		}
		parts = append(parts, s)
		if ap.companySuffix.MatchString(strings.Join(parts, " ")) {
			break
		}
	}
	return e.CleanApplicantName(strings.Join(parts, " "))
}

// ApplicantFromTables searches the tables of the leading pages for an
// applicant or name cell and returns the cleaned value next to it.
func (e *Extractor) ApplicantFromTables(tables [][]Table) string {
	ap := e.p.applicant
	pages := tables
	if len(pages) > e.opts.ApplicantTablePages {
		pages = pages[:e.opts.ApplicantTablePages]
	}
	accept := func(raw string) string {
		c := e.CleanApplicantName(raw)
		if e.hasLetter(c) {
			return c
		}
		return ""
	}
	for _, page := range pages {
		for _, table := range page {
			for _, row := range e.cleanTable(table) {
				var filled []string
				for _, c := range row {
					if c != "" {
						filled = append(filled, c)
					}
				}
				rowText := strings.Join(filled, " | ")

				if raw := e.tableValue(ap.cellApplicant, rowText); raw != "" && !ap.junkValue.MatchString(raw) {
					if c := accept(raw); c != "" {
						return c
					}
				}
				if raw := e.tableValue(ap.cellName, rowText); raw != "" && !ap.junkNameValue.MatchString(raw) {
					if c := accept(raw); c != "" {
						return c
					}
				}
				if c := e.applicantFromKeyCells(row, accept); c != "" {
					return c
				}
			}
		}
	}
	return ""
}

func (e *Extractor) tableValue(re *regexp.Regexp, rowText string) string {
	m := re.FindStringSubmatch(rowText)
	if m == nil {
		return ""
	}
	return strings.Trim(e.collapseSpaces(m[1]), " ,;:-|")
}

// applicantFromKeyCells handles key/value rows where the label sits alone in
// its cell and the value in the next one.
func (e *Extractor) applicantFromKeyCells(row []string, accept func(string) string) string {
	ap := e.p.applicant
	for i, cell := range row {
		key := strings.TrimSpace(cell)
		isApplicant := ap.keyApplicant.MatchString(key)
		if !isApplicant && !ap.keyName.MatchString(key) {
			continue
		}
		if i+1 >= len(row) {
			continue
		}
		raw := strings.Trim(e.collapseSpaces(row[i+1]), " ,;:-|")
		if raw == "" {
			continue
		}
		junk := ap.junkNameValue
		if isApplicant {
			junk = ap.junkValue
		}
		if junk.MatchString(raw) {
			continue
		}
		if c := accept(raw); c != "" {
			return c
		}
	}
	return ""
}

// applicantFromText scans lines mentioning "Applicant" and joins the
// same-line remainder with up to five following lines, stopping at the next
// metadata label.
func (e *Extractor) applicantFromText(text string) string {
	ap := e.p.applicant
	lines := splitLines(text)
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	for i, ln := range lines {
		if !ap.applicantWord.MatchString(ln) {
			continue
		}
		var parts []string
		if rest := firstSubmatch(ap.applicantLine, ln); rest != "" {
			parts = append(parts, rest)
		}
		end := min(i+1+freeTextFollowUp, len(lines))
		for _, next := range lines[i+1 : end] {
			s := strings.Trim(next, " /:;-")
			if s == "" {
				if len(parts) > 0 {
					break
				}
				continue
			}
			if !e.hasLetter(s) {
				continue
			}
			if ap.metaBoundary.MatchString(s) {
				break
			}
			parts = append(parts, s)
			if ap.companySuffix.MatchString(strings.Join(parts, " ")) {
				break
			}
		}
		if c := e.normalizeApplicantName(strings.Join(parts, " ")); len(c) > 3 {
			return c
		}
	}
	for _, re := range []*regexp.Regexp{ap.applicantColon, ap.applicantHindi} {
		if c := e.normalizeApplicantName(firstSubmatch(re, text)); len(c) > 3 {
			return c
		}
	}
	return ""
}

func toSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
