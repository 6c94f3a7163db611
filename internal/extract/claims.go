package extract

import (
	"regexp"
	"strconv"
	"strings"
)

type claimPatterns struct {
	numbered    *regexp.Regexp
	starts      []*regexp.Regexp
	ends        []*regexp.Regexp
	firstClaim  *regexp.Regexp
	leadNumeral *regexp.Regexp
	spaceBefore *regexp.Regexp
	openParen   *regexp.Regexp
	closeParen  *regexp.Regexp
	openSquare  *regexp.Regexp
	closeSquare *regexp.Regexp
	quoteSpace  *regexp.Regexp
}

func newClaimPatterns() claimPatterns {
	return claimPatterns{
		numbered: regexp.MustCompile(`(?m)^[ \t]*(\d{1,3})[.):](?:[ \t]+|[^\d\s]|$)`),
		starts: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*WE\s+CLAIM[ \t]*:?[ \t]*$`),
			regexp.MustCompile(`(?im)^[ \t]*WE\s+CLAIM[ \t]*:?[ \t]*`),
			regexp.MustCompile(`(?im)^[ \t]*CLAIMS?[ \t]*:?[ \t]*$`),
			regexp.MustCompile(`(?im)^[ \t]*REGARDING\s+CLAIMS[ \t]*:?[ \t]*$`),
			regexp.MustCompile(`(?i)\bWe\s+Claim\b\s*:?`),
		},
		ends: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bSUBMISSION\s+TO\s+OBJECTION\b`),
			regexp.MustCompile(`(?i)\bFORMAL\s+REQUIREMENTS\b`),
			regexp.MustCompile(`(?i)\bYOURS\s+FAITHFULLY\b`),
			regexp.MustCompile(`(?i)\bENCLOSURE\b`),
		},
		firstClaim:  regexp.MustCompile(`(?im)^[ \t]*(?:1[.):]\s+|Claim\s*1\b)`),
		leadNumeral: regexp.MustCompile(`^\s*\d+[.):]\s*`),
		spaceBefore: regexp.MustCompile(`\s+([,.;:!?])`),
		openParen:   regexp.MustCompile(`\(\s+`),
		closeParen:  regexp.MustCompile(`\s+\)`),
		openSquare:  regexp.MustCompile(`\[\s+`),
		closeSquare: regexp.MustCompile(`\s+\]`),
		quoteSpace:  regexp.MustCompile(`\s*"\s*`),
	}
}

// ExtractClaims splits a claims blob at lines that open with a numeral
// ("1.", "2)", "3:"). Numbers are kept as written, so gaps left by cancelled
// claims survive. A numeral not greater than the previous claim's starts a
// continuation line of that claim rather than a new one.
func (e *Extractor) ExtractClaims(text string) []ClaimBlock {
	claims := []ClaimBlock{}
	if strings.TrimSpace(text) == "" {
		return claims
	}

	type anchor struct{ start, number int }
	var anchors []anchor
	last := 0
	for _, m := range e.p.claims.numbered.FindAllStringSubmatchIndex(text, -1) {
		n, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		if n <= last {
			e.log.Debug().Int("number", n).Int("previous", last).Msg("claim numeral out of order, treated as continuation")
			continue
		}
		anchors = append(anchors, anchor{start: m[0], number: n})
		last = n
	}

	for i, a := range anchors {
		end := len(text)
		if i+1 < len(anchors) {
			end = anchors[i+1].start
		}
		if block := strings.TrimSpace(text[a.start:end]); block != "" {
			claims = append(claims, ClaimBlock{Number: a.number, Text: block})
		}
	}
	return claims
}

// ClaimsBlock locates the claim set inside an amended-claims document: after
// a "WE CLAIM" or "CLAIMS" heading, up to the reply sections that follow it,
// starting at claim 1.
func (e *Extractor) ClaimsBlock(text string) string {
	cp := e.p.claims
	t := e.Normalize(text)
	if t == "" {
		return ""
	}

	start := 0
	for _, re := range cp.starts {
		if loc := re.FindStringIndex(t); loc != nil {
			start = loc[1]
			break
		}
	}
	block := strings.TrimSpace(cutAtFirst(t[start:], cp.ends...))

	if loc := cp.firstClaim.FindStringIndex(block); loc != nil {
		return strings.TrimSpace(block[loc[0]:])
	}
	if loc := cp.firstClaim.FindStringIndex(t); loc != nil {
		e.log.Debug().Msg("claim 1 not found after heading, anchoring on first claim in document")
		return strings.TrimSpace(cutAtFirst(t[loc[0]:], cp.ends...))
	}
	return block
}

// ParseClaims normalizes an amended-claims document and splits its claim
// set into numbered blocks.
func (e *Extractor) ParseClaims(text string) []ClaimBlock {
	return e.ExtractClaims(e.ClaimsBlock(text))
}

// ClaimScopeLabel renders the claim numbers present as "N" or "first-last".
func ClaimScopeLabel(claims []ClaimBlock) string {
	lo, hi := 0, 0
	for _, c := range claims {
		if c.Number < 1 {
			continue
		}
		if lo == 0 || c.Number < lo {
			lo = c.Number
		}
		if c.Number > hi {
			hi = c.Number
		}
	}
	switch {
	case lo == 0:
		return ""
	case lo == hi:
		return strconv.Itoa(lo)
	default:
		return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
	}
}

// ClaimBody returns a claim's text on one line without its leading numeral.
func (e *Extractor) ClaimBody(text string) string {
	cp := e.p.claims
	t := e.p.text.devanagari.ReplaceAllString(text, "")
	t = e.collapseSpaces(t)
	t = cp.spaceBefore.ReplaceAllString(t, "$1")
	t = cp.openParen.ReplaceAllString(t, "(")
	t = cp.closeParen.ReplaceAllString(t, ")")
	t = cp.openSquare.ReplaceAllString(t, "[")
	t = cp.closeSquare.ReplaceAllString(t, "]")
	t = cp.quoteSpace.ReplaceAllString(t, `"`)
	return strings.TrimSpace(cp.leadNumeral.ReplaceAllString(t, ""))
}
