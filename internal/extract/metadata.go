package extract

import (
	"regexp"
	"strings"
)

type metaPatterns struct {
	appLabels       []*regexp.Regexp
	appLineLabel    *regexp.Regexp
	appSnippets     []*regexp.Regexp
	twelveDigits    *regexp.Regexp
	digitRun        *regexp.Regexp
	nonDigit        *regexp.Regexp
	filingLabels    []*regexp.Regexp
	filingGlobal    *regexp.Regexp
	dispatch        *regexp.Regexp
	controllerLine  *regexp.Regexp
	controllerName  *regexp.Regexp
	controllerLabel *regexp.Regexp
	examiner        *regexp.Regexp
	deadline        *regexp.Regexp
}

func newMetaPatterns() metaPatterns {
	return metaPatterns{
		appLabels: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Application\s*No[/.]?\s*[:\-]?\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Application\s*Number\s*[:\-]?\s*([^\n]+)`),
			regexp.MustCompile(`(?i)Ref\.?\s*No[^\n]*?Application\s*No[/.]?\s*/?\s*([^\n]+)`),
			regexp.MustCompile(`(?i)[\x{0900}-\x{097F}]+[^\n]*?Application\s*No[/.]?\s*/?\s*([^\n]+)`),
		},
		appLineLabel: regexp.MustCompile(`(?i)Application\s*(?:No|Number)|Ref\.?\s*No`),
		appSnippets: []*regexp.Regexp{
			regexp.MustCompile(`\b(\d{10,18})\b`),
			regexp.MustCompile(`\b((?:\d[\s-]){10,30}\d)\b`),
			regexp.MustCompile(`(?i)\b(\d{1,6}(?:\s*/\s*[A-Za-z0-9]{1,20}){2,3})\b`),
			regexp.MustCompile(`(?i)\b(\d{1,6}\s*/\s*[A-Za-z]{2,10}\s*/\s*\d{2,4})\b`),
			regexp.MustCompile(`(?i)\b([A-Za-z]{2,10}\s*/\s*[A-Za-z0-9]{3,20}\s*/\s*\d{2,4})\b`),
		},
		twelveDigits: regexp.MustCompile(`\b(\d{12})\b`),
		digitRun:     regexp.MustCompile(`\b(\d{10,18})\b`),
		nonDigit:     regexp.MustCompile(`\D`),
		filingLabels: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bDate\s*of\s*Filing\b`),
			regexp.MustCompile(`(?i)\bFiling\s*Date\b`),
		},
		filingGlobal: regexp.MustCompile(
			`(?i)(?:Date\s*of\s*Filing|Filing\s*Date)\s*[:\-]?\s*([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`),
		dispatch: regexp.MustCompile(
			`(?i)Date\s*of\s*Dispatch(?:/Email)?\s*[:\-]?\s*([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`),
		controllerLine: regexp.MustCompile(`(?i)^\s*Controller\s+of\s+Patents\b`),
		controllerName: regexp.MustCompile(`^[A-Za-z][A-Za-z .]+$`),
		controllerLabel: regexp.MustCompile(
			`(?i)(?:Name\s*of\s*the\s*Controller|Controller.*?Name)\s*[:\-]?\s*([A-Z][A-Za-z .]+)`),
		examiner: regexp.MustCompile(`(?i)Name\s*of\s*the\s*Examiner\s*[:\-]?\s*([A-Z][A-Za-z .]+)`),
		deadline: regexp.MustCompile(`(?i)Last\s*date\s*for\s*filing\s*response` +
			`(?:\s*to\s*the\s*Examination\s*Report)?\s*[:\-]?\s*([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`),
	}
}

// ExtractMetadata resolves the FER header fields from normalized text. Each
// field is resolved independently; a miss leaves that field empty.
func (e *Extractor) ExtractMetadata(text string) Metadata {
	return Metadata{
		ApplicationNo:   e.applicationNumber(text),
		FilingDate:      e.filingDate(text),
		FerDispatchDate: firstSubmatch(e.p.meta.dispatch, text),
		Applicant:       e.ferApplicant(text),
		Title:           e.ferTitle(text),
		ControllerName:  e.controllerName(text),
		ExaminerName:    firstSubmatch(e.p.meta.examiner, text),
		ReplyDeadline:   firstSubmatch(e.p.meta.deadline, text),
	}
}

// ferApplicant resolves the applicant of a FER from its free text.
func (e *Extractor) ferApplicant(text string) string {
	return e.firstOf("applicant", []strategy{
		{"free-text", func() (string, bool) { return found(e.applicantFromText(text)) }},
	})
}

// applicationNumber runs the application-number cascade: labeled capture,
// labeled line scan of the header, a bare 12-digit number near the top, and
// finally any 10-18 digit run.
func (e *Extractor) applicationNumber(text string) string {
	mp := e.p.meta
	lines := splitLines(text)
	raw := e.firstOf("application_no", []strategy{
		{"labeled", func() (string, bool) {
			for _, re := range mp.appLabels {
				if m := re.FindStringSubmatch(text); m != nil {
					if v := e.applicationNoFromSnippet(m[1]); v != "" {
						return v, true
					}
				}
			}
			return "", false
		}},
		{"labeled-line-scan", func() (string, bool) {
			for _, ln := range headLines(lines, 40) {
				if !mp.appLineLabel.MatchString(ln) {
					continue
				}
				if v := e.applicationNoFromSnippet(ln); v != "" {
					return v, true
				}
			}
			return "", false
		}},
		{"twelve-digit-head", func() (string, bool) {
			return found(firstSubmatch(mp.twelveDigits, strings.Join(headLines(lines, 30), "\n")))
		}},
		{"digit-run", func() (string, bool) {
			return found(firstSubmatch(mp.digitRun, text))
		}},
	})
	return e.normalizeApplicationNo(raw)
}

func (e *Extractor) applicationNoFromSnippet(snippet string) string {
	s := strings.ReplaceAll(snippet, "|", " ")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	for _, re := range e.p.meta.appSnippets {
		if m := re.FindStringSubmatch(s); m != nil {
			if v := e.normalizeApplicationNo(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// normalizeApplicationNo keeps digits only when the value carries at least
// ten of them; shorter office-reference forms are uppercased with whitespace
// and surrounding separators removed.
func (e *Extractor) normalizeApplicationNo(raw string) string {
	value := strings.Trim(strings.TrimSpace(raw), "/:-|")
	if value == "" {
		return ""
	}
	digits := e.p.meta.nonDigit.ReplaceAllString(value, "")
	if len(digits) >= 10 {
		return digits
	}
	value = e.p.text.anySpace.ReplaceAllString(value, "")
	return strings.Trim(strings.ToUpper(value), "/:-|")
}

// filingDate prefers a "Date of Filing" line within the header region,
// looking up to two lines further when the date wraps.
func (e *Extractor) filingDate(text string) string {
	lines := splitLines(text)
	return e.firstOf("filing_date", []strategy{
		{"header-line", func() (string, bool) {
			head := headLines(lines, 120)
			for i, ln := range head {
				if !matchesAny(e.p.meta.filingLabels, ln) {
					continue
				}
				if d := e.firstDate(ln); d != "" {
					return d, true
				}
				end := min(i+3, len(lines))
				if d := e.firstDate(strings.Join(lines[i:end], " ")); d != "" {
					return d, true
				}
			}
			return "", false
		}},
		{"global-label", func() (string, bool) {
			return found(firstSubmatch(e.p.meta.filingGlobal, text))
		}},
	})
}

// controllerName takes the name printed on the line above the
// "Controller of Patents" signature, falling back to a labeled capture.
func (e *Extractor) controllerName(text string) string {
	mp := e.p.meta
	lines := splitLines(text)
	return e.firstOf("controller_name", []strategy{
		{"signature-block", func() (string, bool) {
			for i, ln := range lines {
				if !mp.controllerLine.MatchString(ln) {
					continue
				}
				for j := i - 1; j >= 0; j-- {
					prev := strings.TrimSpace(lines[j])
					if prev == "" {
						continue
					}
					if mp.controllerName.MatchString(prev) {
						return prev, true
					}
					break
				}
			}
			return "", false
		}},
		{"labeled", func() (string, bool) {
			return found(firstSubmatch(mp.controllerLabel, text))
		}},
	})
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
