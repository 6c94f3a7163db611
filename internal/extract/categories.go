package extract

import "regexp"

// FallbackFormalCategory labels the single row emitted when the formal
// requirements section was found but no row could be reconstructed.
const FallbackFormalCategory = "Formal Requirements"

// categoryRule maps a formal-requirements line to a category. Rules with
// Anywhere set match inside the line (optionally gated by Cue); every rule
// also matches at the start of a line after an optional lead-in.
type categoryRule struct {
	Category string
	Pattern  string
	Cue      string
	Anywhere bool

	anywhere *regexp.Regexp
	cue      *regexp.Regexp
	leading  *regexp.Regexp
}

const categoryLeadIn = `^(?:In\s+the\s+)?(?:Whether\s+GPA,\s*SPA,)?\s*`

func defaultCategoryRules() []categoryRule {
	return []categoryRule{
		{Category: "Form 28", Pattern: `Form\s*28\b`, Anywhere: true},
		{Category: "Form 18", Pattern: `Form\s*18\b`, Anywhere: true},
		{Category: "Form 13", Pattern: `Form\s*13\b`, Anywhere: true},
		{Category: "Form 9", Pattern: `Form\s*9\b`, Anywhere: true},
		{Category: "Form 8", Pattern: `Form\s*8\b`, Anywhere: true},
		{Category: "Form 5", Pattern: `Form\s*5\b`, Anywhere: true},
		{Category: "Form 3", Pattern: `Form\s*3\b`, Anywhere: true},
		{Category: "Form 2", Pattern: `Form\s*2\b`, Anywhere: true, Cue: `specification|format|provisional|complete`},
		{Category: "Form 1", Pattern: `Form\s*1\b`, Anywhere: true, Cue: `category|serial\s+number|applicant`},
		{Category: "Stamp Duty", Pattern: `Stamp\s+duty`},
		{Category: "Power of Attorney", Pattern: `Power\s+of\s+Attorney`},
		{Category: "Format of Specification", Pattern: `(?:Format\s+of\s+Specification|\(rule\s*13\))`},
		{Category: "Format of Drawings", Pattern: `(?:Format\s+of\s+Drawings|In\s+drawings|drawings\s+sheet|section\s*78\(2\))`},
		{Category: "Other Deficiencies", Pattern: `(?:Other\s+Deficiencies|fails\s+to\s+comply)`},
	}
}

func newCategoryRules() []categoryRule {
	rules := defaultCategoryRules()
	for i := range rules {
		r := &rules[i]
		if r.Anywhere {
			r.anywhere = regexp.MustCompile(`(?i)\b` + r.Pattern)
		}
		if r.Cue != "" {
			r.cue = regexp.MustCompile(`(?i)` + r.Cue)
		}
		r.leading = regexp.MustCompile(`(?i)` + categoryLeadIn + r.Pattern + `\s*`)
	}
	return rules
}

// FormalCategories lists the category vocabulary in match priority order.
func FormalCategories() []string {
	rules := defaultCategoryRules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Category
	}
	return names
}

// categoryFromLine classifies a line of the formal-requirements section.
// It returns the matching rule, or nil when the line names no category.
func (e *Extractor) categoryFromLine(line string) *categoryRule {
	rules := e.p.category
	for i := range rules {
		r := &rules[i]
		if r.anywhere == nil || !r.anywhere.MatchString(line) {
			continue
		}
		if r.cue != nil && !r.cue.MatchString(line) {
			continue
		}
		return r
	}
	for i := range rules {
		if rules[i].leading.MatchString(line) {
			return &rules[i]
		}
	}
	return nil
}

// canonicalCategory maps an objection cell to the category vocabulary,
// keeping the cell text when it names no known category.
func (e *Extractor) canonicalCategory(cell string) string {
	if r := e.categoryFromLine(cell); r != nil {
		return r.Category
	}
	return cell
}
