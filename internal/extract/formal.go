package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const headerSearchRows = 8

type formalPatterns struct {
	blockStarts    []*regexp.Regexp
	blockEnds      []*regexp.Regexp
	sectionStart   *regexp.Regexp
	sectionEnd     *regexp.Regexp
	docketHint     *regexp.Regexp
	objectionWord  *regexp.Regexp
	remarkWord     *regexp.Regexp
	categoryHint   *regexp.Regexp
	pageToken      *regexp.Regexp
	patentOffice   *regexp.Regexp
	pageOfM        *regexp.Regexp
	pageOfMAny     *regexp.Regexp
	patentOfficeIn *regexp.Regexp
	headerEcho     *regexp.Regexp
	partFourLine   *regexp.Regexp
	partFourTail   *regexp.Regexp
	multiSpace     *regexp.Regexp

	fromText formalTextPatterns
}

func newFormalPatterns() formalPatterns {
	return formalPatterns{
		blockStarts: []*regexp.Regexp{
			regexp.MustCompile(`(?i)PART\s*[-–]\s*III\s*[:\-]\s*FORMAL\s+REQUIREMENTS`),
			regexp.MustCompile(`(?i)PART\s*[-–]\s*III[^\n]{0,100}FORMAL\s+REQUIREMENTS`),
			regexp.MustCompile(`(?im)^[ \t]*FORMAL\s+REQUIREMENTS[ \t]*$`),
		},
		blockEnds: []*regexp.Regexp{
			regexp.MustCompile(`(?i)PART\s*[-–]\s*IV`),
			regexp.MustCompile(`(?i)DOCUMENTS\s+ON\s+RECORD`),
		},
		sectionStart: regexp.MustCompile(`(?i)PART\s*[-–]?\s*III[^\n]{0,100}FORMAL\s+REQUIREMENTS`),
		sectionEnd:   regexp.MustCompile(`(?i)PART\s*[-–]?\s*IV|DOCUMENTS\s+ON\s+RECORD`),
		docketHint:   regexp.MustCompile(`(?i)docket|entry number|publication date|sl\.?no`),
		objectionWord: regexp.MustCompile(`(?i)\bobjections?\b`),
		remarkWord:    regexp.MustCompile(`(?i)\bremarks?\b`),
		categoryHint: regexp.MustCompile(`(?i)\b(?:Form\s*\d+|Power\s+of\s+Attorney|Format\s+of|Other\s+Deficiencies|` +
			`Applicable\s+fee|Endorsement|Date\s+and\s+Signature|Statement\s*&\s*Under\s*Taking)\b`),
		pageToken:      regexp.MustCompile(`(?i)^Page$`),
		patentOffice:   regexp.MustCompile(`(?i)^THE\s+PATENT\s+OFFICE$`),
		pageOfM:        regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+$`),
		pageOfMAny:     regexp.MustCompile(`(?i)\bPage\s+\d+\s+of\s+\d+\b`),
		patentOfficeIn: regexp.MustCompile(`(?i)\bTHE\s+PATENT\s+OFFICE\b`),
		headerEcho:     regexp.MustCompile(`(?i)^\s*/?\s*Objections?\s*/?\s*Remarks?\s*$`),
		partFourLine:   regexp.MustCompile(`(?im)^\s*[-/]*\s*(?:PART\s*[-–—]?\s*)?IV\s*:?\s*$`),
		partFourTail:   regexp.MustCompile(`(?i)\s*[-–—]\s*IV\s*:?\s*$`),
		multiSpace:     regexp.MustCompile(`[ \t]{2,}`),

		fromText: newFormalTextPatterns(),
	}
}

// FormalRequirementsBlock returns the raw PART-III formal requirements text
// with its line layout intact. It starts after the last section marker, since
// introductory text can mention "formal requirements" earlier, and ends at
// PART-IV or DOCUMENTS ON RECORD.
func (e *Extractor) FormalRequirementsBlock(text string) string {
	fp := e.p.formal
	t := e.stripArtifacts(text)
	var last []int
	for _, re := range fp.blockStarts {
		for _, loc := range re.FindAllStringIndex(t, -1) {
			if last == nil || loc[0] > last[0] {
				last = loc
			}
		}
	}
	if last == nil {
		return ""
	}
	return strings.TrimSpace(cutAtFirst(t[last[1]:], fp.blockEnds...))
}

// formalScan carries the state of one table pass over a document.
type formalScan struct {
	rows       []FormalRow
	seenHeader bool
	stopped    bool
}

func (s *formalScan) appendToLast(remark string) {
	if remark == "" || len(s.rows) == 0 {
		return
	}
	last := &s.rows[len(s.rows)-1]
	if last.Remark != "" {
		last.Remark += "\n"
	}
	last.Remark = strings.TrimSpace(last.Remark + remark)
}

// ReconstructFormalRows rebuilds the (category, remark) rows of the PART-III
// formal requirements from page tables. Scanning begins on the page carrying
// the PART-III marker and ends at PART-IV. When the tables yield nothing the
// rows are parsed from the section text instead, so a located section never
// produces an empty result.
func (e *Extractor) ReconstructFormalRows(pages []string, tables [][]Table) []FormalRow {
	rows := e.formalRowsFromTables(pages, tables)
	if len(rows) > 0 {
		return rows
	}
	e.log.Debug().Msg("no formal rows from tables, parsing section text")
	block := e.FormalRequirementsBlock(strings.Join(pages, "\n"))
	if block == "" {
		return []FormalRow{}
	}
	return e.FormalRowsFromText(block)
}

// formalRowsFromTables runs the table pass. A panic on a malformed table is
// logged and treated as no rows.
func (e *Extractor) formalRowsFromTables(pages []string, tables [][]Table) (rows []FormalRow) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Debug().Str("panic", fmt.Sprint(r)).Msg("formal table pass aborted")
			rows = nil
		}
	}()

	fp := e.p.formal
	scan := &formalScan{}
	inFormal := false
	for i, pageText := range pages {
		if scan.stopped {
			break
		}
		if !inFormal {
			if !fp.sectionStart.MatchString(pageText) {
				continue
			}
			inFormal = true
		}
		for _, table := range tablesAt(tables, i) {
			if scan.stopped {
				break
			}
			e.scanFormalTable(scan, e.cleanTable(table))
		}
		if fp.sectionEnd.MatchString(pageText) {
			break
		}
	}
	return e.cleanFormalRows(scan.rows)
}

func tablesAt(tables [][]Table, i int) []Table {
	if i < 0 || i >= len(tables) {
		return nil
	}
	return tables[i]
}

// findFormalHeader returns the objection and remark column of the first row
// within the leading rows that names both in different cells.
func (e *Extractor) findFormalHeader(rows [][]string) (ob, rem, next int, ok bool) {
	fp := e.p.formal
	for ri, row := range rows[:min(headerSearchRows, len(rows))] {
		var obCols, remCols []int
		for ci, cell := range row {
			if fp.objectionWord.MatchString(cell) {
				obCols = append(obCols, ci)
			}
			if fp.remarkWord.MatchString(cell) {
				remCols = append(remCols, ci)
			}
		}
		for _, oi := range obCols {
			for _, rj := range remCols {
				if oi != rj {
					return oi, rj, ri + 1, true
				}
			}
		}
	}
	return 0, 0, 0, false
}

type columnStats struct {
	index  int
	filled int
	avgLen float64
}

// inferFormalColumns picks column roles for a header-less continuation
// table. The objection column is the populated column with the shortest
// average text, ties going to the better-filled one. The remark column is the
// best-filled populated column to its right; failing that, the populated
// column with the longest average text.
func inferFormalColumns(rows [][]string) (ob, rem int, ok bool) {
	ncols := 0
	for _, r := range rows {
		ncols = max(ncols, len(r))
	}
	if ncols < 2 {
		return 0, 0, false
	}

	var populated []columnStats
	for ci := 0; ci < ncols; ci++ {
		st := columnStats{index: ci}
		total := 0
		for _, r := range rows {
			if ci < len(r) && r[ci] != "" {
				st.filled++
				total += len(r[ci])
			}
		}
		if st.filled == 0 {
			continue
		}
		st.avgLen = float64(total) / float64(st.filled)
		populated = append(populated, st)
	}
	if len(populated) < 2 {
		return 0, 0, false
	}

	byShortest := append([]columnStats(nil), populated...)
	sort.SliceStable(byShortest, func(i, j int) bool {
		if byShortest[i].avgLen != byShortest[j].avgLen {
			return byShortest[i].avgLen < byShortest[j].avgLen
		}
		return byShortest[i].filled > byShortest[j].filled
	})
	ob = byShortest[0].index

	var others, right []columnStats
	for _, st := range populated {
		if st.index == ob {
			continue
		}
		others = append(others, st)
		if st.index > ob {
			right = append(right, st)
		}
	}
	if len(right) > 0 {
		sort.SliceStable(right, func(i, j int) bool {
			a, b := right[i], right[j]
			if a.filled != b.filled {
				return a.filled > b.filled
			}
			if a.avgLen != b.avgLen {
				return a.avgLen > b.avgLen
			}
			return a.index < b.index
		})
		return ob, right[0].index, true
	}
	sort.SliceStable(others, func(i, j int) bool {
		a, b := others[i], others[j]
		if a.avgLen != b.avgLen {
			return a.avgLen > b.avgLen
		}
		return a.filled > b.filled
	})
	return ob, others[0].index, true
}

func (e *Extractor) scanFormalTable(scan *formalScan, rows [][]string) {
	fp := e.p.formal
	if len(rows) == 0 {
		return
	}

	var head []string
	for _, r := range rows[:min(3, len(rows))] {
		head = append(head, strings.ToLower(strings.Join(r, " ")))
	}
	if fp.docketHint.MatchString(strings.Join(head, " ")) {
		return
	}

	ob, rem, start, ok := e.findFormalHeader(rows)
	if ok {
		scan.seenHeader = true
	} else {
		if !scan.seenHeader {
			return
		}
		var body []string
		for _, r := range rows {
			body = append(body, strings.Join(r, " "))
		}
		if !fp.categoryHint.MatchString(strings.Join(body, " ")) {
			return
		}
		if ob, rem, ok = inferFormalColumns(rows); !ok {
			return
		}
		e.log.Debug().Int("objection_col", ob).Int("remark_col", rem).Msg("inferred continuation table columns")
		start = 0
	}

	for _, row := range rows[start:] {
		if e.assembleFormalRow(scan, row, ob, rem) {
			scan.stopped = true
			return
		}
	}
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// assembleFormalRow adds one table row to the scan. It reports true when the
// row carries the PART-IV marker and scanning must stop.
func (e *Extractor) assembleFormalRow(scan *formalScan, row []string, obIdx, remIdx int) bool {
	fp := e.p.formal
	ob := cellAt(row, obIdx)
	rem := cellAt(row, remIdx)
	if rem == "" {
		for ci, val := range row {
			if ci != obIdx && len(val) > len(rem) {
				rem = val
			}
		}
	}
	ob = strings.TrimSpace(ob)
	rem = strings.TrimSpace(rem)
	combined := strings.TrimSpace(ob + " " + rem)

	switch {
	case ob == "" && rem == "":
		return false
	case fp.objectionWord.MatchString(combined) && fp.remarkWord.MatchString(combined):
		return false
	case fp.pageToken.MatchString(rem):
		return false
	case fp.patentOffice.MatchString(ob) && (rem == "" || fp.patentOffice.MatchString(rem)):
		return false
	case fp.patentOffice.MatchString(rem) && ob == "":
		return false
	case fp.pageOfM.MatchString(ob) || fp.pageOfM.MatchString(rem):
		return false
	}

	if fp.sectionEnd.MatchString(combined) {
		obBefore := strings.TrimSpace(cutAtFirst(ob, fp.sectionEnd))
		remBefore := strings.TrimSpace(cutAtFirst(rem, fp.sectionEnd))
		if obBefore != "" {
			scan.rows = append(scan.rows, FormalRow{Category: obBefore, Remark: remBefore})
		} else {
			scan.appendToLast(remBefore)
		}
		return true
	}

	switch {
	case ob != "":
		scan.rows = append(scan.rows, FormalRow{Category: ob, Remark: rem})
	case rem != "":
		scan.appendToLast(rem)
	}
	return false
}

// cleanFormalRows strips page furniture and non-Latin script, canonicalizes
// categories and folds a row left without a category into the row above.
// Consecutive duplicates are dropped and adjacent rows of the same category
// merged.
func (e *Extractor) cleanFormalRows(rows []FormalRow) []FormalRow {
	fp := e.p.formal
	cleaned := make([]FormalRow, 0, len(rows))
	for _, r := range rows {
		ob := fp.pageOfMAny.ReplaceAllString(r.Category, "")
		rem := fp.pageOfMAny.ReplaceAllString(r.Remark, "")
		ob = e.p.text.devanagari.ReplaceAllString(ob, "")
		rem = e.p.text.devanagari.ReplaceAllString(rem, "")
		ob = strings.Trim(fp.patentOfficeIn.ReplaceAllString(ob, ""), " -:/\n\t")
		rem = strings.Trim(fp.patentOfficeIn.ReplaceAllString(rem, ""), " -:/\n\t")
		ob = fp.headerEcho.ReplaceAllString(ob, "")
		rem = fp.headerEcho.ReplaceAllString(rem, "")
		rem = fp.partFourLine.ReplaceAllString(rem, "")
		rem = strings.Trim(fp.partFourTail.ReplaceAllString(rem, ""), " -:/\n\t")
		ob = strings.TrimSpace(fp.multiSpace.ReplaceAllString(ob, " "))

		var lines []string
		for _, ln := range splitLines(rem) {
			if ln = strings.TrimSpace(ln); ln != "" {
				lines = append(lines, ln)
			}
		}
		rem = strings.Join(lines, "\n")
		if ob == "" && rem == "" {
			continue
		}
		if ob == "" {
			if n := len(cleaned); n > 0 {
				prev := &cleaned[n-1]
				if prev.Remark != "" {
					prev.Remark += "\n"
				}
				prev.Remark = strings.TrimSpace(prev.Remark + rem)
				continue
			}
			ob = FallbackFormalCategory
		} else {
			ob = e.canonicalCategory(ob)
		}
		cleaned = append(cleaned, FormalRow{Category: ob, Remark: rem})
	}
	return mergeFormalRows(cleaned)
}

// mergeFormalRows drops exact consecutive duplicates, then joins adjacent
// rows whose categories match case-insensitively. Rows separated by another
// category stay apart.
func mergeFormalRows(rows []FormalRow) []FormalRow {
	deduped := make([]FormalRow, 0, len(rows))
	for _, r := range rows {
		if n := len(deduped); n > 0 && deduped[n-1] == r {
			continue
		}
		deduped = append(deduped, r)
	}

	merged := make([]FormalRow, 0, len(deduped))
	for _, r := range deduped {
		n := len(merged)
		if n > 0 && strings.EqualFold(strings.TrimSpace(merged[n-1].Category), strings.TrimSpace(r.Category)) {
			prev := &merged[n-1]
			if prev.Remark != "" && r.Remark != "" {
				prev.Remark += "\n"
			}
			prev.Remark = strings.TrimSpace(prev.Remark + r.Remark)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
