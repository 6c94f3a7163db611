package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ExtractPriorArts collects "D<n>: <docno> (<date>)" citations. The first
// citation of a label wins and the result is ordered by the label's number.
func (e *Extractor) ExtractPriorArts(text string) []PriorArtReference {
	seen := map[string]bool{}
	arts := []PriorArtReference{}
	for _, m := range e.p.priorArt.reference.FindAllStringSubmatch(text, -1) {
		label := strings.ToUpper(m[1])
		if seen[label] {
			continue
		}
		seen[label] = true
		arts = append(arts, PriorArtReference{Label: label, DocNo: m[2], PubDate: m[3]})
	}
	sort.SliceStable(arts, func(i, j int) bool {
		return labelNumber(arts[i].Label) < labelNumber(arts[j].Label)
	})
	return arts
}

func labelNumber(label string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(label, "D"))
	if err != nil {
		return 0
	}
	return n
}

// NormalizePriorArtLabel returns label uppercased when it is a D-label and
// "D<index>" otherwise.
func (e *Extractor) NormalizePriorArtLabel(label string, index int) string {
	raw := strings.ToUpper(strings.TrimSpace(label))
	if e.p.priorArt.dLabel.MatchString(raw) {
		return raw
	}
	return fmt.Sprintf("D%d", index)
}

// FormatDLabelRanges renders D-labels with consecutive runs collapsed:
// D1, D2, D3 becomes "D1-D3" and D1, D3 stays "D1, D3". Labels that are not
// all D-labels are joined unchanged.
func (e *Extractor) FormatDLabelRanges(labels []string) string {
	var nums []int
	for _, l := range labels {
		m := e.p.priorArt.dLabel.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(l)))
		if m == nil {
			var kept []string
			for _, x := range labels {
				if x != "" {
					kept = append(kept, x)
				}
			}
			return strings.Join(kept, ", ")
		}
		n, _ := strconv.Atoi(m[1])
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return ""
	}
	sort.Ints(nums)

	var parts []string
	start, prev := nums[0], nums[0]
	emit := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("D%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("D%d-D%d", start, prev))
		}
	}
	for _, n := range nums[1:] {
		switch {
		case n == prev:
			continue
		case n == prev+1:
			prev = n
		default:
			emit()
			start, prev = n, n
		}
	}
	emit()
	return strings.Join(parts, ", ")
}
