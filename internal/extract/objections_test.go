package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeading(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		raw  string
		want string
	}{
		{"Scope of the Claims", HeadingScope},
		{"SCOPE", HeadingScope},
		{"scope of claims", HeadingScope},
		{"Non-Patentability", HeadingNonPatentability},
		{"NON PATENTABILITY", HeadingNonPatentability},
		{"Other Requirements", HeadingOthersRequirements},
		{"inventive  step:", HeadingInventiveStep},
		{"Novelty", HeadingNovelty},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, e.NormalizeHeading(tt.raw))
		})
	}
}

func TestSplitObjections_StandaloneHeadings(t *testing.T) {
	e := NewDefault()

	text := `1. Novelty
Claim(s) (1-3) lack novelty under section 2(1)(j) in view of D1.
Page 4 of 9
2. Inventive Step
Claims 4-6 are obvious.
NON-PATENTABILITY
Claims 7 fall under section 3(d).
PART-III: FORMAL REQUIREMENTS
SCOPE
ignored`

	objections := e.SplitObjections(text)
	require.Len(t, objections, 3)

	assert.Equal(t, 1, objections[0].Number)
	assert.Equal(t, HeadingNovelty, objections[0].Heading)
	assert.Equal(t, "1-3", objections[0].Claims)
	assert.Equal(t, []string{"2(1)(j)"}, objections[0].Sections)
	assert.NotContains(t, objections[0].Body, "Page 4 of 9")

	assert.Equal(t, 2, objections[1].Number)
	assert.Equal(t, HeadingInventiveStep, objections[1].Heading)
	assert.Equal(t, "4-6", objections[1].Claims)
	assert.Empty(t, objections[1].Sections)
	assert.NotNil(t, objections[1].Sections)

	assert.Equal(t, HeadingNonPatentability, objections[2].Heading)
	assert.Equal(t, "7", objections[2].Claims)
	assert.Equal(t, []string{"3(d)"}, objections[2].Sections)

	for _, o := range objections {
		assert.NotNil(t, o.PriorArts)
	}
}

func TestSplitObjections_InlineHeadings(t *testing.T) {
	e := NewDefault()

	text := "The following applies. NOVELTY: claims 1-3 are anticipated by D1. INVENTIVE STEP: claims 4-5 are obvious."

	objections := e.SplitObjections(text)
	require.Len(t, objections, 2)
	assert.Equal(t, HeadingNovelty, objections[0].Heading)
	assert.Equal(t, "claims 1-3 are anticipated by D1.", objections[0].Body)
	assert.Equal(t, "1-3", objections[0].Claims)
	assert.Equal(t, HeadingInventiveStep, objections[1].Heading)
	assert.Equal(t, "4-5", objections[1].Claims)
}

func TestSplitObjections_EmptyBodiesSkipped(t *testing.T) {
	e := NewDefault()

	text := "NOVELTY\nINVENTIVE STEP\nClaims 1-2 are obvious."

	objections := e.SplitObjections(text)
	require.Len(t, objections, 1)
	assert.Equal(t, 1, objections[0].Number)
	assert.Equal(t, HeadingInventiveStep, objections[0].Heading)
}

func TestSplitObjections_NoHeadings(t *testing.T) {
	e := NewDefault()

	objections := e.SplitObjections("Nothing objectionable here.")
	assert.NotNil(t, objections)
	assert.Empty(t, objections)
}

func TestSectionsFromText(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "subsections deduplicated and sorted",
			body: "objection under section 3(d) and 2(1)(j) read with Rule 13, again 3(d)",
			want: []string{"2(1)(j)", "3(d)", "Rule 13"},
		},
		{
			name: "rule with sub-rule",
			body: "as required by Rule 13(7)",
			want: []string{"13(7)", "Rule 13(7)"},
		},
		{
			name: "none",
			body: "no statutory reference",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.SectionsFromText(tt.body))
		})
	}
}

func TestDetailedObservations(t *testing.T) {
	e := NewDefault()

	text := `PART-I: SUMMARY
Intro text.
B. Detailed observations on the requirements under the Act
NOVELTY
Claims 1-2 lack novelty.
PART-III: FORMAL REQUIREMENTS
Form 1 is missing.`

	got := e.DetailedObservations(text)
	assert.Contains(t, got, "Claims 1-2 lack novelty.")
	assert.NotContains(t, got, "Intro text")
	assert.NotContains(t, got, "Form 1")

	assert.Empty(t, e.DetailedObservations("No observations block."))
}
