package extract

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pumpAbstract = "A pump assembly for irrigation includes a housing, a rotor mounted in the housing " +
	"and a controller that adjusts the rotor speed according to soil moisture readings. The assembly " +
	"reduces water consumption and allows farmers to schedule irrigation remotely."

// pumpLine is a twenty-word line without sentence punctuation.
const pumpLine = "the pump housing includes a rotor and a stator arranged to move water through the inlet and the outlet port"

func TestExtractAbstract_Heading(t *testing.T) {
	e := NewDefault()

	page := strings.Join([]string{
		"US 2019/0123456 A1",
		"https://worldwide.espacenet.com/patent/search",
		"ABSTRACT",
		pumpAbstract,
		"",
		"BACKGROUND",
		"Irrigation systems are known.",
	}, "\n")

	assert.Equal(t, pumpAbstract, e.ExtractAbstract([]string{page}))
}

func TestExtractAbstract_BestHeadingCandidate(t *testing.T) {
	e := NewDefault()

	fragment := strings.TrimSpace(strings.Repeat("rotor stator housing ", 10))
	complete := pumpAbstract + " " + pumpAbstract

	page := strings.Join([]string{
		"Abstract",
		fragment,
		"Claims",
		"1. A pump.",
		"Abstract of the disclosure",
		complete,
		"Description",
		"The drawings show the pump.",
	}, "\n")

	assert.Equal(t, complete, e.ExtractAbstract([]string{page}))
}

func TestExtractAbstract_BestParagraph(t *testing.T) {
	e := NewDefault()

	claimsHeavy := "In one embodiment of claim 1 the device of claim 2 and claim 3 is shown with a rotor " +
		"and a stator and a housing and an inlet and an outlet and a valve and a seal and a shaft and a bearing " +
		"and a motor"
	abstractLike := "The present invention relates to a water pump system that provides a method for " +
		"moving water efficiently. " + pumpAbstract + " " + pumpAbstract

	page := claimsHeavy + "\n\n" + abstractLike

	got := e.ExtractAbstract([]string{page})
	assert.True(t, strings.HasPrefix(got, "The present invention relates to"), got)
}

func TestExtractAbstract_WordCap(t *testing.T) {
	var lines []string
	for i := 1; i <= 25; i++ {
		ln := pumpLine
		if i == 15 {
			ln += "."
		}
		lines = append(lines, ln)
	}
	page := "Abstract\n" + strings.Join(lines, "\n")

	opts, ok := ProfileOptions(ProfileV1)
	require.True(t, ok)
	capped := New(opts, zerolog.Nop()).ExtractAbstract([]string{page})
	assert.Equal(t, 300, wordCount(capped))
	assert.True(t, strings.HasSuffix(capped, "port."))

	full := NewDefault().ExtractAbstract([]string{page})
	assert.Equal(t, 500, wordCount(full))
	assert.True(t, strings.HasSuffix(full, "."))
}

func TestExtractAbstract_PageLimit(t *testing.T) {
	e := NewDefault()

	pages := make([]string, e.Options().PriorArtPageLimit)
	pages = append(pages, "ABSTRACT\n"+pumpAbstract)

	assert.Empty(t, e.ExtractAbstract(pages))
}

func TestExtractAbstract_Empty(t *testing.T) {
	e := NewDefault()
	assert.Empty(t, e.ExtractAbstract(nil))
	assert.Empty(t, e.ExtractAbstract([]string{"", "Page 1 of 2"}))
}

func TestTrimWords(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "under cap", text: "one two three", max: 5, want: "one two three"},
		{name: "cut on sentence end", text: "one two. three four", max: 2, want: "one two."},
		{name: "back to last sentence", text: "one two three. four five", max: 4, want: "one two three."},
		{name: "closed with period", text: "one. two three four five six", max: 5, want: "one. two three four five."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.trimWords(tt.text, tt.max))
		})
	}
}

func TestPolishTail(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "residue dropped", text: "A pump that works x", want: "A pump that works."},
		{name: "cut word dropped", text: "First sentence is complete. Second is cut at th", want: "First sentence is complete."},
		{name: "enumerated tail kept", text: "pump (210) housing;(212) valve", want: "pump (210) housing;(212) valve."},
		{name: "already terminated", text: "Done!", want: "Done!"},
		{name: "empty", text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.polishTail(tt.text))
		})
	}
}

func TestCleanPriorArtText(t *testing.T) {
	e := NewDefault()

	text := "Int. Cl. A61K 31/00\nA pump-\ning device for water.\nhttps://example.com/doc\n\nContinuation of application No. 12/345,678\nIt saves energy"

	assert.Equal(t, "A pumping device for water.\n\nIt saves energy.", e.CleanPriorArtText(text))
}
