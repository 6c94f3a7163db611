package extract

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "soft hyphen", input: "inven\u00adtion", want: "invention"},
		{name: "glyph placeholder", input: "a(cid:12)b", want: "ab"},
		{name: "horizontal whitespace", input: "a  \t b", want: "a b"},
		{name: "blank line runs", input: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "trim", input: "  padded  ", want: "padded"},
		{name: "full width digits", input: "ＡＢＣ１２", want: "ABC12"},
		{name: "full width placeholder", input: "（cid:7）x", want: "x"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"THE PATENT OFFICE\n\n\n\nApplication No.:   202141012345",
		"inven\u00adtion (cid:3) of  the\t\tpump\n \n\n\nnext",
		"（cid:1）\ufb01le ＡＢＣ  \n\n\n\n x",
		"Claim(s) (1-5)\n\n\n",
	}

	for _, profile := range Profiles() {
		opts, ok := ProfileOptions(profile)
		require.True(t, ok)
		e := New(opts, zerolog.Nop())

		for _, in := range inputs {
			once := e.Normalize(in)
			assert.Equal(t, once, e.Normalize(once), "profile %s input %q", profile, in)
		}
	}
}

func TestNormalize_ProfileWithoutNFKC(t *testing.T) {
	opts, ok := ProfileOptions(ProfileV1)
	require.True(t, ok)
	e := New(opts, zerolog.Nop())

	assert.Equal(t, "ＡＢＣ", e.Normalize("ＡＢＣ"))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "two sentences", input: "First one. Second one.", want: []string{"First one.", "Second one."}},
		{name: "decimal kept", input: "Pay 1.5 units. Done", want: []string{"Pay 1.5 units.", "Done"}},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSentences(tt.input))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abcdef", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "éé", truncateRunes("ééé", 2))
}

func TestIsNoiseLine(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"Page 3 of 10", true},
		{"[0012]", true},
		{"12", true},
		{"US1234567B2", true},
		{"12/05/2020", true},
		{"Printed 10:45 AM", true},
		{"THE PATENT OFFICE", true},
		{"https://worldwide.espacenet.com/patent", true},
		{"Espacenet search results", true},
		{"A61K 31/00", true},
		{"a", true},
		{"The present invention relates to a pump.", false},
		{"Abstract", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, e.IsNoiseLine(tt.line))
		})
	}
}
