package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitle(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name   string
		text   string
		tables [][]Table
		want   string
	}{
		{
			name:   "table key cell wins",
			text:   "TITLE OF THE INVENTION: Something else",
			tables: [][]Table{{{{"Title:", "Smart Pump"}}}},
			want:   "Smart Pump",
		},
		{
			name: "inline heading",
			text: "2. TITLE OF THE INVENTION: Smart irrigation controller\nFIELD OF INVENTION",
			want: "Smart irrigation controller",
		},
		{
			name: "heading with wrapped lines",
			text: "TITLE OF THE INVENTION\nSMART IRRIGATION\nCONTROLLER FOR FARMS\n\nFIELD OF INVENTION",
			want: "SMART IRRIGATION CONTROLLER FOR FARMS",
		},
		{
			name: "heading followed by stop heading",
			text: "TITLE OF THE INVENTION\nAPPLICANT\nTitle: Solar water pump",
			want: "Solar water pump",
		},
		{
			name: "labeled line",
			text: "Ref No: 123\nTitle: Smart irrigation controller",
			want: "Smart irrigation controller",
		},
		{
			name: "absent",
			text: "Nothing here",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ExtractTitle(tt.text, tt.tables))
		})
	}
}

func TestExtractTitle_Capped(t *testing.T) {
	e := NewDefault()

	long := strings.TrimSpace(strings.Repeat("rotary pump assembly ", 12))
	got := e.ExtractTitle("TITLE OF THE INVENTION\n"+long, nil)

	assert.LessOrEqual(t, len(got), e.Options().TitleMaxChars)
	assert.True(t, strings.HasPrefix(got, "rotary pump assembly"))
	assert.False(t, strings.HasSuffix(got, " "))
}

func TestCapTitle_CutsOnCharacters(t *testing.T) {
	e := NewDefault()
	limit := e.Options().TitleMaxChars

	got := e.capTitle(strings.Repeat("é", limit+20))

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, limit, utf8.RuneCountInString(got))
	assert.Equal(t, "Pompe à chaleur", e.capTitle("Pompe à chaleur"))
}
