package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDLabelRanges(t *testing.T) {
	e := NewDefault()

	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{name: "consecutive run", labels: []string{"D1", "D2", "D3"}, want: "D1-D3"},
		{name: "gap", labels: []string{"D1", "D3"}, want: "D1, D3"},
		{name: "single", labels: []string{"D1"}, want: "D1"},
		{name: "unsorted with duplicates", labels: []string{"D4", "d2", "D3", "D2", "D7"}, want: "D2-D4, D7"},
		{name: "non D label passes through", labels: []string{"D1", "X2"}, want: "D1, X2"},
		{name: "empty", labels: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.FormatDLabelRanges(tt.labels))
		})
	}
}

func TestNormalizePriorArtLabel(t *testing.T) {
	e := NewDefault()

	assert.Equal(t, "D2", e.NormalizePriorArtLabel(" d2 ", 1))
	assert.Equal(t, "D3", e.NormalizePriorArtLabel("Ref", 3))
	assert.Equal(t, "D2", e.NormalizePriorArtLabel("D1234", 2))
}

func TestExtractPriorArts(t *testing.T) {
	e := NewDefault()

	text := `D10: US2019123456A1 (12/01/2019)
D2: EP1234567B1 Pub Date: 05/06/2018
D2: WO2020111111 (01/01/2020)`

	arts := e.ExtractPriorArts(text)
	require.Len(t, arts, 2)
	assert.Equal(t, PriorArtReference{Label: "D2", DocNo: "EP1234567B1", PubDate: "05/06/2018"}, arts[0])
	assert.Equal(t, PriorArtReference{Label: "D10", DocNo: "US2019123456A1", PubDate: "12/01/2019"}, arts[1])
}

func TestExtractPriorArts_None(t *testing.T) {
	e := NewDefault()

	arts := e.ExtractPriorArts("in view of D1")
	assert.NotNil(t, arts)
	assert.Empty(t, arts)
}
