package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleSpecification = `FIELD OF INVENTION
The invention relates to irrigation.
BACKGROUND OF THE INVENTION
[0002] Irrigation wastes water.
Page 2 of 9
Farmers lack control.
SUMMARY OF THE INVENTION
[0003] The invention provides a controller.
BRIEF DESCRIPTION OF DRAWINGS
Fig 1 shows the controller.`

func TestBackgroundAndSummary(t *testing.T) {
	e := NewDefault()

	background, summary := e.BackgroundAndSummary(sampleSpecification)
	assert.Equal(t, "Irrigation wastes water.\nFarmers lack control.", background)
	assert.Equal(t, "The invention provides a controller.", summary)
}

func TestBackgroundAndSummary_ObjectsEndBackground(t *testing.T) {
	e := NewDefault()

	text := "2. BACKGROUND\nPumps are old.\nOBJECTS OF THE INVENTION\nTo save water."
	background, summary := e.BackgroundAndSummary(text)
	assert.Equal(t, "Pumps are old.", background)
	assert.Empty(t, summary)
}

func TestBackgroundAndSummary_Missing(t *testing.T) {
	e := NewDefault()

	background, summary := e.BackgroundAndSummary("")
	assert.Empty(t, background)
	assert.Empty(t, summary)
}

func TestCleanCSSection(t *testing.T) {
	e := NewDefault()

	got := e.cleanCSSection("\n12 Pumps are old.\n[0004]\n1. They leak.\n\n\n\nTHE PATENT OFFICE\nNew paragraph.\n")
	assert.Equal(t, "Pumps are old.\nThey leak.\n\nNew paragraph.", got)
}
