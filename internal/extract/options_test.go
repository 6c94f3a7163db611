package extract

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles(t *testing.T) {
	assert.Equal(t, []string{ProfileV1, ProfileV3, ProfileV5}, Profiles())

	tests := []struct {
		profile string
		wordCap int
		nfkc    bool
	}{
		{ProfileV1, 400, false},
		{ProfileV3, 800, true},
		{ProfileV5, 1200, true},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			opts, ok := ProfileOptions(tt.profile)
			require.True(t, ok)
			assert.Equal(t, tt.profile, opts.Profile)
			assert.Equal(t, tt.wordCap, opts.AbstractWordCap)
			assert.Equal(t, tt.nfkc, opts.UnicodeNFKC)
		})
	}

	_, ok := ProfileOptions("v9")
	assert.False(t, ok)
}

func TestOptions_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want int
	}{
		{name: "zero uses default cap", in: Options{}, want: 1200},
		{name: "below range clamped", in: Options{AbstractWordCap: 50}, want: 400},
		{name: "above range clamped", in: Options{AbstractWordCap: 5000}, want: 1200},
		{name: "in range kept", in: Options{AbstractWordCap: 600}, want: 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.in, zerolog.Nop())
			opts := e.Options()
			assert.Equal(t, tt.want, opts.AbstractWordCap)
			assert.Equal(t, DefaultProfile, opts.Profile)
			assert.Equal(t, 8, opts.PriorArtPageLimit)
			assert.Equal(t, 5, opts.ApplicantTablePages)
			assert.Equal(t, 140, opts.TitleMaxChars)
			assert.Equal(t, 1200, opts.FormalFallbackCap)
		})
	}
}

func TestFormalCategories(t *testing.T) {
	cats := FormalCategories()
	assert.Equal(t, "Form 28", cats[0])
	assert.Contains(t, cats, "Power of Attorney")
	assert.Contains(t, cats, "Other Deficiencies")
}

func TestDefaultPatterns_Shared(t *testing.T) {
	assert.Same(t, DefaultPatterns(), DefaultPatterns())
}
