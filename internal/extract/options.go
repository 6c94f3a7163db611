package extract

import "sort"

// Profile names. Each profile fixes the tunables that changed between
// generations of the extractor.
const (
	ProfileV1 = "v1"
	ProfileV3 = "v3"
	ProfileV5 = "v5"

	DefaultProfile = ProfileV5

	minAbstractWordCap = 400
	maxAbstractWordCap = 1200
)

// Options controls the tunable limits of the extractor.
type Options struct {
	// Profile is the name the options were resolved from.
	Profile string

	// AbstractWordCap bounds the length of an extracted prior-art abstract.
	// Values are clamped into [400, 1200].
	AbstractWordCap int

	// PriorArtPageLimit is the number of leading pages scanned for an abstract.
	PriorArtPageLimit int

	// ApplicantTablePages is the number of leading pages whose tables are
	// searched for an applicant or title cell.
	ApplicantTablePages int

	// TitleMaxChars caps a title assembled from lines after its heading.
	TitleMaxChars int

	// FormalFallbackCap caps the raw remark of the fallback formal row.
	FormalFallbackCap int

	// UnicodeNFKC folds compatibility characters (full-width digits,
	// ligatures, non-breaking spaces) during normalization.
	UnicodeNFKC bool
}

var profiles = map[string]Options{
	ProfileV1: {
		Profile:             ProfileV1,
		AbstractWordCap:     400,
		PriorArtPageLimit:   8,
		ApplicantTablePages: 5,
		TitleMaxChars:       140,
		FormalFallbackCap:   1200,
		UnicodeNFKC:         false,
	},
	ProfileV3: {
		Profile:             ProfileV3,
		AbstractWordCap:     800,
		PriorArtPageLimit:   8,
		ApplicantTablePages: 5,
		TitleMaxChars:       140,
		FormalFallbackCap:   1200,
		UnicodeNFKC:         true,
	},
	ProfileV5: {
		Profile:             ProfileV5,
		AbstractWordCap:     1200,
		PriorArtPageLimit:   8,
		ApplicantTablePages: 5,
		TitleMaxChars:       140,
		FormalFallbackCap:   1200,
		UnicodeNFKC:         true,
	},
}

// DefaultOptions returns the options of the default profile.
func DefaultOptions() Options {
	return profiles[DefaultProfile]
}

// ProfileOptions returns the options registered under name.
func ProfileOptions(name string) (Options, bool) {
	opts, ok := profiles[name]
	return opts, ok
}

// Profiles lists the known profile names in sorted order.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// withDefaults fills zero values from the default profile and clamps the
// abstract word cap.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Profile == "" {
		o.Profile = def.Profile
	}
	if o.AbstractWordCap == 0 {
		o.AbstractWordCap = def.AbstractWordCap
	}
	if o.AbstractWordCap < minAbstractWordCap {
		o.AbstractWordCap = minAbstractWordCap
	}
	if o.AbstractWordCap > maxAbstractWordCap {
		o.AbstractWordCap = maxAbstractWordCap
	}
	if o.PriorArtPageLimit <= 0 {
		o.PriorArtPageLimit = def.PriorArtPageLimit
	}
	if o.ApplicantTablePages <= 0 {
		o.ApplicantTablePages = def.ApplicantTablePages
	}
	if o.TitleMaxChars <= 0 {
		o.TitleMaxChars = def.TitleMaxChars
	}
	if o.FormalFallbackCap <= 0 {
		o.FormalFallbackCap = def.FormalFallbackCap
	}
	return o
}
