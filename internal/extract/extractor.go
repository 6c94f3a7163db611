package extract

import (
	"sync"

	"github.com/rs/zerolog"
)

// Patterns is the compiled regular-expression registry shared by every
// Extractor. It is built once and never mutated.
type Patterns struct {
	text      textPatterns
	noise     noisePatterns
	meta      metaPatterns
	applicant applicantPatterns
	title     titlePatterns
	objection objectionPatterns
	claims    claimPatterns
	formal    formalPatterns
	category  []categoryRule
	priorArt  priorArtPatterns
	sections  csSectionPatterns
}

var defaultPatterns = sync.OnceValue(func() *Patterns {
	return &Patterns{
		text:      newTextPatterns(),
		noise:     newNoisePatterns(),
		meta:      newMetaPatterns(),
		applicant: newApplicantPatterns(),
		title:     newTitlePatterns(),
		objection: newObjectionPatterns(),
		claims:    newClaimPatterns(),
		formal:    newFormalPatterns(),
		category:  newCategoryRules(),
		priorArt:  newPriorArtPatterns(),
		sections:  newCSSectionPatterns(),
	}
})

// DefaultPatterns returns the process-wide pattern registry.
func DefaultPatterns() *Patterns {
	return defaultPatterns()
}

// Extractor runs the extraction heuristics. It holds no per-document state
// and is safe for concurrent use.
type Extractor struct {
	opts Options
	p    *Patterns
	log  zerolog.Logger
}

// New creates an Extractor with the given options. Misses and fallbacks are
// reported to logger at debug level.
func New(opts Options, logger zerolog.Logger) *Extractor {
	return &Extractor{
		opts: opts.withDefaults(),
		p:    DefaultPatterns(),
		log:  logger.With().Str("component", "extract").Logger(),
	}
}

// NewDefault creates an Extractor with the default profile and no logging.
func NewDefault() *Extractor {
	return New(DefaultOptions(), zerolog.Nop())
}

// Options returns the effective options.
func (e *Extractor) Options() Options {
	return e.opts
}

// strategy is one step of an ordered cascade. run reports false when the
// strategy found nothing.
type strategy struct {
	name string
	run  func() (string, bool)
}

// firstOf runs strategies in order and returns the first successful value.
func (e *Extractor) firstOf(field string, strategies []strategy) string {
	for _, s := range strategies {
		if v, ok := s.run(); ok && v != "" {
			e.log.Debug().Str("field", field).Str("strategy", s.name).Msg("resolved")
			return v
		}
		e.log.Debug().Str("field", field).Str("strategy", s.name).Msg("no match")
	}
	e.log.Debug().Str("field", field).Msg("unresolved")
	return ""
}

// found adapts a plain string result to the cascade signature.
func found(v string) (string, bool) {
	return v, v != ""
}
