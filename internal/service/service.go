// Package service resolves document paths, decodes them and runs the
// extraction heuristics, caching results by file content.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/a3tai/mcp-fer-extract/internal/cache"
	"github.com/a3tai/mcp-fer-extract/internal/config"
	"github.com/a3tai/mcp-fer-extract/internal/document"
	"github.com/a3tai/mcp-fer-extract/internal/extract"
	"github.com/a3tai/mcp-fer-extract/internal/security"
)

// Cache operation names.
const (
	opParseFER   = "fer"
	opFormal     = "formal"
	opClaims     = "claims"
	opPriorArt   = "priorart"
	opCoverSheet = "coversheet"
)

// Decoder turns a file into page texts and tables.
type Decoder interface {
	Decode(ctx context.Context, path string) (*document.Content, error)
	Inspect(ctx context.Context, path string) (*document.Info, error)
}

// Service orchestrates path validation, decoding, extraction and caching.
type Service struct {
	serverName  string
	version     string
	maxFileSize int64
	profile     string
	cacheTTL    time.Duration

	decoder   Decoder
	validator *security.PathValidator
	extractor *extract.Extractor
	cache     cache.Cache
	log       zerolog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithDecoder replaces the filesystem decoder.
func WithDecoder(d Decoder) Option {
	return func(s *Service) { s.decoder = d }
}

// WithCache replaces the cache built from the configured TTL.
func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// NewService creates a service for the configured document directory.
func NewService(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Service, error) {
	validator, err := security.NewPathValidator(cfg.DocumentDirectory, document.SupportedExtensions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	extractOpts := cfg.ExtractOptions()
	s := &Service{
		serverName:  cfg.ServerName,
		version:     cfg.Version,
		maxFileSize: cfg.MaxFileSize,
		profile:     extractOpts.Profile,
		cacheTTL:    cfg.CacheTTL,
		decoder:     document.NewReader(cfg.MaxFileSize, logger),
		validator:   validator,
		extractor:   extract.New(extractOpts, logger),
		cache:       cache.New(cfg.CacheTTL),
		log:         logger.With().Str("component", "service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Profile returns the active extraction profile.
func (s *Service) Profile() string {
	return s.profile
}

// Directory returns the configured document directory.
func (s *Service) Directory() string {
	return s.validator.Directory()
}

// ParseFER extracts the header fields, prior art and objections of a FER.
func (s *Service) ParseFER(ctx context.Context, req FileRequest) (*FERResult, error) {
	res, path, err := cached(ctx, s, opParseFER, req, func(c *document.Content) (FERResult, error) {
		return FERResult{
			Scanned:     c.Scanned,
			ParseResult: s.extractor.ParseFerDocument(c.Document),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	res.Path = path
	res.Profile = s.profile
	return &res, nil
}

// FormalRequirements reconstructs the PART-III rows of a FER.
func (s *Service) FormalRequirements(ctx context.Context, req FileRequest) (*FormalRequirementsResult, error) {
	res, path, err := cached(ctx, s, opFormal, req, func(c *document.Content) (FormalRequirementsResult, error) {
		rows := s.extractor.FormalRequirements(c.Document)
		if rows == nil {
			rows = []extract.FormalRow{}
		}
		return FormalRequirementsResult{Scanned: c.Scanned, Rows: rows}, nil
	})
	if err != nil {
		return nil, err
	}
	res.Path = path
	res.Profile = s.profile
	return &res, nil
}

// ParseClaims splits the claim set of an amended claims document.
func (s *Service) ParseClaims(ctx context.Context, req FileRequest) (*ClaimsResult, error) {
	res, path, err := cached(ctx, s, opClaims, req, func(c *document.Content) (ClaimsResult, error) {
		claims := s.extractor.ParseClaimsDocument(c.Document)
		if claims == nil {
			claims = []extract.ClaimBlock{}
		}
		return ClaimsResult{
			Scanned: c.Scanned,
			Scope:   extract.ClaimScopeLabel(claims),
			Count:   len(claims),
			Claims:  claims,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	res.Path = path
	res.Profile = s.profile
	return &res, nil
}

// ParsePriorArt recovers the abstract of a cited document. Scanned
// documents are rejected with document.ErrScannedDocument.
func (s *Service) ParsePriorArt(ctx context.Context, req FileRequest) (*PriorArtResult, error) {
	res, path, err := cached(ctx, s, opPriorArt, req, func(c *document.Content) (PriorArtResult, error) {
		if c.Scanned {
			return PriorArtResult{}, fmt.Errorf("%s: %w", c.Path, document.ErrScannedDocument)
		}
		abstract := s.extractor.ParsePriorArt(c.Document)
		return PriorArtResult{
			Abstract: abstract,
			Words:    len(strings.Fields(abstract)),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	res.Path = path
	res.Profile = s.profile
	return &res, nil
}

// ParseCoverSheet resolves the applicant, title, background and summary of
// a Complete Specification.
func (s *Service) ParseCoverSheet(ctx context.Context, req FileRequest) (*CoverSheetResult, error) {
	res, path, err := cached(ctx, s, opCoverSheet, req, func(c *document.Content) (CoverSheetResult, error) {
		return CoverSheetResult{
			Scanned:    c.Scanned,
			CoverSheet: s.extractor.ParseCoverSheet(c.Document),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	res.Path = path
	res.Profile = s.profile
	return &res, nil
}

// InspectDocument reports the structure of a document. It is not cached.
func (s *Service) InspectDocument(ctx context.Context, req FileRequest) (*document.Info, error) {
	path, err := s.validator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.decoder.Inspect(ctx, path)
}

// ClearCache drops every cached result.
func (s *Service) ClearCache() error {
	return s.cache.Clear()
}

// cached resolves the request path and returns the result of op for the
// file's content, computing and storing it on a miss. The returned path is
// the resolved absolute path; results are keyed by content, so callers set
// path-dependent fields themselves.
func cached[T any](ctx context.Context, s *Service, op string, req FileRequest,
	compute func(*document.Content) (T, error),
) (T, string, error) {
	var zero T

	path, err := s.validator.Resolve(req.Path)
	if err != nil {
		return zero, "", fmt.Errorf("security validation failed: %w", err)
	}

	key := ""
	if digest, err := cache.FileDigest(path); err != nil {
		s.log.Debug().Err(err).Str("path", path).Msg("digest failed, bypassing cache")
	} else {
		key = cache.Key(digest, op, s.profile)
	}

	if key != "" {
		if data, ok := s.cache.Get(key); ok {
			var res T
			if err := json.Unmarshal(data, &res); err == nil {
				s.log.Debug().Str("op", op).Str("path", path).Msg("cache hit")
				return res, path, nil
			}
			s.log.Debug().Str("key", key).Msg("dropping undecodable cache entry")
			_ = s.cache.Delete(key)
		}
	}

	content, err := s.decoder.Decode(ctx, path)
	if err != nil {
		return zero, "", err
	}

	res, err := compute(content)
	if err != nil {
		return zero, "", err
	}

	if key != "" {
		data, err := json.Marshal(res)
		if err == nil {
			err = s.cache.Set(key, data, s.cacheTTL)
		}
		if err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("failed to cache result")
		}
	}

	return res, path, nil
}
