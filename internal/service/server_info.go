package service

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/a3tai/mcp-fer-extract/internal/descriptions"
	"github.com/a3tai/mcp-fer-extract/internal/extract"
)

const (
	scanMaxDepth  = 5
	scanFileLimit = 100
	scanTimeLimit = 3 * time.Second
)

// directoryScanner lists supported documents below a root with depth, count
// and time limits. Hidden entries and symlinks are skipped.
type directoryScanner struct {
	maxDepth   int
	fileLimit  int
	timeLimit  time.Duration
	extensions []string
}

type scanState struct {
	start     time.Time
	visited   map[string]bool
	files     []FileInfo
	truncated bool
}

func newDirectoryScanner(extensions []string) *directoryScanner {
	return &directoryScanner{
		maxDepth:   scanMaxDepth,
		fileLimit:  scanFileLimit,
		timeLimit:  scanTimeLimit,
		extensions: extensions,
	}
}

// scan returns the documents found and whether a limit cut the walk short.
func (s *directoryScanner) scan(ctx context.Context, root string) ([]FileInfo, bool, error) {
	st := &scanState{
		start:   time.Now(),
		visited: make(map[string]bool),
		files:   []FileInfo{},
	}
	err := s.walk(ctx, root, 0, st)
	return st.files, st.truncated, err
}

func (s *directoryScanner) walk(ctx context.Context, path string, depth int, st *scanState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.maxDepth > 0 && depth >= s.maxDepth {
		return nil
	}
	if s.limitReached(st) {
		st.truncated = true
		return nil
	}

	realPath, err := filepath.EvalSymlinks(path)
	if err != nil || st.visited[realPath] {
		return nil
	}
	st.visited[realPath] = true

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") || entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		entryPath := filepath.Join(path, name)
		if entry.IsDir() {
			if err := s.walk(ctx, entryPath, depth+1, st); err != nil {
				return err
			}
			continue
		}

		if !s.supported(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		st.files = append(st.files, FileInfo{
			Path:         entryPath,
			Name:         name,
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		if s.limitReached(st) {
			st.truncated = true
			return nil
		}
	}

	return nil
}

func (s *directoryScanner) limitReached(st *scanState) bool {
	if s.fileLimit > 0 && len(st.files) >= s.fileLimit {
		return true
	}
	return s.timeLimit > 0 && time.Since(st.start) > s.timeLimit
}

func (s *directoryScanner) supported(name string) bool {
	return slices.Contains(s.extensions, strings.ToLower(filepath.Ext(name)))
}

// ServerInfo reports the server configuration, its tools and the documents
// in the configured directory.
func (s *Service) ServerInfo(ctx context.Context) (*ServerInfoResult, error) {
	extensions := s.validator.AllowedExtensions()

	files, truncated, err := newDirectoryScanner(extensions).scan(ctx, s.Directory())
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		s.log.Debug().Err(err).Msg("directory scan failed")
	}

	ttl := "disabled"
	if s.cacheTTL > 0 {
		ttl = s.cacheTTL.String()
	}

	return &ServerInfoResult{
		ServerName:          s.serverName,
		Version:             s.version,
		Directory:           s.Directory(),
		MaxFileSize:         s.maxFileSize,
		Profile:             s.profile,
		Profiles:            extract.Profiles(),
		CacheTTL:            ttl,
		CachedItems:         s.cache.Len(),
		SupportedExtensions: extensions,
		AvailableTools:      availableTools(),
		Documents:           files,
		Truncated:           truncated,
		UsageGuidance:       usageGuidance,
	}, nil
}

const pathParameter = "path (required): path to the document, absolute or relative to the configured directory"

func availableTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        descriptions.ToolParseFER,
			Description: descriptions.GetToolDescription(descriptions.ToolParseFER),
			Usage:       "Use on a First Examination Report to get its header fields, cited prior art and objections.",
			Parameters:  pathParameter,
		},
		{
			Name:        descriptions.ToolFormalRequirements,
			Description: descriptions.GetToolDescription(descriptions.ToolFormalRequirements),
			Usage:       "Use on a First Examination Report to get the PART-III formal requirement rows.",
			Parameters:  pathParameter,
		},
		{
			Name:        descriptions.ToolClaims,
			Description: descriptions.GetToolDescription(descriptions.ToolClaims),
			Usage:       "Use on an amended claims document to split it into numbered claims.",
			Parameters:  pathParameter,
		},
		{
			Name:        descriptions.ToolPriorArtAbstract,
			Description: descriptions.GetToolDescription(descriptions.ToolPriorArtAbstract),
			Usage:       "Use on a cited prior-art PDF to recover its abstract.",
			Parameters:  pathParameter,
		},
		{
			Name:        descriptions.ToolCoverSheet,
			Description: descriptions.GetToolDescription(descriptions.ToolCoverSheet),
			Usage:       "Use on a Complete Specification to get applicant, title, background and summary.",
			Parameters:  pathParameter,
		},
		{
			Name:        descriptions.ToolInspectDocument,
			Description: descriptions.GetToolDescription(descriptions.ToolInspectDocument),
			Usage:       "Use to check format, page count, text layer and validity before extraction.",
			Parameters:  pathParameter,
		},
		{
			Name:        descriptions.ToolServerInfo,
			Description: descriptions.GetToolDescription(descriptions.ToolServerInfo),
			Usage:       "Use to see the configuration, available tools and documents.",
			Parameters:  "No parameters required",
		},
	}
}

const usageGuidance = `Document preparation for a FER reply:

1. Run fer_server_info to see which documents are available.
2. Run fer_parse on the FER for header fields, prior art and objections.
3. Run fer_formal_requirements on the same FER for the PART-III rows.
4. Run fer_prior_art_abstract on each cited D-document.
5. Run fer_claims on the amended claims and fer_cover_sheet on the complete specification.

If a tool returns mostly empty fields, run fer_inspect_document: a scanned document has no text layer and needs OCR first.`
