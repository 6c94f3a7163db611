// Package document decodes PDF and DOCX files into page texts and table
// matrices for the extraction core.
package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/a3tai/mcp-fer-extract/internal/extract"
	"github.com/rs/zerolog"
)

// Format identifies a supported source format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// scannedCharsPerPage is the text density below which a PDF carrying
// images is treated as a scan.
const scannedCharsPerPage = 50

// Content is a decoded document.
type Content struct {
	extract.Document

	Path       string `json:"path"`
	Format     Format `json:"format"`
	PageCount  int    `json:"page_count"`
	ImageCount int    `json:"image_count"`
	CharCount  int    `json:"char_count"`
	Scanned    bool   `json:"scanned"`
}

// Info describes a document without exposing its text.
type Info struct {
	Path            string  `json:"path"`
	Format          Format  `json:"format"`
	Size            int64   `json:"size"`
	Pages           int     `json:"pages"`
	Tables          int     `json:"tables"`
	Images          int     `json:"images"`
	Chars           int     `json:"chars"`
	CharsPerPage    float64 `json:"chars_per_page"`
	Scanned         bool    `json:"scanned"`
	Encrypted       bool    `json:"encrypted"`
	Version         string  `json:"version,omitempty"`
	Valid           bool    `json:"valid"`
	ValidationError string  `json:"validation_error,omitempty"`
}

// Reader decodes documents from the filesystem.
type Reader struct {
	maxFileSize int64
	log         zerolog.Logger
}

// NewReader creates a reader refusing files larger than maxFileSize bytes.
func NewReader(maxFileSize int64, logger zerolog.Logger) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		log:         logger.With().Str("component", "document").Logger(),
	}
}

// MaxFileSize returns the configured size limit.
func (r *Reader) MaxFileSize() int64 {
	return r.maxFileSize
}

// DetectFormat maps a file extension to a supported format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// SupportedExtensions lists the accepted file extensions.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx"}
}

// checkFile validates the file on disk and returns its format and size.
func (r *Reader) checkFile(path string) (Format, int64, error) {
	if path == "" {
		return "", 0, fmt.Errorf("path cannot be empty")
	}

	format, err := DetectFormat(path)
	if err != nil {
		return "", 0, err
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", 0, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return "", 0, fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return "", 0, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if fileInfo.Size() == 0 {
		return "", 0, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	if r.maxFileSize > 0 && fileInfo.Size() > r.maxFileSize {
		return "", 0, fmt.Errorf("%w: %d bytes (max: %d bytes)",
			ErrFileTooLarge, fileInfo.Size(), r.maxFileSize)
	}

	return format, fileInfo.Size(), nil
}

// Decode reads path into page texts and tables.
func (r *Reader) Decode(ctx context.Context, path string) (*Content, error) {
	format, _, err := r.checkFile(path)
	if err != nil {
		return nil, err
	}

	var content *Content
	switch format {
	case FormatPDF:
		content, err = r.decodePDF(ctx, path)
	case FormatDOCX:
		content, err = r.decodeDOCX(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	content.Path = path
	content.CharCount = countChars(content.Pages)
	content.Scanned = isScanned(content)

	r.log.Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("pages", content.PageCount).
		Int("chars", content.CharCount).
		Int("images", content.ImageCount).
		Bool("scanned", content.Scanned).
		Msg("document decoded")

	return content, nil
}

// Inspect decodes path and reports its structure, validity and scan status.
func (r *Reader) Inspect(ctx context.Context, path string) (*Info, error) {
	format, size, err := r.checkFile(path)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Path:   path,
		Format: format,
		Size:   size,
	}

	content, err := r.Decode(ctx, path)
	if err != nil {
		return nil, err
	}

	info.Pages = content.PageCount
	info.Images = content.ImageCount
	info.Chars = content.CharCount
	info.Scanned = content.Scanned
	info.Valid = true
	for _, tables := range content.Tables {
		info.Tables += len(tables)
	}
	if info.Pages > 0 {
		info.CharsPerPage = float64(info.Chars) / float64(info.Pages)
	}

	if format == FormatPDF {
		if err := r.inspectPDF(path, info); err != nil {
			r.log.Debug().Err(err).Str("path", path).Msg("pdfcpu inspection failed")
			info.Valid = false
			info.ValidationError = err.Error()
		}
	}

	return info, nil
}

func countChars(pages []string) int {
	n := 0
	for _, p := range pages {
		n += utf8.RuneCountInString(strings.TrimSpace(p))
	}
	return n
}

// isScanned reports a PDF without extractable text, or one whose images
// come with fewer than scannedCharsPerPage characters per page.
func isScanned(c *Content) bool {
	if c.Format != FormatPDF {
		return false
	}
	if c.CharCount == 0 {
		return true
	}
	if c.ImageCount == 0 || c.PageCount == 0 {
		return false
	}
	return c.CharCount/c.PageCount < scannedCharsPerPage
}
