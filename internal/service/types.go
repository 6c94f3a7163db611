package service

import "github.com/a3tai/mcp-fer-extract/internal/extract"

// FileRequest names a document inside the configured directory. Relative
// paths are resolved against that directory.
type FileRequest struct {
	Path string `json:"path"`
}

// FERResult is the parse of a First Examination Report.
type FERResult struct {
	Path    string `json:"path"`
	Profile string `json:"profile"`
	Scanned bool   `json:"scanned"`
	extract.ParseResult
}

// FormalRequirementsResult holds the PART-III rows of a FER.
type FormalRequirementsResult struct {
	Path    string              `json:"path"`
	Profile string              `json:"profile"`
	Scanned bool                `json:"scanned"`
	Rows    []extract.FormalRow `json:"rows"`
}

// ClaimsResult holds the numbered claims of an amended claims document.
type ClaimsResult struct {
	Path    string               `json:"path"`
	Profile string               `json:"profile"`
	Scanned bool                 `json:"scanned"`
	Scope   string               `json:"scope"`
	Count   int                  `json:"count"`
	Claims  []extract.ClaimBlock `json:"claims"`
}

// PriorArtResult holds the abstract recovered from a cited document.
type PriorArtResult struct {
	Path     string `json:"path"`
	Profile  string `json:"profile"`
	Abstract string `json:"abstract"`
	Words    int    `json:"words"`
}

// CoverSheetResult holds the fields resolved from a Complete Specification.
type CoverSheetResult struct {
	Path    string `json:"path"`
	Profile string `json:"profile"`
	Scanned bool   `json:"scanned"`
	extract.CoverSheet
}

// FileInfo represents a document found in the configured directory.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ToolInfo describes one MCP tool for the server-info listing.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}

// ServerInfoResult reports the server configuration, its tools and the
// documents available to them.
type ServerInfoResult struct {
	ServerName          string     `json:"server_name"`
	Version             string     `json:"version"`
	Directory           string     `json:"directory"`
	MaxFileSize         int64      `json:"max_file_size"`
	Profile             string     `json:"profile"`
	Profiles            []string   `json:"profiles"`
	CacheTTL            string     `json:"cache_ttl"`
	CachedItems         int        `json:"cached_items"`
	SupportedExtensions []string   `json:"supported_extensions"`
	AvailableTools      []ToolInfo `json:"available_tools"`
	Documents           []FileInfo `json:"documents"`
	Truncated           bool       `json:"truncated"`
	UsageGuidance       string     `json:"usage_guidance"`
}
