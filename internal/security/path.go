// Package security confines document paths to the configured directory.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrOutsideDirectory    = errors.New("path is outside configured directory")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
)

// PathValidator provides security validation for file paths
type PathValidator struct {
	configuredDirectory string
	extensions          map[string]bool
}

// NewPathValidator creates a validator for configuredDirectory accepting
// only the given extensions (case-insensitive, with leading dot). With no
// extensions every file type is accepted.
func NewPathValidator(configuredDirectory string, extensions ...string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	return &PathValidator{
		configuredDirectory: configuredDirectory,
		extensions:          allowed,
	}, nil
}

// Directory returns the configured directory path
func (v *PathValidator) Directory() string {
	return v.configuredDirectory
}

// AllowedExtensions returns the accepted extensions in sorted order.
func (v *PathValidator) AllowedExtensions() []string {
	exts := make([]string, 0, len(v.extensions))
	for ext := range v.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Resolve sanitizes path, resolves it against the configured directory when
// relative, and returns the absolute path once it is confined to the
// directory and carries an allowed extension.
func (v *PathValidator) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.configuredDirectory, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := v.ValidatePath(absPath); err != nil {
		return "", err
	}

	return absPath, nil
}

// ValidatePath checks that path lies within the configured directory and
// has an allowed extension.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if len(v.extensions) > 0 && !v.extensions[strings.ToLower(filepath.Ext(path))] {
		return fmt.Errorf("%w: %q (allowed: %s)",
			ErrExtensionNotAllowed, filepath.Ext(path), strings.Join(v.AllowedExtensions(), ", "))
	}

	isWithin, err := v.IsPathWithinDirectory(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}

	if !isWithin {
		return fmt.Errorf("%w: %s", ErrOutsideDirectory, path)
	}

	return nil
}

// IsPathWithinDirectory checks if a path is within the configured directory.
// Symlinks in either path are resolved so a link cannot escape the directory.
func (v *PathValidator) IsPathWithinDirectory(path string) (bool, error) {
	if _, err := os.Stat(v.configuredDirectory); err != nil {
		return false, fmt.Errorf("configured directory unavailable: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	absConfigDir, err := filepath.Abs(v.configuredDirectory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absConfigDir)

	realPath := cleanPath
	if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
		realPath = resolved
	}

	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	pathOk := within(cleanPath, cleanDir) || within(cleanPath, realDir)
	realPathOk := within(realPath, cleanDir) || within(realPath, realDir)

	return pathOk && realPathOk, nil
}

func within(path, dir string) bool {
	if path == dir {
		return true
	}
	dirWithSep := dir
	if !strings.HasSuffix(dirWithSep, string(filepath.Separator)) {
		dirWithSep += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dirWithSep)
}
