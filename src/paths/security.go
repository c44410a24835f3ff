package paths

import (
	"errors"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Asset path errors
var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrPathTooLong   = errors.New("path too long")
	ErrPathTraversal = errors.New("path traversal attempt")
)

// validAssetName allows letters, digits, hyphens and underscores with an
// optional extension
var validAssetName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*(\.[A-Za-z0-9]+)?$`)

// validateSegment checks a single path segment
func validateSegment(segment string) error {
	if segment == "." || segment == ".." {
		return ErrPathTraversal
	}
	if len(segment) > 64 {
		return ErrPathTooLong
	}
	if !validAssetName.MatchString(segment) {
		return ErrInvalidPath
	}
	return nil
}

// SafeAssetPath resolves a request path inside baseDir. It rejects
// traversal, overlong and oddly named segments.
func SafeAssetPath(baseDir, name string) (string, error) {
	if name == "" || len(name) > 512 {
		return "", ErrInvalidPath
	}
	if strings.Contains(name, "..") {
		return "", ErrPathTraversal
	}

	cleaned := strings.Trim(path.Clean("/"+name), "/")
	if cleaned == "" {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(cleaned, "/") {
		if err := validateSegment(seg); err != nil {
			return "", err
		}
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(filepath.Join(baseDir, filepath.FromSlash(cleaned)))
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}
	return absPath, nil
}
