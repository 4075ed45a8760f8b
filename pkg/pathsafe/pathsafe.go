// Package pathsafe keeps snapshot paths inside the snapshot directory.
//
// The checks catch accidental path traversal and invalid file names; they do
// not resolve symlinks and are not a security boundary.
package pathsafe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// IllegalFilenameChars lists characters that are never accepted in a
// snapshot file name.
const IllegalFilenameChars = `\/:*?"<>|`

var (
	ErrPathEscape  = errors.New("snapfile: snapshot path escapes the snapshot directory")
	ErrInvalidName = errors.New("snapfile: invalid file name")
)

// Resolve returns the absolute path of the snapshot name within root.
//
// A relative name is joined to root, an absolute name is used as is. Either
// way the result must be a strict descendant of root, otherwise ErrPathEscape
// is returned.
func Resolve(root, name string) (string, error) {
	root = filepath.Clean(root)

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	path = filepath.Clean(path)

	if !IsDescendant(root, path) {
		return "", fmt.Errorf("%w: snapshot path %s is not in %s", ErrPathEscape, Shorten(path), Shorten(root))
	}

	return path, nil
}

// IsDescendant reports whether path lies strictly below root.
// Both paths are expected to be clean and absolute.
func IsDescendant(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	return !filepath.IsAbs(rel)
}

// ValidFilename returns false if s is definitely a path traversal or not a
// valid file name, and true if it might be a valid one.
func ValidFilename(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}

	return !strings.ContainsAny(s, IllegalFilenameChars)
}

// SanitizeFilename converts s into a string usable as a clean file name.
//
// Surrounding whitespace is trimmed, inner spaces become underscores and
// everything except letters, digits, '-', '_' and '.' is dropped. Results
// that would be unusable are replaced with "empty", "dot" or "dotdot".
func SanitizeFilename(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	s = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return -1
	}, s)

	switch s {
	case "":
		return "empty"
	case ".":
		return "dot"
	case "..":
		return "dotdot"
	}

	return s
}

// Shorten returns path relative to the current working directory when it
// lies under it. Otherwise path is returned unchanged.
func Shorten(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	if !filepath.IsAbs(path) || !IsDescendant(cwd, filepath.Clean(path)) {
		return path
	}

	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return rel
}
