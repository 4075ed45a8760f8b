// Package snaptree maps nested value trees onto snapshot directories.
//
// A tree is a nested mapping: a nested mapping is a subdirectory, any other
// value is the content of a file. Flatten turns a tree into a flat mapping of
// slash-separated relative paths, Scan lists the files already present in a
// snapshot directory in the same form.
package snaptree

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"go.inout.gg/snapfile/pkg/pathsafe"
)

var ErrNotAMapping = errors.New("snapfile: value tree must be a mapping")

// Dir is a directory in a value tree.
type Dir = map[string]any

// Flatten returns the flat representation of tree, keyed by slash-separated
// relative paths.
//
// Subtrees without leaves produce no entries. Every key must be a valid file
// name, otherwise an error wrapping pathsafe.ErrInvalidName and naming the
// key's position in the tree is returned.
func Flatten(tree any) (map[string]any, error) {
	m, ok := asMapping(tree)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", ErrNotAMapping, tree)
	}

	result := make(map[string]any)
	if err := flatten(m, result, nil); err != nil {
		return nil, err
	}

	return result, nil
}

func flatten(m map[string]any, result map[string]any, prefix []string) error {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if !pathsafe.ValidFilename(k) {
			return fmt.Errorf(
				"%w: key %s in tree%s must be a valid file name",
				pathsafe.ErrInvalidName,
				strconv.Quote(k),
				position(prefix),
			)
		}

		prefix = append(prefix, k)

		if sub, ok := asMapping(m[k]); ok {
			if err := flatten(sub, result, prefix); err != nil {
				return err
			}
		} else {
			result[strings.Join(prefix, "/")] = m[k]
		}

		prefix = prefix[:len(prefix)-1]
	}

	return nil
}

// position renders keys as an index expression, e.g. ["a"]["b"].
func position(keys []string) string {
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString("[")
		sb.WriteString(strconv.Quote(k))
		sb.WriteString("]")
	}

	return sb.String()
}

// asMapping reports whether v is a map with string keys and returns its
// entries.
func asMapping(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	m := make(map[string]any, rv.Len())
	for iter := rv.MapRange(); iter.Next(); {
		m[iter.Key().String()] = iter.Value().Interface()
	}

	return m, true
}

// Scan returns the slash-separated paths, relative to dir, of every file
// below dir in sorted order.
func Scan(fs afero.Fs, dir string) ([]string, error) {
	var files []string

	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			//nolint:wrapcheck
			return err
		}

		files = append(files, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapfile: failed to scan snapshot directory %s: %w", dir, err)
	}

	slices.Sort(files)

	return files, nil
}
