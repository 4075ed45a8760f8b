package testutil

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"go.inout.gg/snapfile/pkg/snaptree"
)

// SnapshotFS renders every file below dir, in path order, and matches the
// result against a go-snaps snapshot.
func SnapshotFS(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()

	var b bytes.Buffer

	files, err := snaptree.Scan(fs, dir)
	require.NoError(t, err)

	for _, name := range files {
		content, err := afero.ReadFile(fs, filepath.Join(dir, filepath.FromSlash(name)))
		require.NoError(t, err)

		b.WriteString("### ")
		b.WriteString(name)
		b.WriteString(" ###\n")
		b.Write(content)
		b.WriteString("\n")
	}

	snaps.MatchSnapshot(t, b.String())
}
