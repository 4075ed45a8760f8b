package snapfilecli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/snapfile/pkg/snaptree"
)

func TestDecodeTree(t *testing.T) {
	t.Parallel()

	t.Run("should decode nested mappings, when document is a tree", func(t *testing.T) {
		t.Parallel()

		tree, err := DecodeTree([]byte(treeDocument))

		require.NoError(t, err)
		assert.Equal(t, snaptree.Dir{
			"readme.txt": "line 1\nline 2\n",
			"config": snaptree.Dir{
				"count":   "3",
				"enabled": "true",
			},
			"blob.bin": []byte("hello"),
		}, tree)
	})

	t.Run("should follow aliases, when document reuses nodes", func(t *testing.T) {
		t.Parallel()

		tree, err := DecodeTree([]byte("a: &v value\nb: *v\nc: ~\n"))

		require.NoError(t, err)
		assert.Equal(t, snaptree.Dir{"a": "value", "b": "value", "c": ""}, tree)
	})

	t.Run("should return empty tree, when document is empty", func(t *testing.T) {
		t.Parallel()

		for _, doc := range []string{"", "\n", "~\n"} {
			tree, err := DecodeTree([]byte(doc))

			require.NoError(t, err)
			assert.Empty(t, tree)
		}
	})

	t.Run("should return invalid tree, when document is malformed", func(t *testing.T) {
		t.Parallel()

		for _, doc := range []string{
			"just a string\n",
			"a: [1, 2]\n",
			"a: 1\na: 2\n",
			"[a]: 1\n",
			"a: !!binary not*base64\n",
			"a: {\n",
		} {
			_, err := DecodeTree([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidTree, "document %q", doc)
		}
	})
}
