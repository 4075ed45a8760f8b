package codec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/snapfile/pkg/codec"
)

func allBytes() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}

	return b
}

func unicodeText() string {
	var sb strings.Builder

	for i := range 10000 {
		if i == '\r' {
			continue
		}

		sb.WriteRune(rune(i))
	}

	return sb.String()
}

func TestOf(t *testing.T) {
	t.Parallel()

	t.Run("should return text value, when given string", func(t *testing.T) {
		t.Parallel()

		v, err := codec.Of("abc")

		require.NoError(t, err)
		assert.Equal(t, codec.KindText, v.Kind())
		assert.Equal(t, "abc", v.Text())
	})

	t.Run("should return binary value, when given bytes", func(t *testing.T) {
		t.Parallel()

		v, err := codec.Of([]byte{0, 1})

		require.NoError(t, err)
		assert.Equal(t, codec.KindBinary, v.Kind())
		assert.Equal(t, []byte{0, 1}, v.Bytes())
	})

	t.Run("should return error, when given unsupported type", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Of(123)

		require.ErrorIs(t, err, codec.ErrUnsupportedValueType)
		assert.ErrorContains(t, err, "value must be string or []byte, got int")
	})

	t.Run("should return error, when given zero Value", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Of(codec.Value{})

		require.ErrorIs(t, err, codec.ErrUnsupportedValueType)
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("should round trip, when value is supported", func(t *testing.T) {
		t.Parallel()

		values := map[string]codec.Value{
			"empty-bytes":  codec.Binary(nil),
			"empty-string": codec.Text(""),
			"all-bytes":    codec.Binary(allBytes()),
			"unicode":      codec.Text(unicodeText()),
			"whitespace":   codec.Text("  \n \t \n  Whitespace!   \n\t  Whitespace!  \n  \t \n  "),
		}

		for name, v := range values {
			encoded, err := v.Encode()
			require.NoError(t, err, name)

			decoded, err := codec.Decode(v.Kind(), encoded)
			require.NoError(t, err, name)
			assert.True(t, decoded.Equal(v), name)
		}
	})

	t.Run("should write platform line separator, when value is text", func(t *testing.T) {
		t.Parallel()

		encoded, err := codec.Text("a\nb\n").Encode()

		require.NoError(t, err)
		assert.Equal(t, []byte("a"+codec.LineSeparator+"b"+codec.LineSeparator), encoded)
	})

	t.Run("should keep bytes verbatim, when value is binary", func(t *testing.T) {
		t.Parallel()

		encoded, err := codec.Binary([]byte("a\r\nb\r")).Encode()

		require.NoError(t, err)
		assert.Equal(t, []byte("a\r\nb\r"), encoded)
	})

	t.Run("should return serializer mismatch, when text contains carriage return", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"\r", "a\rb", "a\r\nb"} {
			_, err := codec.Text(s).Encode()
			require.ErrorIs(t, err, codec.ErrSerializerMismatch, "input %q", s)
		}
	})
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb\nc\n", codec.DecodeText([]byte("a\r\nb\rc\n")))
	assert.Equal(t, "\n", codec.DecodeText([]byte("\r")))
	assert.Empty(t, codec.DecodeText(nil))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, codec.Text("x").Equal(codec.Text("x")))
	assert.False(t, codec.Text("x").Equal(codec.Text("y")))
	assert.False(t, codec.Text("x").Equal(codec.Binary([]byte("x"))))
	assert.True(t, codec.Binary(nil).Equal(codec.Binary([]byte{})))
}
