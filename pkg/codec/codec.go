// Package codec converts snapshot values to and from their on-disk form.
//
// A Value is either text or binary. Binary values are stored verbatim. Text
// values are written with '\n' replaced by the platform's LineSeparator and
// read back with universal newline semantics, so "\r\n" and a lone '\r' both
// decode to '\n'.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedValueType = errors.New("snapfile: unsupported value type")
	ErrSerializerMismatch   = errors.New("snapfile: value is not supported by the snapshot serializer")
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindText   Kind = iota + 1 // text, newline-normalized
	KindBinary                 // raw bytes
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

type serializer struct {
	encode func(Value) []byte
	decode func([]byte) Value
}

//nolint:gochecknoglobals
var serializers = map[Kind]serializer{
	KindText: {
		encode: func(v Value) []byte { return []byte(strings.ReplaceAll(v.text, "\n", LineSeparator)) },
		decode: func(b []byte) Value { return Text(DecodeText(b)) },
	},
	KindBinary: {
		encode: func(v Value) []byte { return bytes.Clone(v.data) },
		decode: func(b []byte) Value { return Binary(bytes.Clone(b)) },
	},
}

// Value is a snapshot value. The zero Value is invalid.
type Value struct {
	text string
	data []byte
	kind Kind
}

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, text: s, data: nil} }

// Binary returns a binary Value.
func Binary(b []byte) Value {
	if b == nil {
		b = []byte{}
	}

	return Value{kind: KindBinary, text: "", data: b}
}

// Of converts v into a Value. Only string, []byte and Value are accepted,
// anything else results in ErrUnsupportedValueType.
func Of(v any) (Value, error) {
	switch v := v.(type) {
	case string:
		return Text(v), nil
	case []byte:
		return Binary(v), nil
	case Value:
		if _, ok := serializers[v.kind]; !ok {
			return Value{}, fmt.Errorf("%w: invalid value", ErrUnsupportedValueType)
		}

		return v, nil
	}

	return Value{}, fmt.Errorf("%w: value must be string or []byte, got %T", ErrUnsupportedValueType, v)
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// Text returns the content of a text value and a string view of a binary one.
func (v Value) Text() string {
	if v.kind == KindBinary {
		return string(v.data)
	}

	return v.text
}

// Bytes returns the content of a binary value and the UTF-8 bytes of a text one.
func (v Value) Bytes() []byte {
	if v.kind == KindText {
		return []byte(v.text)
	}

	return v.data
}

// Equal reports whether v and other hold the same variant and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	if v.kind == KindBinary {
		return bytes.Equal(v.data, other.data)
	}

	return v.text == other.text
}

// Encode returns the on-disk form of v.
//
// The result is decoded again and compared with v; if the round trip does not
// reproduce v, ErrSerializerMismatch is returned. This is what rejects text
// containing '\r'.
func (v Value) Encode() ([]byte, error) {
	s, ok := serializers[v.kind]
	if !ok {
		return nil, fmt.Errorf("%w: invalid value", ErrUnsupportedValueType)
	}

	encoded := s.encode(v)
	if !s.decode(encoded).Equal(v) {
		return nil, ErrSerializerMismatch
	}

	return encoded, nil
}

// Decode reads data written for a value of the given kind.
func Decode(kind Kind, data []byte) (Value, error) {
	s, ok := serializers[kind]
	if !ok {
		return Value{}, fmt.Errorf("%w: unknown kind %s", ErrUnsupportedValueType, kind)
	}

	return s.decode(data), nil
}

// DecodeText applies universal newline decoding to b.
func DecodeText(b []byte) string {
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
