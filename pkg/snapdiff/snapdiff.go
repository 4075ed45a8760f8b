// Package snapdiff renders human-readable differences between a tested value
// and the value stored in a snapshot.
package snapdiff

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"

	"go.inout.gg/snapfile/pkg/codec"
)

// OrderEnv is the environment variable consulted by DefaultOrder.
const OrderEnv = "SNAPFILE_DIFF_ORDER"

// Order controls which operand appears first in a diff.
//
// It only affects how a mismatch is presented, never whether values match.
type Order string

const (
	ValueFirst    Order = "value-first"    // tested value on the left, snapshot on the right
	ExpectedFirst Order = "expected-first" // snapshot on the left, tested value on the right
)

var ErrUnknownOrder = errors.New("snapfile: unknown diff order")

// FromString converts s to an Order. It returns ErrUnknownOrder for invalid inputs.
func FromString(s string) (Order, error) {
	switch s {
	case string(ValueFirst):
		return ValueFirst, nil
	case string(ExpectedFirst):
		return ExpectedFirst, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// DefaultOrder selects the order at runtime from OrderEnv, falling back to
// ValueFirst when it is unset or invalid.
func DefaultOrder() Order {
	if o, err := FromString(os.Getenv(OrderEnv)); err == nil {
		return o
	}

	return ValueFirst
}

// Diff describes how value differs from expected, the decoded snapshot
// content. Text is rendered as a unified diff, binary content through cmp.
func Diff(value, expected codec.Value, order Order) string {
	left, right := value, expected
	leftName, rightName := "value", "snapshot"

	if order == ExpectedFirst {
		left, right = right, left
		leftName, rightName = rightName, leftName
	}

	if value.Kind() == codec.KindText && expected.Kind() == codec.KindText {
		return textDiff(left.Text(), right.Text(), leftName, rightName)
	}

	return fmt.Sprintf("--- %s\n+++ %s\n%s", leftName, rightName, cmp.Diff(left.Bytes(), right.Bytes()))
}

func textDiff(a, b, aName, bName string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: aName,
		FromDate: "",
		ToFile:   bName,
		ToDate:   "",
		Eol:      "",
		Context:  3,
	})
	if err != nil {
		// Writes go to an in-memory buffer.
		return fmt.Sprintf("- %q\n+ %q\n", a, b)
	}

	if diff == "" {
		// The values differ only in ways the line diff cannot show,
		// e.g. a trailing newline on the last line.
		return fmt.Sprintf("--- %s\n+++ %s\n- %q\n+ %q\n", aName, bName, a, b)
	}

	return diff
}
