//go:build !windows

package codec

// LineSeparator is the platform's native line ending written for text snapshots.
const LineSeparator = "\n"
