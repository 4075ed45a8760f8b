package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardVersion(t *testing.T) {
	t.Run("should report devel, when version is not stamped", func(t *testing.T) {
		assert.Equal(t, "devel", Standard{}.Version())
	})

	t.Run("should prefer stamped version, when built for release", func(t *testing.T) {
		prev := buildVersion
		buildVersion = "v0.3.0"

		t.Cleanup(func() { buildVersion = prev })

		assert.Equal(t, "v0.3.0", Standard{}.Version())
	})
}
