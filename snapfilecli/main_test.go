package snapfilecli

import (
	"log/slog"
	"testing"

	"go.uber.org/goleak"
)

//nolint:gochecknoglobals
var logger = slog.New(slog.DiscardHandler)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
