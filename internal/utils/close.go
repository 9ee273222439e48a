package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs a warning when the close fails. It is meant
// for defer sites where a close error must not override the primary error
// already being returned by the surrounding function.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}
