package common

import (
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	})
}
