package commands

import (
	"io"

	"github.com/charmbracelet/log"

	"todosync/internal/config"
)

// newLogger builds the per-invocation logger. Warnings always show; --debug
// raises the level so parser and reconciler details appear too.
func newLogger(errOut io.Writer, cfg *config.Config) *log.Logger {
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(errOut, log.Options{Level: level})
}
