// Package logging builds the leveled stderr logger used by the commands.
package logging

import (
	"io"
	"strings"

	"github.com/op/go-logging"
)

const defaultFormat = "%{color}%{time:15:04:05.000} %{level:-7s}%{color:reset} %{message}"

// New returns a logger writing to out at the given level name (DEBUG, INFO,
// NOTICE, WARNING, ERROR, CRITICAL). Unknown names fall back to WARNING.
func New(out io.Writer, level string) *logging.Logger {
	backend := logging.NewLogBackend(out, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultFormat))

	lvl, err := logging.LogLevel(strings.ToUpper(strings.TrimSpace(level)))
	if err != nil {
		lvl = logging.WARNING
	}
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")

	logging.SetBackend(leveled)
	return logging.MustGetLogger("colstat")
}
