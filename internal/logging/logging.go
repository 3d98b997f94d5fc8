// Package logging builds level-filtered loggers. Messages carry their
// level as a bracketed tag, e.g. log.Printf("[WARN] ...").
package logging

import (
	"io"
	"log"
	"strings"

	"github.com/hashicorp/logutils"
)

// Levels are the known tags, lowest first.
var Levels = []logutils.LogLevel{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

// DefaultLevel is used when no or an unknown level is configured.
const DefaultLevel = "WARN"

// ParseLevel normalises a configured level name.
func ParseLevel(s string) logutils.LogLevel {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, l := range Levels {
		if string(l) == s {
			return l
		}
	}
	return logutils.LogLevel(DefaultLevel)
}

// New returns a logger writing to w that drops messages below level.
// Untagged messages always pass.
func New(w io.Writer, level string) *log.Logger {
	filter := &logutils.LevelFilter{
		Levels:   Levels,
		MinLevel: ParseLevel(level),
		Writer:   w,
	}
	// The prefix must not contain brackets, the filter reads the first
	// bracketed word of a line as its level.
	return log.New(filter, "studynotes: ", log.LstdFlags)
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
