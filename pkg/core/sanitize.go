package core

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize strips terminal escape sequences from a log line and replaces
// remaining control characters (newline, tab, carriage return, ...) with
// spaces. Sanitizing an already-sanitized line is a no-op.
func Sanitize(line string) string {
	stripped := ansi.Strip(line)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, stripped)
}
