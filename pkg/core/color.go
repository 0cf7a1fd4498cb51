package core

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the colors assigned to sources. Mirrors the basic ANSI
// colors so the prefixes stay readable on both dark and light terminals.
var palette = []lipgloss.Color{
	lipgloss.Color("9"),  // red
	lipgloss.Color("1"),  // dark red
	lipgloss.Color("10"), // green
	lipgloss.Color("2"),  // dark green
	lipgloss.Color("11"), // yellow
	lipgloss.Color("3"),  // dark yellow
	lipgloss.Color("12"), // blue
	lipgloss.Color("4"),  // dark blue
	lipgloss.Color("13"), // magenta
	lipgloss.Color("5"),  // dark magenta
	lipgloss.Color("14"), // cyan
	lipgloss.Color("6"),  // dark cyan
}

// ColorFor returns the display color for a source key. The mapping is a
// pure function of the key, so a source keeps its color for the lifetime
// of the process and across runs.
func ColorFor(key string) lipgloss.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return palette[h.Sum32()%uint32(len(palette))]
}
