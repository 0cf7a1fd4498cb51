package core

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"newline and tab", "a\nb\tc", "a b c"},
		{"carriage return", "line\r", "line "},
		{"ansi color", "\x1b[31mred\x1b[0m text", "red text"},
		{"ansi with tabs", "\x1b[1;32mok\x1b[0m\tdone", "ok done"},
		{"cursor movement", "\x1b[2Jcleared", "cleared"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"a\nb\tc\x1b[31mred\x1b[0m",
		"\x1b[2J\x1b[H\ttabbed",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitizeRemovesControlCharacters(t *testing.T) {
	got := Sanitize("a\x01b\x1b[5mc\x7fd")
	for _, r := range got {
		if r < 0x20 || r == 0x7f {
			t.Fatalf("control character %q left in %q", r, got)
		}
	}
}
