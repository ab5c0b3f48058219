package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanName(t *testing.T) {
	if got := cleanName("  Alice  "); got != "Alice" {
		t.Errorf("expected Alice, got %q", got)
	}
	if got := cleanName("   "); got != "" {
		t.Errorf("whitespace-only name should clean to empty, got %q", got)
	}
	if got := cleanName(strings.Repeat("x", 40)); len(got) != maxNameLen {
		t.Errorf("expected %d chars, got %d", maxNameLen, len(got))
	}
}

func TestCleanNameMultiByte(t *testing.T) {
	name := cleanName(strings.Repeat("é", maxNameLen+4))
	if !utf8.ValidString(name) {
		t.Fatalf("truncated name is not valid UTF-8: %q", name)
	}
	if utf8.RuneCountInString(name) != maxNameLen {
		t.Errorf("expected %d runes, got %d", maxNameLen, utf8.RuneCountInString(name))
	}

	// A short multi-byte name passes through untouched
	if got := cleanName("Amélie"); got != "Amélie" {
		t.Errorf("expected Amélie, got %q", got)
	}
}
