package validators

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeStringTrims(t *testing.T) {
	if got := SanitizeString("  Ahmad Fauzi \n", 0); got != "Ahmad Fauzi" {
		t.Fatalf("expected trimmed value got %q", got)
	}
}

func TestSanitizeStringCapsByRunes(t *testing.T) {
	input := strings.Repeat("é", 10)
	got := SanitizeString(input, 4)
	if got != "éééé" {
		t.Fatalf("expected four runes got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid utf-8: %q", got)
	}
}

func TestSanitizeStringKeepsMultibyteIntact(t *testing.T) {
	// The limit lands in the middle of the arabic phrase; the cut must not
	// split a codepoint.
	input := "Jazakallahu khairan جزاك الله خيرا"
	got := SanitizeString(input, 22)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid utf-8: %q", got)
	}
	if runeCount := len([]rune(got)); runeCount > 22 {
		t.Fatalf("expected at most 22 runes got %d", runeCount)
	}
}

func TestSanitizeStringUnderLimitUnchanged(t *testing.T) {
	if got := SanitizeString("Bismillah", 100); got != "Bismillah" {
		t.Fatalf("expected unchanged value got %q", got)
	}
}
