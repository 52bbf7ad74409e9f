package ui

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hermadata/console/internal/hermadata"
	"github.com/hermadata/console/internal/schema"
)

func TestErrorLine_ChipConflictNamesTheAnimal(t *testing.T) {
	err := &hermadata.APIError{
		StatusCode: 409,
		Code:       hermadata.CodeDuplicateChip,
		Message:    "duplicate chip",
		Content:    json.RawMessage(`{"animal_id": 42}`),
	}
	line := errorLine(err)
	if !strings.Contains(line, "#42") {
		t.Fatalf("errorLine = %q, want the conflicting animal id", line)
	}
}

func TestErrorLine_AuthFailure(t *testing.T) {
	err := &hermadata.APIError{StatusCode: 401}
	if line := errorLine(err); !strings.Contains(line, "log in") {
		t.Fatalf("errorLine = %q, want a re-login prompt", line)
	}
}

func TestErrorLine_ValidationErrorIsNotBlamedOnTheUser(t *testing.T) {
	err := schema.Errorf("total", "negative total")
	line := errorLine(err)
	if !strings.Contains(line, "backend") {
		t.Fatalf("errorLine = %q, want the backend blamed", line)
	}
}

func TestErrorLine_PlainErrorPassesThrough(t *testing.T) {
	if line := errorLine(errors.New("boom")); line != "boom" {
		t.Fatalf("errorLine = %q, want boom", line)
	}
}

func TestWindowLine(t *testing.T) {
	if got := windowLine(0, 0, 0); got != "  0 of 0" {
		t.Fatalf("empty window = %q", got)
	}
	if got := windowLine(20, 20, 57); got != "  21-40 of 57" {
		t.Fatalf("middle window = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	if got := truncate("a very long animal name", 10); len([]rune(got)) != 10 {
		t.Fatalf("truncate length = %d (%q), want 10", len([]rune(got)), got)
	}
}

func TestTruncate_CountsRunesNotBytes(t *testing.T) {
	got := truncate("Señorita Miàooo", 6)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if got != "Señor…" {
		t.Fatalf("truncate = %q, want Señor…", got)
	}
}

func TestThemes_LookupAndCycle(t *testing.T) {
	if GetTheme("shelter").Name != "shelter" {
		t.Fatal("shelter theme missing")
	}
	if GetTheme("nope").Name != themes[0].Name {
		t.Fatal("unknown theme should fall back to the first")
	}
	seen := map[string]bool{}
	name := themes[0].Name
	for range themes {
		seen[name] = true
		name = NextTheme(name).Name
	}
	if len(seen) != len(themes) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(themes))
	}
}
