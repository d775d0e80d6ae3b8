package tui

import (
	"strings"
	"testing"
)

func TestHistory_Navigation(t *testing.T) {
	h := NewHistory(10)
	h.Add("1")
	h.Add("3")
	h.Add("3") // consecutive duplicate collapsed
	h.Add("7")

	if got, ok := h.Older(); !ok || got != "7" {
		t.Errorf("expected newest entry, got %q", got)
	}
	if got, ok := h.Older(); !ok || got != "3" {
		t.Errorf("expected previous entry, got %q", got)
	}
	if got, ok := h.Older(); !ok || got != "1" {
		t.Errorf("expected oldest entry, got %q", got)
	}
	// Past the oldest entry the cursor stays put.
	if got, ok := h.Older(); !ok || got != "1" {
		t.Errorf("cursor should clamp at the oldest entry, got %q", got)
	}

	if got, ok := h.Newer(); !ok || got != "3" {
		t.Errorf("expected newer entry, got %q", got)
	}
	if got, ok := h.Newer(); !ok || got != "7" {
		t.Errorf("expected newest entry, got %q", got)
	}
	if _, ok := h.Newer(); ok {
		t.Error("past the newest entry the input line is fresh")
	}
}

func TestHistory_EmptyAndReset(t *testing.T) {
	h := NewHistory(10)
	if _, ok := h.Older(); ok {
		t.Error("empty history has nothing to recall")
	}

	h.Add("2")
	h.Older()
	h.Reset()
	if _, ok := h.Newer(); ok {
		t.Error("after reset the cursor is on the fresh line")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Add("1")
	h.Add("2")
	h.Add("3")

	if got, _ := h.Older(); got != "3" {
		t.Errorf("expected newest, got %q", got)
	}
	h.Older()
	if got, _ := h.Older(); got != "2" {
		t.Errorf("oldest entry should have been evicted, got %q", got)
	}
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"Location: Maintenance Bay", kindLocation},
		{"You see:", kindYouSee},
		{"Possible interactions:", kindYouSee},
		{"1. Move to another location", kindMenu},
		{"0. Cancel", kindMenu},
		{"-- Combat: Security Bot --", kindCombat},
		{"You deal 14 damage!", kindCombat},
		{"Security Bot deals 6 damage!", kindCombat},
		{"You defeated Security Bot!", kindCombat},
		{"Level Up! Now level 2", kindCombat},
		{"Invalid choice.", kindError},
		{"Error: damage cannot be negative", kindError},
		{"[trace] Effects: 1", kindTrace},
		{"[Goodbye.]", kindSystem},
		{"A sterile white room filled with repair equipment.", kindNarrative},
	}
	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	wrapped := wordWrap(text, 15)

	for i, line := range strings.Split(wrapped, "\n") {
		if len(line) > 15 {
			t.Errorf("line %d exceeds width: %q", i, line)
		}
	}
	if strings.Join(strings.Fields(wrapped), " ") != text {
		t.Errorf("wrapping lost words: %q", wrapped)
	}

	if got := wordWrap("short", 15); got != "short" {
		t.Errorf("short text should be untouched, got %q", got)
	}
	if got := wordWrap(text, 0); got != text {
		t.Errorf("zero width disables wrapping, got %q", got)
	}
}
