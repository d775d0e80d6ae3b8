// Package tui provides a Bubble Tea terminal UI for the Space Dystopia game.
package tui

// History keeps recent input lines for Up/Down recall at the prompt.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = at the fresh input line
}

// NewHistory creates a history buffer holding at most max entries.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Add records an input line. Consecutive duplicates are collapsed.
func (h *History) Add(line string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Older moves the cursor toward older entries and returns the entry there.
// Returns ("", false) when the history is empty.
func (h *History) Older() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Newer moves the cursor toward newer entries. Returns ("", false) once the
// cursor passes the most recent entry, meaning the input line is fresh again.
func (h *History) Newer() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// Reset returns the cursor to the fresh input line.
func (h *History) Reset() {
	h.cursor = -1
}
