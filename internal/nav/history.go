// Package nav keeps the in-process location history that stands in for a browser's
// address bar: the TUI pushes and walks it, the list controller only replaces.
package nav

import "strings"

// History is a cursor over visited locations. The zero value is empty and usable.
type History struct {
	entries []string
	cursor  int
	// replaces counts Replace calls that changed the current entry.
	replaces int
}

func New(initial string) *History {
	h := &History{}
	h.Push(initial)
	return h
}

// Current returns the location under the cursor ("" when empty).
func (h *History) Current() string {
	if h == nil || len(h.entries) == 0 {
		return ""
	}
	return h.entries[h.cursor]
}

// Push records a navigation to loc, dropping any forward entries.
// Pushing the current location again is a no-op.
func (h *History) Push(loc string) {
	loc = strings.TrimSpace(loc)
	if len(h.entries) > 0 {
		if h.entries[h.cursor] == loc {
			return
		}
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, loc)
	h.cursor = len(h.entries) - 1
}

// Replace overwrites the current entry without creating a new one.
func (h *History) Replace(loc string) {
	loc = strings.TrimSpace(loc)
	if len(h.entries) == 0 {
		h.entries = []string{loc}
		h.cursor = 0
		h.replaces++
		return
	}
	if h.entries[h.cursor] == loc {
		return
	}
	h.entries[h.cursor] = loc
	h.replaces++
}

// ReplaceNearest replaces the closest entry at or before the cursor for which match
// returns true. It reports false when no entry matches.
func (h *History) ReplaceNearest(match func(string) bool, loc string) bool {
	loc = strings.TrimSpace(loc)
	for i := h.cursor; i >= 0 && i < len(h.entries); i-- {
		if !match(h.entries[i]) {
			continue
		}
		if h.entries[i] != loc {
			h.entries[i] = loc
			h.replaces++
		}
		return true
	}
	return false
}

func (h *History) CanBack() bool    { return h != nil && h.cursor > 0 }
func (h *History) CanForward() bool { return h != nil && h.cursor < len(h.entries)-1 }

// Back moves the cursor one entry back.
func (h *History) Back() (string, bool) {
	if !h.CanBack() {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor one entry forward.
func (h *History) Forward() (string, bool) {
	if !h.CanForward() {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Replacements is the number of effective Replace calls so far.
func (h *History) Replacements() int { return h.replaces }

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
