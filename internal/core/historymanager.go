// Package core provides the runtime core tier of the state machine engine.
// History tracks the linear list of visited states and the redo stack fed by
// undo. Not safe for concurrent use; the owning machine serialises access.
package core

import (
	"github.com/comalice/undofsm/internal/primitives"
)

// History holds visited states and states removed by Undo.
// entries: consecutive duplicates suppressed by Record.
// removed: LIFO, top is the last element.
type History struct {
	entries []primitives.StateID
	removed []primitives.StateID
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Record appends state unless it equals the last entry. Reports whether it
// was appended.
func (h *History) Record(state primitives.StateID) bool {
	if last, ok := h.last(); ok && last == state {
		return false
	}
	h.entries = append(h.entries, state)
	return true
}

// Undo returns the entry preceding the last one. The last entry moves to
// the redo stack unless it already sits on top of it, in which case both
// lists are left untouched but prev is still returned.
func (h *History) Undo() (prev primitives.StateID, ok bool) {
	if !h.CanUndo() {
		return "", false
	}
	n := len(h.entries)
	prev, last := h.entries[n-2], h.entries[n-1]

	if top, has := h.top(); !has || top != last {
		h.removed = append(h.removed, last)
		h.entries = h.entries[:n-1]
	}
	return prev, true
}

// Redo pops the redo stack and appends the state to the entries without
// the duplicate check Record applies.
func (h *History) Redo() (primitives.StateID, bool) {
	top, ok := h.top()
	if !ok {
		return "", false
	}
	h.removed = h.removed[:len(h.removed)-1]
	h.entries = append(h.entries, top)
	return top, true
}

// Clear drops every entry. The redo stack is kept.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool {
	return len(h.entries) >= 2
}

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool {
	return len(h.removed) > 0
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []primitives.StateID {
	return append([]primitives.StateID(nil), h.entries...)
}

// Removed returns a copy of the redo stack, bottom first.
func (h *History) Removed() []primitives.StateID {
	return append([]primitives.StateID(nil), h.removed...)
}

func (h *History) last() (primitives.StateID, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) top() (primitives.StateID, bool) {
	if len(h.removed) == 0 {
		return "", false
	}
	return h.removed[len(h.removed)-1], true
}
