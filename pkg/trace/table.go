// Package trace records and persists Cpu execution history:
// an in-memory, thread-safe instruction log exportable as JSON, and a
// gob-encoded snapshot of a running machine for save/resume.
package trace

import (
	"encoding/json"
	"io"
	"sync"
)

// Entry is one executed instruction: where it ran, what it
// disassembled to, how long it took, and the cumulative clock at the
// moment it finished.
type Entry struct {
	PC       uint16 `json:"pc"`
	Mnemonic string `json:"mnemonic"`
	TStates  int    `json:"tStates"`
	Clocks   uint64 `json:"clocks"`
}

// Table stores executed instructions. Safe for concurrent use so a
// single Table can back several goroutines' Cpu instances, mirroring
// the result table's concurrency contract.
type Table struct {
	mu      sync.Mutex
	entries []Entry
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Add appends one executed instruction to the table.
func (t *Table) Add(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

// Entries returns a copy of every recorded entry, in execution order.
func (t *Table) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of recorded entries.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// WriteJSON writes every recorded entry to w as a JSON array.
func (t *Table) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Entries())
}
