package main

import "strings"

// Dictionary maps case-normalised word names to compiled Routines. Grounded
// on the source's dictionary.rs (a HashMap<String, Vec<Cell>>, lookup via
// name.to_lowercase(), Unimplemented on a miss).
//
// Invariants (spec.md §3 invariant 3, §8): names are stored under their
// original spelling but looked up by lowercased key; Add unconditionally
// replaces any prior entry under that name (last add wins, spec.md §1).
type Dictionary struct {
	entries map[string]dictEntry
}

type dictEntry struct {
	name    string
	routine Routine
}

// NewDictionary returns an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string]dictEntry)}
}

// Add installs routine under name, replacing any prior entry. The original
// spelling of name is retained for display (e.g. dumper.go); lookup is
// always by lowercased key.
func (d *Dictionary) Add(name string, routine Routine) {
	d.entries[strings.ToLower(name)] = dictEntry{name: name, routine: routine}
}

// Get returns a clone of the Routine installed under name (case
// insensitive), or UnimplementedError(name) if no such word exists.
func (d *Dictionary) Get(name string) (Routine, error) {
	e, ok := d.entries[strings.ToLower(name)]
	if !ok {
		return nil, UnimplementedError{Name: name}
	}
	return e.routine.Clone(), nil
}

// Has reports whether name is bound, without cloning its Routine.
func (d *Dictionary) Has(name string) bool {
	_, ok := d.entries[strings.ToLower(name)]
	return ok
}

// Names returns every bound name in its originally-added spelling, sorted
// is left to callers (dumper.go) that need a stable order.
func (d *Dictionary) Names() []string {
	names := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		names = append(names, e.name)
	}
	return names
}
