// Package intern deduplicates identifier strings into small stable
// integer IDs, the way the teacher's compiler deduplicates variable
// names into its NameConstants pool (compiler/ast_compiler.go,
// addNameConstant) — generalized here into its own reusable type since
// both the reader and the compiler need to intern symbols.
package intern

// ID is a small integer standing for a unique identifier string. Two
// IDs are equal iff the strings they were interned from are equal.
type ID uint32

// Interner owns the bidirectional mapping between strings and IDs for a
// single VM instance. An Interner is never shared across VMs (§5).
type Interner struct {
	strings []string
	ids     map[string]ID
}

// New creates an empty Interner.
func New() *Interner {
	return &Interner{ids: make(map[string]ID)}
}

// Intern returns the ID for s, assigning a fresh one if s has not been
// seen before.
func (in *Interner) Intern(s string) ID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := ID(len(in.strings))
	in.strings = append(in.strings, s)
	in.ids[s] = id
	return id
}

// Lookup returns the string an ID was interned from, and whether the ID
// is valid for this Interner.
func (in *Interner) Lookup(id ID) (string, bool) {
	if int(id) < 0 || int(id) >= len(in.strings) {
		return "", false
	}
	return in.strings[id], true
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	return len(in.strings)
}
