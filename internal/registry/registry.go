// Package registry manages the metadata scopes a WAVE file can be walked
// through.
package registry

import (
	"cmp"
	"slices"

	"github.com/simonhull/wavmeta/internal/riff"
	"github.com/simonhull/wavmeta/internal/types"
)

// Encodings selects the character encoding of each family of text
// fields.
type Encodings struct {
	Info string // LIST/INFO entries
	Bext string // bext text fields and coding history
	Cue  string // labl, note and ltxt text
}

// Reader reads the fields of one scope from a parsed file.
// It returns no fields and a nil error when the scope's chunks are absent.
type Reader func(c *riff.Container, enc Encodings) ([]types.Field, error)

// Scope is a named family of fields.
type Scope struct {
	Read Reader
	Name string

	// Rank orders scopes when walking; lower ranks come first.
	Rank int
}

// scopes maps scope names to their readers.
var scopes = make(map[string]Scope)

// Register registers a scope.
// This is called by decoder packages during initialization (init functions).
// Registering a name twice replaces the earlier scope.
func Register(s Scope) {
	scopes[s.Name] = s
}

// Get returns the scope registered under name.
func Get(name string) (Scope, bool) {
	s, ok := scopes[name]
	return s, ok
}

// All returns every registered scope ordered by rank, then name.
func All() []Scope {
	out := make([]Scope, 0, len(scopes))
	for _, s := range scopes {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Scope) int {
		if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
