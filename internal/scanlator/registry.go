package scanlator

import (
	"log/slog"
	"sort"

	"manga_tracker/internal/page"
)

// Constructor builds an adapter bound to one live page.
type Constructor func(p page.Page, logger *slog.Logger) Scanlator

// registry maps stable adapter identifiers to constructors. Identifiers are
// stored alongside source mappings and must never change for a site even if
// its display name does. Entries are added from init funcs in each adapter
// file, so the set is fixed at startup.
var registry = map[string]Constructor{}

// Register adds an adapter constructor under the given identifier. It panics
// on a duplicate identifier since that is a programming error.
func Register(id string, ctor Constructor) {
	if _, dup := registry[id]; dup {
		panic("scanlator: duplicate adapter id " + id)
	}
	registry[id] = ctor
}

// Resolve looks up an adapter constructor by identifier.
func Resolve(id string) (Constructor, bool) {
	ctor, ok := registry[id]
	return ctor, ok
}

// Registry is the resolver view over the package-level adapter table, for
// callers that take the lookup as a dependency.
type Registry struct{}

func DefaultRegistry() Registry { return Registry{} }

func (Registry) Resolve(id string) (Constructor, bool) { return Resolve(id) }

// IDs lists the registered adapter identifiers, sorted.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
