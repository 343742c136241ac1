package domain

import "time"

// Provenance records where a snapshot's records came from.
type Provenance string

const (
	ProvenanceRemote         Provenance = "remote"
	ProvenanceStaticFallback Provenance = "static_fallback"
)

// Snapshot is a read-only, in-memory view of the catalog produced by one
// resolution. Callers must not modify Trips.
type Snapshot struct {
	Trips      []Trip     `json:"trips"`
	Provenance Provenance `json:"provenance"`
	ResolvedAt time.Time  `json:"resolved_at"`
}

// FromRemote reports whether the records came from the remote store.
func (s Snapshot) FromRemote() bool {
	return s.Provenance == ProvenanceRemote
}

// FilterAll is the facet value that disables filtering on that facet.
const FilterAll = "all"

// FilterSpec selects trips from a snapshot. All fields combine with AND.
// An empty Category or Difficulty behaves like FilterAll.
type FilterSpec struct {
	// Text is matched case-insensitively as a substring of title or location.
	Text       string
	Category   string
	Difficulty string
}

// Mutation is the outcome of an admin write. Simulated is true when no
// remote store is configured: the write was accepted but not persisted.
type Mutation[T any] struct {
	Record    T    `json:"record"`
	Simulated bool `json:"simulated"`
}
