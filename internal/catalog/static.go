// Package catalog resolves the authoritative list of trips served to every
// page. It merges a remote store with a static catalog compiled into the
// binary, and provides the read and filter operations the HTTP layer uses.
// Nothing in this package writes to the remote store.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// staticFS holds the curated fallback data, embedded at compile time so the
// site can always render something even without a reachable store.
//
//go:embed data/*.json
var staticFS embed.FS

// Static is the versioned fallback catalog bundled with the binary.
// It is immutable after LoadStatic returns.
type Static struct {
	trips        []domain.Trip
	testimonials []domain.Testimonial
}

// LoadStatic decodes the embedded catalog. It fails if any record is missing
// its id or slug, or if two trips share a slug.
func LoadStatic() (*Static, error) {
	var s Static
	if err := decodeEmbedded("data/trips.json", &s.trips); err != nil {
		return nil, err
	}
	if err := decodeEmbedded("data/testimonials.json", &s.testimonials); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(s.trips))
	for i, t := range s.trips {
		if t.ID == "" || t.Slug == "" {
			return nil, fmt.Errorf("catalog.LoadStatic: trip %d: id and slug are required", i)
		}
		if seen[t.Slug] {
			return nil, fmt.Errorf("catalog.LoadStatic: %w: %q", domain.ErrDuplicateSlug, t.Slug)
		}
		seen[t.Slug] = true
	}
	return &s, nil
}

// MustLoadStatic is LoadStatic for process start-up and tests; it panics if
// the embedded data is broken, which is a build defect.
func MustLoadStatic() *Static {
	s, err := LoadStatic()
	if err != nil {
		panic(err)
	}
	return s
}

// NewStatic builds a Static from explicit records. Tests use it to pin the
// fallback catalog to a known fixture.
func NewStatic(trips []domain.Trip, testimonials []domain.Testimonial) *Static {
	return &Static{
		trips:        append([]domain.Trip(nil), trips...),
		testimonials: append([]domain.Testimonial(nil), testimonials...),
	}
}

// Trips returns the static trips in bundle order. The returned slice is a
// fresh copy; callers may reorder it without affecting other readers.
func (s *Static) Trips() []domain.Trip {
	out := make([]domain.Trip, len(s.trips))
	copy(out, s.trips)
	return out
}

// Testimonials returns the static testimonials in bundle order.
func (s *Static) Testimonials() []domain.Testimonial {
	out := make([]domain.Testimonial, len(s.testimonials))
	copy(out, s.testimonials)
	return out
}

func decodeEmbedded(name string, v any) error {
	b, err := staticFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", name, err)
	}
	return nil
}
