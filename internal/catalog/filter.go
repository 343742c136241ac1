package catalog

import (
	"strings"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// Filter returns the trips that match spec, in their original relative order.
// It does no I/O and never fails: an empty input yields an empty, non-nil
// result. Text is trimmed first; blank text matches every trip.
func Filter(trips []domain.Trip, spec domain.FilterSpec) []domain.Trip {
	text := strings.ToLower(strings.TrimSpace(spec.Text))
	category := facet(spec.Category)
	difficulty := facet(spec.Difficulty)

	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if text != "" &&
			!strings.Contains(strings.ToLower(t.Title), text) &&
			!strings.Contains(strings.ToLower(t.Location), text) {
			continue
		}
		if category != "" && string(t.Category) != category {
			continue
		}
		if difficulty != "" && string(t.Difficulty) != difficulty {
			continue
		}
		out = append(out, t)
	}
	return out
}

// facet normalises a facet value; "" means no filtering on that facet.
func facet(v string) string {
	v = strings.TrimSpace(v)
	if v == domain.FilterAll {
		return ""
	}
	return v
}
