package catalog_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/abhitrip/trip-catalog/internal/catalog"
	"github.com/abhitrip/trip-catalog/internal/domain"
)

// mockGateway is a test double for catalog.Gateway.
type mockGateway struct {
	fetchAll func(ctx context.Context) ([]domain.Trip, error)
	calls    int
}

func (m *mockGateway) FetchAll(ctx context.Context) ([]domain.Trip, error) {
	m.calls++
	return m.fetchAll(ctx)
}

// compile-time check: mockGateway must satisfy catalog.Gateway.
var _ catalog.Gateway = (*mockGateway)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func unavailable() *mockGateway {
	return &mockGateway{fetchAll: func(context.Context) ([]domain.Trip, error) {
		return nil, domain.ErrUnavailable
	}}
}

func returning(trips ...domain.Trip) *mockGateway {
	return &mockGateway{fetchAll: func(context.Context) ([]domain.Trip, error) {
		return trips, nil
	}}
}

// scenarioTrips is the two-record static catalog used across the package.
func scenarioTrips() []domain.Trip {
	return []domain.Trip{
		{
			ID:         "static-1",
			Slug:       "nandi-hills",
			Category:   domain.CategoryOneDay,
			Difficulty: domain.DifficultyEasy,
			Title:      "Nandi Hills Sunrise Trek",
			Location:   "Nandi Hills, Karnataka",
			IsFeatured: true,
		},
		{
			ID:         "static-2",
			Slug:       "coorg-trip",
			Category:   domain.CategoryTwoDay,
			Difficulty: domain.DifficultyModerate,
			Title:      "Coorg Trip",
			Location:   "Coorg, Karnataka",
		},
	}
}

func scenarioStatic() *catalog.Static {
	return catalog.NewStatic(scenarioTrips(), []domain.Testimonial{
		{ID: "t-static", Name: "Priya", TripTitle: "Coorg Trip", Rating: 5, Comment: "Great"},
	})
}

func slugs(trips []domain.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = t.Slug
	}
	return out
}
