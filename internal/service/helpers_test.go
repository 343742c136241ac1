package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhitrip/trip-catalog/internal/domain"
	"github.com/abhitrip/trip-catalog/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	list      func(ctx context.Context) ([]domain.Trip, error)
	getByID   func(ctx context.Context, id string) (domain.Trip, error)
	getBySlug func(ctx context.Context, slug string) (domain.Trip, error)
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id string) error
}

func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetBySlug(ctx context.Context, slug string) (domain.Trip, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// memTripRepo is an in-memory repo.TripRepo with the same observable
// contract as the Postgres one: generated ids, unique slugs, timestamps.
type memTripRepo struct {
	mu     sync.Mutex
	trips  []domain.Trip
	writes int
}

var _ repo.TripRepo = (*memTripRepo)(nil)

func (m *memTripRepo) List(context.Context) ([]domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Trip{}, m.trips...), nil
}

func (m *memTripRepo) GetByID(_ context.Context, id string) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trips {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Trip{}, domain.ErrNotFound
}

func (m *memTripRepo) GetBySlug(_ context.Context, slug string) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trips {
		if t.Slug == slug {
			return t, nil
		}
	}
	return domain.Trip{}, domain.ErrNotFound
}

func (m *memTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.trips {
		if t.Slug == trip.Slug {
			return domain.Trip{}, domain.ErrDuplicateSlug
		}
	}
	now := time.Now().UTC()
	trip.ID = uuid.NewString()
	trip.CreatedAt, trip.UpdatedAt = now, now
	m.trips = append(m.trips, trip)
	m.writes++
	return trip, nil
}

func (m *memTripRepo) Update(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.trips {
		if t.ID == trip.ID {
			trip.CreatedAt = t.CreatedAt
			trip.UpdatedAt = time.Now().UTC()
			m.trips[i] = trip
			m.writes++
			return trip, nil
		}
	}
	return domain.Trip{}, domain.ErrNotFound
}

func (m *memTripRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.trips {
		if t.ID == id {
			m.trips = append(m.trips[:i], m.trips[i+1:]...)
			m.writes++
			return nil
		}
	}
	return domain.ErrNotFound
}

// untouchableTripRepo fails the test if any method is reached.
type untouchableTripRepo struct{ called bool }

var _ repo.TripRepo = (*untouchableTripRepo)(nil)

func (u *untouchableTripRepo) List(context.Context) ([]domain.Trip, error) {
	u.called = true
	return nil, nil
}
func (u *untouchableTripRepo) GetByID(context.Context, string) (domain.Trip, error) {
	u.called = true
	return domain.Trip{}, nil
}
func (u *untouchableTripRepo) GetBySlug(context.Context, string) (domain.Trip, error) {
	u.called = true
	return domain.Trip{}, nil
}
func (u *untouchableTripRepo) Create(_ context.Context, t domain.Trip) (domain.Trip, error) {
	u.called = true
	return t, nil
}
func (u *untouchableTripRepo) Update(_ context.Context, t domain.Trip) (domain.Trip, error) {
	u.called = true
	return t, nil
}
func (u *untouchableTripRepo) Delete(context.Context, string) error {
	u.called = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// validTrip returns a trip that passes every create-time rule.
func validTrip() domain.Trip {
	return domain.Trip{
		Slug:        "skandagiri-night-trek",
		Title:       "Skandagiri Night Trek",
		Description: "Climb under the stars, watch the sunrise above the clouds.",
		Category:    domain.CategoryOneDay,
		Difficulty:  domain.DifficultyModerate,
		Price:       domain.Price{AmountMinor: 149900, Currency: domain.CurrencyINR},
		Location:    "Skandagiri, Karnataka",
		Duration:    "1 Night",
		PickupPoints: []domain.PickupPoint{
			{Location: "Hebbal Flyover"},
		},
		Highlights: []string{"Night climb", "Sunrise"},
		Itinerary: []domain.ItineraryItem{
			{Day: 0, Time: "11:00 PM", Title: "Pickup", Activity: "Depart Bangalore"},
			{Day: 1, Time: "5:30 AM", Title: "Summit", Activity: "Sunrise at the peak"},
		},
	}
}
