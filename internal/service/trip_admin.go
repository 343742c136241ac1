// Package service contains the business logic for the trip catalog API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhitrip/trip-catalog/internal/domain"
	"github.com/abhitrip/trip-catalog/internal/repo"
)

// TripAdminService translates admin create/update/delete intents into store
// writes.
//
// When constructed in demo mode it never touches the store: every write is
// validated, logged, and echoed back with Simulated set. Demo mode is fixed
// at construction, so a store that starts failing later surfaces
// domain.ErrUnavailable instead of a misleading simulated success.
//
// The service does not invalidate any read cache; callers do that after a
// successful non-simulated write.
type TripAdminService struct {
	repo    repo.TripRepo
	catalog SlugFinder
	demo    bool
	log     *slog.Logger
}

// SlugFinder looks a trip up by slug in the catalog the site is serving.
// In demo mode it stands in for the store when checking slug collisions.
type SlugFinder interface {
	FindBySlug(ctx context.Context, slug string) (domain.Trip, error)
}

// NewTripAdminService constructs a TripAdminService. r may be nil when demo
// is true; catalog is only consulted in demo mode and may be nil otherwise.
func NewTripAdminService(r repo.TripRepo, catalog SlugFinder, demo bool, log *slog.Logger) *TripAdminService {
	return &TripAdminService{repo: r, catalog: catalog, demo: demo, log: log}
}

// Demo reports whether writes are simulated.
func (s *TripAdminService) Demo() bool {
	return s.demo
}

// Get returns a single stored trip by id, for the edit form.
func (s *TripAdminService) Get(ctx context.Context, id string) (domain.Trip, error) {
	if s.demo {
		return domain.Trip{}, fmt.Errorf("service.TripAdminService.Get: %w: no store configured", domain.ErrUnavailable)
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripAdminService.Get: %w", storeError(err))
	}
	return t, nil
}

// Create validates and persists a new trip. An empty slug is derived from
// the title.
// Returns domain.ErrValidation for invalid input and domain.ErrDuplicateSlug
// if another stored trip already uses the slug; in that case nothing is
// written.
func (s *TripAdminService) Create(ctx context.Context, trip domain.Trip) (domain.Mutation[domain.Trip], error) {
	trip = normalizeTrip(trip)
	trip.ID = ""
	if err := validateTrip(trip); err != nil {
		return domain.Mutation[domain.Trip]{}, fmt.Errorf("service.TripAdminService.Create: %w", err)
	}

	if err := s.ensureSlugFree(ctx, trip.Slug, ""); err != nil {
		return domain.Mutation[domain.Trip]{}, fmt.Errorf("service.TripAdminService.Create: %w", err)
	}

	if s.demo {
		s.log.InfoContext(ctx, "simulated trip create", "slug", trip.Slug)
		return domain.Mutation[domain.Trip]{Record: trip, Simulated: true}, nil
	}
	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Mutation[domain.Trip]{}, fmt.Errorf("service.TripAdminService.Create: %w", storeError(err))
	}
	s.log.InfoContext(ctx, "trip created", "id", created.ID, "slug", created.Slug)
	return domain.Mutation[domain.Trip]{Record: created}, nil
}

// Update applies patch to the stored trip with the given id.
// Returns domain.ErrNotFound if the id does not exist, domain.ErrValidation if
// the patched record is invalid, and domain.ErrDuplicateSlug if the patch
// moves the trip onto a slug owned by another trip.
//
// In demo mode there is no stored record to patch: each field the patch sets
// is validated on its own, and the patch is applied to an empty trip carrying
// only the id and echoed back.
func (s *TripAdminService) Update(ctx context.Context, id string, patch domain.TripPatch) (domain.Mutation[domain.Trip], error) {
	if s.demo {
		if err := validateTripPatch(patch); err != nil {
			return domain.Mutation[domain.Trip]{}, fmt.Errorf("service.TripAdminService.Update: %w", err)
		}
		if patch.Slug != nil && *patch.Slug != "" {
			if err := s.ensureSlugFree(ctx, *patch.Slug, id); err != nil {
				return domain.Mutation[domain.Trip]{}, fmt.Errorf("service.TripAdminService.Update: %w", err)
			}
		}
		s.log.InfoContext(ctx, "simulated trip update", "id", id)
		return domain.Mutation[domain.Trip]{Record: patch.Apply(domain.Trip{ID: id}), Simulated: true}, nil
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Mutation[domain.Trip]{}, fmt.Errorf("service.TripAdminService.Update: %w", storeError(err))
	}

	next := normalizeTrip(patch.Apply(current))
	next.ID = current.ID
	if err := validateTrip(next); err != nil {
		return domain.Mutation[domain.Trip]{}, fmt.Errorf("service.TripAdminService.Update: %w", err)
	}
	if next.Slug != current.Slug {
		if err := s.ensureSlugFree(ctx, next.Slug, current.ID); err != nil {
			return domain.Mutation[domain.Trip]{}, fmt.Errorf("service.TripAdminService.Update: %w", err)
		}
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return domain.Mutation[domain.Trip]{}, fmt.Errorf("service.TripAdminService.Update: %w", storeError(err))
	}
	s.log.InfoContext(ctx, "trip updated", "id", updated.ID, "slug", updated.Slug)
	return domain.Mutation[domain.Trip]{Record: updated}, nil
}

// Delete hard-deletes the trip with the given id. The returned record is the
// id that was removed.
// Returns domain.ErrNotFound if the id does not exist.
func (s *TripAdminService) Delete(ctx context.Context, id string) (domain.Mutation[string], error) {
	if s.demo {
		s.log.InfoContext(ctx, "simulated trip delete", "id", id)
		return domain.Mutation[string]{Record: id, Simulated: true}, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.Mutation[string]{}, fmt.Errorf("service.TripAdminService.Delete: %w", storeError(err))
	}
	s.log.InfoContext(ctx, "trip deleted", "id", id)
	return domain.Mutation[string]{Record: id}, nil
}

// ensureSlugFree fails with domain.ErrDuplicateSlug when slug belongs to a
// trip other than ownerID. The unique constraint still backs this up against
// concurrent writers.
func (s *TripAdminService) ensureSlugFree(ctx context.Context, slug, ownerID string) error {
	existing, err := s.findBySlug(ctx, slug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return storeError(err)
	case existing.ID != ownerID:
		return fmt.Errorf("%w: %q", domain.ErrDuplicateSlug, slug)
	}
	return nil
}

// findBySlug asks the store, or in demo mode the served catalog, which trip
// owns slug.
func (s *TripAdminService) findBySlug(ctx context.Context, slug string) (domain.Trip, error) {
	if !s.demo {
		return s.repo.GetBySlug(ctx, slug)
	}
	if s.catalog == nil {
		return domain.Trip{}, domain.ErrNotFound
	}
	return s.catalog.FindBySlug(ctx, slug)
}

// storeError passes domain errors through and marks everything else (driver,
// network, timeout) as domain.ErrUnavailable.
func storeError(err error) error {
	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicateSlug) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
}
