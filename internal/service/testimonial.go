package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhitrip/trip-catalog/internal/domain"
	"github.com/abhitrip/trip-catalog/internal/repo"
)

// TestimonialAdminService is the testimonial counterpart of TripAdminService,
// with the same demo-mode contract.
type TestimonialAdminService struct {
	repo repo.TestimonialRepo
	demo bool
	log  *slog.Logger
}

// NewTestimonialAdminService constructs a TestimonialAdminService. r may be
// nil when demo is true.
func NewTestimonialAdminService(r repo.TestimonialRepo, demo bool, log *slog.Logger) *TestimonialAdminService {
	return &TestimonialAdminService{repo: r, demo: demo, log: log}
}

// Create validates and persists a new testimonial.
func (s *TestimonialAdminService) Create(ctx context.Context, t domain.Testimonial) (domain.Mutation[domain.Testimonial], error) {
	t = normalizeTestimonial(t)
	t.ID = ""
	if err := validateStruct(t); err != nil {
		return domain.Mutation[domain.Testimonial]{}, fmt.Errorf("service.TestimonialAdminService.Create: %w", err)
	}
	if s.demo {
		s.log.InfoContext(ctx, "simulated testimonial create", "name", t.Name)
		return domain.Mutation[domain.Testimonial]{Record: t, Simulated: true}, nil
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return domain.Mutation[domain.Testimonial]{}, fmt.Errorf("service.TestimonialAdminService.Create: %w", storeError(err))
	}
	return domain.Mutation[domain.Testimonial]{Record: created}, nil
}

// Update applies patch to the stored testimonial with the given id.
func (s *TestimonialAdminService) Update(ctx context.Context, id string, patch domain.TestimonialPatch) (domain.Mutation[domain.Testimonial], error) {
	if s.demo {
		if err := validateTestimonialPatch(patch); err != nil {
			return domain.Mutation[domain.Testimonial]{}, fmt.Errorf("service.TestimonialAdminService.Update: %w", err)
		}
		s.log.InfoContext(ctx, "simulated testimonial update", "id", id)
		return domain.Mutation[domain.Testimonial]{Record: patch.Apply(domain.Testimonial{ID: id}), Simulated: true}, nil
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Mutation[domain.Testimonial]{}, fmt.Errorf("service.TestimonialAdminService.Update: %w", storeError(err))
	}
	next := normalizeTestimonial(patch.Apply(current))
	if err := validateStruct(next); err != nil {
		return domain.Mutation[domain.Testimonial]{}, fmt.Errorf("service.TestimonialAdminService.Update: %w", err)
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return domain.Mutation[domain.Testimonial]{}, fmt.Errorf("service.TestimonialAdminService.Update: %w", storeError(err))
	}
	return domain.Mutation[domain.Testimonial]{Record: updated}, nil
}

// Delete hard-deletes the testimonial with the given id.
func (s *TestimonialAdminService) Delete(ctx context.Context, id string) (domain.Mutation[string], error) {
	if s.demo {
		s.log.InfoContext(ctx, "simulated testimonial delete", "id", id)
		return domain.Mutation[string]{Record: id, Simulated: true}, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.Mutation[string]{}, fmt.Errorf("service.TestimonialAdminService.Delete: %w", storeError(err))
	}
	return domain.Mutation[string]{Record: id}, nil
}

func normalizeTestimonial(t domain.Testimonial) domain.Testimonial {
	t.Name = strings.TrimSpace(t.Name)
	t.TripTitle = strings.TrimSpace(t.TripTitle)
	t.Comment = strings.TrimSpace(t.Comment)
	t.Image = strings.TrimSpace(t.Image)
	return t
}
