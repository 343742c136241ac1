package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// TripLister is the read side of the trip store. repo.TripRepo satisfies it.
type TripLister interface {
	List(ctx context.Context) ([]domain.Trip, error)
}

// TestimonialLister is the read side of the testimonial store.
type TestimonialLister interface {
	List(ctx context.Context) ([]domain.Testimonial, error)
}

// Gateway fetches the live catalog. Implementations never return an error
// other than one wrapping domain.ErrUnavailable, and never retry.
type Gateway interface {
	FetchAll(ctx context.Context) ([]domain.Trip, error)
}

// RemoteGateway adapts the store to the Gateway contract: every failure,
// whether transport, decode, timeout or a panic inside the driver, collapses
// into domain.ErrUnavailable.
type RemoteGateway struct {
	trips        TripLister
	testimonials TestimonialLister
	log          *slog.Logger
}

// NewRemoteGateway constructs a gateway over the given listers. Either may be
// nil, meaning no store is configured; fetches then report ErrUnavailable
// without doing any I/O.
func NewRemoteGateway(trips TripLister, testimonials TestimonialLister, log *slog.Logger) *RemoteGateway {
	return &RemoteGateway{trips: trips, testimonials: testimonials, log: log}
}

// FetchAll returns every trip in the store in store order.
func (g *RemoteGateway) FetchAll(ctx context.Context) ([]domain.Trip, error) {
	if g.trips == nil {
		return nil, fmt.Errorf("catalog.RemoteGateway.FetchAll: %w: no store configured", domain.ErrUnavailable)
	}
	trips, err := guarded(ctx, g.trips.List)
	if err != nil {
		g.log.WarnContext(ctx, "remote trip fetch failed", "error", err)
		return nil, fmt.Errorf("catalog.RemoteGateway.FetchAll: %w", err)
	}
	return trips, nil
}

// FetchTestimonials returns every testimonial in the store, newest first.
func (g *RemoteGateway) FetchTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	if g.testimonials == nil {
		return nil, fmt.Errorf("catalog.RemoteGateway.FetchTestimonials: %w: no store configured", domain.ErrUnavailable)
	}
	list, err := guarded(ctx, g.testimonials.List)
	if err != nil {
		g.log.WarnContext(ctx, "remote testimonial fetch failed", "error", err)
		return nil, fmt.Errorf("catalog.RemoteGateway.FetchTestimonials: %w", err)
	}
	return list, nil
}

// guarded runs fn and translates any error, context expiry or panic into
// domain.ErrUnavailable.
func guarded[T any](ctx context.Context, fn func(context.Context) ([]T, error)) (out []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: panic: %v", domain.ErrUnavailable, r)
		}
	}()

	out, err = fn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, ctxErr)
	}
	return out, nil
}
