package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// TestimonialFetcher is the remote side of the testimonial source.
// *RemoteGateway satisfies it.
type TestimonialFetcher interface {
	FetchTestimonials(ctx context.Context) ([]domain.Testimonial, error)
}

// Testimonials serves testimonials with the same policy as trips: when the
// store is unavailable or empty the static testimonials are served instead.
type Testimonials struct {
	remote  TestimonialFetcher
	static  *Static
	timeout time.Duration
	log     *slog.Logger
}

// NewTestimonials constructs a Testimonials source. A non-positive timeout
// falls back to DefaultRemoteTimeout.
func NewTestimonials(remote TestimonialFetcher, static *Static, timeout time.Duration, log *slog.Logger) *Testimonials {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &Testimonials{remote: remote, static: static, timeout: timeout, log: log}
}

// List returns the testimonials to show and where they came from.
func (t *Testimonials) List(ctx context.Context) ([]domain.Testimonial, domain.Provenance) {
	fetchCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	list, err := t.remote.FetchTestimonials(fetchCtx)
	if err != nil {
		t.log.WarnContext(ctx, "serving static testimonials", "reason", "remote unavailable", "error", err)
		return t.static.Testimonials(), domain.ProvenanceStaticFallback
	}
	if len(list) == 0 {
		return t.static.Testimonials(), domain.ProvenanceStaticFallback
	}
	return list, domain.ProvenanceRemote
}
