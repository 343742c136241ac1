package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// DefaultRemoteTimeout bounds a single remote fetch when no other timeout is
// configured. A fetch that exceeds it is treated as unavailable.
const DefaultRemoteTimeout = 3 * time.Second

// SnapshotCache stores remote snapshots between requests.
// A cache miss is reported as (zero, false, nil).
type SnapshotCache interface {
	Get(ctx context.Context) (domain.Snapshot, bool, error)
	Set(ctx context.Context, s domain.Snapshot) error
	Invalidate(ctx context.Context) error
}

// Resolver produces catalog snapshots. The remote catalog wins wholesale
// when it returns at least one valid record; otherwise the static catalog is
// served unmodified. Resolve never fails.
type Resolver struct {
	remote  Gateway
	static  *Static
	cache   SnapshotCache
	timeout time.Duration
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache enables snapshot caching. Only remote snapshots are cached, so a
// recovered store is picked up on the next request.
func WithCache(c SnapshotCache) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithTimeout overrides DefaultRemoteTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithClock replaces time.Now for ResolvedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// NewResolver constructs a Resolver over a remote gateway and the static
// fallback catalog.
func NewResolver(remote Gateway, static *Static, log *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		remote:  remote,
		static:  static,
		timeout: DefaultRemoteTimeout,
		now:     time.Now,
		log:     log,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve returns the current catalog snapshot.
func (r *Resolver) Resolve(ctx context.Context) domain.Snapshot {
	if r.cache != nil {
		snap, ok, err := r.cache.Get(ctx)
		if err != nil {
			r.log.WarnContext(ctx, "snapshot cache read failed", "error", err)
		} else if ok {
			return snap
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	trips, err := r.remote.FetchAll(fetchCtx)
	if err != nil {
		r.log.WarnContext(ctx, "serving static catalog", "reason", "remote unavailable", "error", err)
		return r.fallback()
	}

	valid := r.validate(ctx, trips)
	if len(valid) == 0 {
		r.log.InfoContext(ctx, "serving static catalog", "reason", "remote empty", "fetched", len(trips))
		return r.fallback()
	}

	snap := domain.Snapshot{
		Trips:      valid,
		Provenance: domain.ProvenanceRemote,
		ResolvedAt: r.now(),
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, snap); err != nil {
			r.log.WarnContext(ctx, "snapshot cache write failed", "error", err)
		}
	}
	return snap
}

// Invalidate drops any cached snapshot. Admin handlers call it after every
// persisted write; the mutation services never call it themselves.
func (r *Resolver) Invalidate(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}
	if err := r.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("catalog.Resolver.Invalidate: %w", err)
	}
	return nil
}

// FindBySlug resolves the catalog and looks up slug in it.
func (r *Resolver) FindBySlug(ctx context.Context, slug string) (domain.Trip, error) {
	return FindBySlug(r.Resolve(ctx), slug)
}

// ListByCategory resolves the catalog and returns the trips in category.
func (r *Resolver) ListByCategory(ctx context.Context, category domain.Category) []domain.Trip {
	return ListByCategory(r.Resolve(ctx), category)
}

// ListFeatured resolves the catalog and returns up to limit featured trips.
func (r *Resolver) ListFeatured(ctx context.Context, limit int) []domain.Trip {
	return ListFeatured(r.Resolve(ctx), limit)
}

func (r *Resolver) fallback() domain.Snapshot {
	return domain.Snapshot{
		Trips:      r.static.Trips(),
		Provenance: domain.ProvenanceStaticFallback,
		ResolvedAt: r.now(),
	}
}

// validate drops remote records that lack an id or slug, and any record
// whose slug repeats an earlier one. Each rejection is logged.
func (r *Resolver) validate(ctx context.Context, trips []domain.Trip) []domain.Trip {
	out := make([]domain.Trip, 0, len(trips))
	seen := make(map[string]bool, len(trips))
	for _, t := range trips {
		switch {
		case t.ID == "" || t.Slug == "":
			r.log.WarnContext(ctx, "rejected remote trip", "reason", "missing id or slug", "id", t.ID, "slug", t.Slug)
		case seen[t.Slug]:
			r.log.WarnContext(ctx, "rejected remote trip", "reason", "duplicate slug", "id", t.ID, "slug", t.Slug)
		default:
			seen[t.Slug] = true
			out = append(out, t)
		}
	}
	return out
}

// FindBySlug returns the trip in s whose slug equals slug.
// The empty slug never matches.
func FindBySlug(s domain.Snapshot, slug string) (domain.Trip, error) {
	if slug == "" {
		return domain.Trip{}, fmt.Errorf("catalog.FindBySlug: %w", domain.ErrNotFound)
	}
	for _, t := range s.Trips {
		if t.Slug == slug {
			return t, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("catalog.FindBySlug: %q: %w", slug, domain.ErrNotFound)
}

// ListByCategory returns the trips of s in category, in snapshot order.
func ListByCategory(s domain.Snapshot, category domain.Category) []domain.Trip {
	out := []domain.Trip{}
	for _, t := range s.Trips {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// ListFeatured returns at most limit featured trips of s, in snapshot order.
// It never pads the result with non-featured trips. limit is expected to be
// positive; a non-positive limit yields an empty list.
func ListFeatured(s domain.Snapshot, limit int) []domain.Trip {
	out := []domain.Trip{}
	for _, t := range s.Trips {
		if len(out) >= limit {
			break
		}
		if t.IsFeatured {
			out = append(out, t)
		}
	}
	return out
}
