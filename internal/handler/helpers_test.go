package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhitrip/trip-catalog/internal/catalog"
	"github.com/abhitrip/trip-catalog/internal/domain"
	"github.com/abhitrip/trip-catalog/internal/handler"
	"github.com/abhitrip/trip-catalog/internal/service"
	"github.com/abhitrip/trip-catalog/internal/storage"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct horse battery staple"
	agencyPhone   = "+91 98765 43210"
)

// fakeCatalog serves a fixed snapshot and counts invalidations.
type fakeCatalog struct {
	snap        domain.Snapshot
	invalidated int
}

func (f *fakeCatalog) Resolve(context.Context) domain.Snapshot { return f.snap }

func (f *fakeCatalog) Invalidate(context.Context) error {
	f.invalidated++
	return nil
}

func (f *fakeCatalog) FindBySlug(_ context.Context, slug string) (domain.Trip, error) {
	return catalog.FindBySlug(f.snap, slug)
}

var _ handler.CatalogReader = (*fakeCatalog)(nil)

type testimonialsFunc func(ctx context.Context) ([]domain.Testimonial, domain.Provenance)

// mockTripAdmin is a test double for handler.TripAdmin.
// Set only the method fields your test needs.
type mockTripAdmin struct {
	demo   bool
	get    func(ctx context.Context, id string) (domain.Trip, error)
	create func(ctx context.Context, trip domain.Trip) (domain.Mutation[domain.Trip], error)
	update func(ctx context.Context, id string, patch domain.TripPatch) (domain.Mutation[domain.Trip], error)
	delete func(ctx context.Context, id string) (domain.Mutation[string], error)
}

func (m *mockTripAdmin) Demo() bool { return m.demo }
func (m *mockTripAdmin) Get(ctx context.Context, id string) (domain.Trip, error) {
	return m.get(ctx, id)
}
func (m *mockTripAdmin) Create(ctx context.Context, t domain.Trip) (domain.Mutation[domain.Trip], error) {
	return m.create(ctx, t)
}
func (m *mockTripAdmin) Update(ctx context.Context, id string, p domain.TripPatch) (domain.Mutation[domain.Trip], error) {
	return m.update(ctx, id, p)
}
func (m *mockTripAdmin) Delete(ctx context.Context, id string) (domain.Mutation[string], error) {
	return m.delete(ctx, id)
}

// compile-time check: mockTripAdmin must satisfy handler.TripAdmin.
var _ handler.TripAdmin = (*mockTripAdmin)(nil)

// mockTestimonialAdmin is a test double for handler.TestimonialAdmin.
type mockTestimonialAdmin struct {
	create func(ctx context.Context, t domain.Testimonial) (domain.Mutation[domain.Testimonial], error)
	update func(ctx context.Context, id string, p domain.TestimonialPatch) (domain.Mutation[domain.Testimonial], error)
	delete func(ctx context.Context, id string) (domain.Mutation[string], error)
}

func (m *mockTestimonialAdmin) Create(ctx context.Context, t domain.Testimonial) (domain.Mutation[domain.Testimonial], error) {
	return m.create(ctx, t)
}
func (m *mockTestimonialAdmin) Update(ctx context.Context, id string, p domain.TestimonialPatch) (domain.Mutation[domain.Testimonial], error) {
	return m.update(ctx, id, p)
}
func (m *mockTestimonialAdmin) Delete(ctx context.Context, id string) (domain.Mutation[string], error) {
	return m.delete(ctx, id)
}

var _ handler.TestimonialAdmin = (*mockTestimonialAdmin)(nil)

// ---- fixture ---------------------------------------------------------------

// fixture wires a Server the way main.go does, with in-memory doubles for
// the catalog and the mutation services and real auth, inquiry, export and
// placeholder upload services.
type fixture struct {
	catalog          *fakeCatalog
	testimonials     testimonialsFunc
	trips            *mockTripAdmin
	testimonialAdmin *mockTestimonialAdmin
	auth             *service.AuthService
	uploads          storage.Uploader
	handler          http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{
		catalog: &fakeCatalog{snap: domain.Snapshot{
			Trips:      sampleTrips(),
			Provenance: domain.ProvenanceRemote,
			ResolvedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		testimonials: func(context.Context) ([]domain.Testimonial, domain.Provenance) {
			return nil, domain.ProvenanceStaticFallback
		},
		trips:            &mockTripAdmin{},
		testimonialAdmin: &mockTestimonialAdmin{},
		auth: service.NewAuthService(service.AuthConfig{
			Email:        adminEmail,
			PasswordHash: string(hash),
			Secret:       []byte("test-secret"),
			TTL:          time.Hour,
		}, discardLogger()),
		uploads: storage.NewPlaceholder(discardLogger()),
	}
	f.build(f.trips)
	return f
}

// build wires the router around trips, so a test can swap the mock for a
// real mutation service.
func (f *fixture) build(trips handler.TripAdmin) {
	srv := handler.NewServer(handler.Deps{
		Catalog:          f.catalog,
		Testimonials:     &f.testimonials,
		Trips:            trips,
		TestimonialAdmin: f.testimonialAdmin,
		Auth:             f.auth,
		Inquiries:        service.NewInquiryService(f.catalog, agencyPhone),
		Export:           service.NewExportService(f.catalog),
		Uploads:          f.uploads,
		OpenAPI:          []byte("openapi: 3.0.3\n"),
		Log:              discardLogger(),
	})
	f.handler = srv.Routes()
}

// serve runs one request through the router.
func (f *fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// adminToken logs in through the API and returns a bearer header value.
func (f *fixture) adminToken(t *testing.T) string {
	t.Helper()
	rec := f.serve(httptest.NewRequest(http.MethodPost, "/admin/login",
		jsonBody(t, map[string]string{"email": adminEmail, "password": adminPassword})))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tok service.Token
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tok))
	return "Bearer " + tok.AccessToken
}

// admin builds an authenticated admin request.
func (f *fixture) admin(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", f.adminToken(t))
	return req
}

// List lets *testimonialsFunc satisfy handler.TestimonialReader while the
// fixture swaps the function per test.
func (f *testimonialsFunc) List(ctx context.Context) ([]domain.Testimonial, domain.Provenance) {
	return (*f)(ctx)
}

func sampleTrips() []domain.Trip {
	pickupTime := "10:30 PM"
	return []domain.Trip{
		{
			ID:          "t1",
			Slug:        "skandagiri-night-trek",
			Title:       "Skandagiri Night Trek",
			Description: "Night climb with a sunrise view.",
			Category:    domain.CategoryOneDay,
			Difficulty:  domain.DifficultyModerate,
			Price:       domain.Price{AmountMinor: 149900, Currency: domain.CurrencyINR},
			OriginalPrice: &domain.Price{
				AmountMinor: 199900, Currency: domain.CurrencyINR,
			},
			Location:     "Skandagiri, Karnataka",
			Duration:     "1 Night",
			PickupPoints: []domain.PickupPoint{{Location: "Hebbal", Time: &pickupTime}},
			Highlights:   []string{"Night climb", "Sunrise"},
			IsFeatured:   true,
			Itinerary: []domain.ItineraryItem{
				{Day: 1, Time: "5:30 AM", Title: "Summit"},
				{Day: 0, Time: "10:30 PM", Title: "Pickup"},
			},
		},
		{
			ID:         "t2",
			Slug:       "coorg-coffee-escape",
			Title:      "Coorg Coffee Escape",
			Category:   domain.CategoryTwoDay,
			Difficulty: domain.DifficultyEasy,
			Price:      domain.Price{AmountMinor: 499900, Currency: domain.CurrencyINR},
			Location:   "Coorg, Karnataka",
			Duration:   "2 Days",
		},
		{
			ID:         "t3",
			Slug:       "kudremukh-trek",
			Title:      "Kudremukh Trek",
			Category:   domain.CategoryTwoDay,
			Difficulty: domain.DifficultyHard,
			Price:      domain.Price{AmountMinor: 399900, Currency: domain.CurrencyINR},
			Location:   "Chikmagalur, Karnataka",
			Duration:   "2 Days",
			IsFeatured: true,
		},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
