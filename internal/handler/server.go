// Package handler implements the HTTP handlers for the trip catalog API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, trips.go, admin.go, etc.) but share the same Server struct so
// they can access its dependencies. Routes mounts them on a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhitrip/trip-catalog/internal/domain"
	"github.com/abhitrip/trip-catalog/internal/middleware"
	"github.com/abhitrip/trip-catalog/internal/service"
	"github.com/abhitrip/trip-catalog/internal/storage"
)

// CatalogReader is the read side of the catalog. Defining the interface here
// (in the consumer package) lets handler tests inject a fake snapshot without
// a resolver, store, or cache. *catalog.Resolver satisfies it.
type CatalogReader interface {
	Resolve(ctx context.Context) domain.Snapshot
	Invalidate(ctx context.Context) error
}

// TestimonialReader lists the testimonials shown on the home page.
// *catalog.Testimonials satisfies it.
type TestimonialReader interface {
	List(ctx context.Context) ([]domain.Testimonial, domain.Provenance)
}

// TripAdmin is the admin mutation gateway for trips.
// *service.TripAdminService satisfies it.
type TripAdmin interface {
	Demo() bool
	Get(ctx context.Context, id string) (domain.Trip, error)
	Create(ctx context.Context, trip domain.Trip) (domain.Mutation[domain.Trip], error)
	Update(ctx context.Context, id string, patch domain.TripPatch) (domain.Mutation[domain.Trip], error)
	Delete(ctx context.Context, id string) (domain.Mutation[string], error)
}

// TestimonialAdmin is the admin mutation gateway for testimonials.
// *service.TestimonialAdminService satisfies it.
type TestimonialAdmin interface {
	Create(ctx context.Context, t domain.Testimonial) (domain.Mutation[domain.Testimonial], error)
	Update(ctx context.Context, id string, patch domain.TestimonialPatch) (domain.Mutation[domain.Testimonial], error)
	Delete(ctx context.Context, id string) (domain.Mutation[string], error)
}

// Authenticator issues and checks admin session tokens.
// *service.AuthService satisfies it.
type Authenticator interface {
	middleware.TokenVerifier
	Login(ctx context.Context, email, password string) (service.Token, error)
}

// Inquirer builds the messaging links for booking and contact forms.
// *service.InquiryService satisfies it.
type Inquirer interface {
	Book(ctx context.Context, slug string, req service.BookingRequest) (service.Inquiry, error)
	Contact(ctx context.Context, req service.ContactRequest) (service.Inquiry, error)
	QuickLink(trip domain.Trip) service.Inquiry
}

// Exporter flattens the resolved catalog for the CSV export.
// *service.ExportService satisfies it.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, domain.Provenance)
}

// Deps lists everything Server needs. Every field is required.
type Deps struct {
	Catalog          CatalogReader
	Testimonials     TestimonialReader
	Trips            TripAdmin
	TestimonialAdmin TestimonialAdmin
	Auth             Authenticator
	Inquiries        Inquirer
	Export           Exporter
	Uploads          storage.Uploader
	OpenAPI          []byte
	Log              *slog.Logger
}

// Server holds the dependencies shared by every handler.
type Server struct {
	catalog          CatalogReader
	testimonials     TestimonialReader
	trips            TripAdmin
	testimonialAdmin TestimonialAdmin
	auth             Authenticator
	inquiries        Inquirer
	export           Exporter
	uploads          storage.Uploader
	openAPI          []byte
	log              *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{
		catalog:          d.Catalog,
		testimonials:     d.Testimonials,
		trips:            d.Trips,
		testimonialAdmin: d.TestimonialAdmin,
		auth:             d.Auth,
		inquiries:        d.Inquiries,
		export:           d.Export,
		uploads:          d.Uploads,
		openAPI:          d.OpenAPI,
		log:              d.Log,
	}
}

// Routes returns the API router. Cross-cutting middleware (request id,
// logging, CORS, body limits) is applied by the caller; only the admin auth
// guard is wired here because it is route specific.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Get("/featured", s.ListFeaturedTrips)
		r.Get("/category/{category}", s.ListTripsByCategory)
		r.Get("/{slug}", s.GetTrip)
		r.Get("/{slug}/itinerary", s.GetTripItinerary)
		r.Post("/{slug}/inquiry", s.CreateBookingInquiry)
	})
	r.Post("/contact", s.CreateContactInquiry)
	r.Get("/testimonials", s.ListTestimonials)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(s.auth))

			r.Get("/me", s.WhoAmI)
			r.Get("/status", s.GetAdminStatus)
			r.Route("/trips", func(r chi.Router) {
				r.Get("/", s.ListAdminTrips)
				r.Post("/", s.CreateTrip)
				r.Get("/export.csv", s.ExportTripsCSV)
				r.Get("/{id}", s.GetAdminTrip)
				r.Patch("/{id}", s.UpdateTrip)
				r.Delete("/{id}", s.DeleteTrip)
			})
			r.Route("/testimonials", func(r chi.Router) {
				r.Post("/", s.CreateTestimonial)
				r.Patch("/{id}", s.UpdateTestimonial)
				r.Delete("/{id}", s.DeleteTestimonial)
			})
			r.Post("/uploads", s.UploadImage)
		})
	})
	return r
}

// invalidate drops the cached snapshot after a persisted write. A failure is
// logged, not returned: the write itself succeeded.
func (s *Server) invalidate(ctx context.Context) {
	if err := s.catalog.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "snapshot invalidation failed", "error", err)
	}
}
