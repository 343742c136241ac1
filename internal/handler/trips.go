package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhitrip/trip-catalog/internal/catalog"
	"github.com/abhitrip/trip-catalog/internal/domain"
	"github.com/abhitrip/trip-catalog/internal/service"
)

// defaultFeaturedLimit is the number of featured trips on the home page.
const defaultFeaturedLimit = 6

// Pagination describes the page returned by a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripResponse is a trip as the public pages see it: the stored record plus
// the discount and quick-inquiry link the pages used to derive themselves.
type TripResponse struct {
	domain.Trip
	DiscountPercent int    `json:"discount_percent"`
	WhatsAppURL     string `json:"whatsapp_url"`
}

// TripListResponse is the body of every trip listing.
type TripListResponse struct {
	Data       []TripResponse    `json:"data"`
	Pagination *Pagination       `json:"pagination,omitempty"`
	Provenance domain.Provenance `json:"provenance"`
}

// ItineraryResponse is the body of GET /trips/{slug}/itinerary.
type ItineraryResponse struct {
	Slug string                `json:"slug"`
	Days []domain.ItineraryDay `json:"days"`
}

// ListTrips handles GET /trips.
// Supports ?q=, ?category=, ?difficulty= (each "all" or empty for no
// filtering) and ?page= / ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, err := intQuery(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	limit, err := intQuery(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	params := domain.NewPaginationParams(page, limit)

	q := r.URL.Query()
	snap := s.catalog.Resolve(r.Context())
	matched := catalog.Filter(snap.Trips, domain.FilterSpec{
		Text:       q.Get("q"),
		Category:   q.Get("category"),
		Difficulty: q.Get("difficulty"),
	})

	writeJSON(w, http.StatusOK, TripListResponse{
		Data: s.tripResponses(domain.Paginate(matched, params)),
		Pagination: &Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: len(matched),
		},
		Provenance: snap.Provenance,
	})
}

// ListFeaturedTrips handles GET /trips/featured.
// ?limit= defaults to 6; the result is never padded with non-featured trips.
func (s *Server) ListFeaturedTrips(w http.ResponseWriter, r *http.Request) {
	limit := defaultFeaturedLimit
	if v, err := intQuery(r, "limit"); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	} else if v != nil {
		if *v < 1 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be at least 1")
			return
		}
		limit = *v
	}

	snap := s.catalog.Resolve(r.Context())
	writeJSON(w, http.StatusOK, TripListResponse{
		Data:       s.tripResponses(catalog.ListFeatured(snap, limit)),
		Provenance: snap.Provenance,
	})
}

// ListTripsByCategory handles GET /trips/category/{category}.
func (s *Server) ListTripsByCategory(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(chi.URLParam(r, "category"))
	if !category.Valid() {
		writeError(w, http.StatusUnprocessableEntity, codeValidation,
			fmt.Sprintf("unknown category %q", category))
		return
	}

	snap := s.catalog.Resolve(r.Context())
	writeJSON(w, http.StatusOK, TripListResponse{
		Data:       s.tripResponses(catalog.ListByCategory(snap, category)),
		Provenance: snap.Provenance,
	})
}

// GetTrip handles GET /trips/{slug}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := catalog.FindBySlug(s.catalog.Resolve(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		notFound(w, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, s.tripResponse(trip))
}

// GetTripItinerary handles GET /trips/{slug}/itinerary.
func (s *Server) GetTripItinerary(w http.ResponseWriter, r *http.Request) {
	trip, err := catalog.FindBySlug(s.catalog.Resolve(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		notFound(w, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, ItineraryResponse{
		Slug: trip.Slug,
		Days: domain.GroupItinerary(trip.Itinerary),
	})
}

// CreateBookingInquiry handles POST /trips/{slug}/inquiry.
func (s *Server) CreateBookingInquiry(w http.ResponseWriter, r *http.Request) {
	var req service.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inq, err := s.inquiries.Book(r.Context(), chi.URLParam(r, "slug"), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inq)
}

// CreateContactInquiry handles POST /contact.
func (s *Server) CreateContactInquiry(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inq, err := s.inquiries.Contact(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inq)
}

// --- mapping helpers --------------------------------------------------------

func (s *Server) tripResponse(t domain.Trip) TripResponse {
	return TripResponse{
		Trip:            t,
		DiscountPercent: t.DiscountPercent(),
		WhatsAppURL:     s.inquiries.QuickLink(t).WhatsAppURL,
	}
}

func (s *Server) tripResponses(trips []domain.Trip) []TripResponse {
	out := make([]TripResponse, len(trips))
	for i, t := range trips {
		out[i] = s.tripResponse(t)
	}
	return out
}

// intQuery parses an optional integer query parameter.
func intQuery(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}
