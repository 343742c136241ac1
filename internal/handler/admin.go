package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// AdminStatus is the body of GET /admin/status.
type AdminStatus struct {
	DemoMode   bool              `json:"demo_mode"`
	Provenance domain.Provenance `json:"provenance"`
	TripCount  int               `json:"trip_count"`
}

// DeleteResponse is the body of every admin delete.
type DeleteResponse struct {
	ID        string `json:"id"`
	Simulated bool   `json:"simulated"`
}

// exportHeader is the column order of the CSV export.
var exportHeader = []string{
	"id", "slug", "title", "category", "difficulty", "location", "duration",
	"price_minor", "currency", "price", "original_price", "discount_percent",
	"rating", "reviews", "is_featured", "pickup_points", "highlights", "updated_at",
}

// GetAdminStatus handles GET /admin/status.
func (s *Server) GetAdminStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.catalog.Resolve(r.Context())
	writeJSON(w, http.StatusOK, AdminStatus{
		DemoMode:   s.trips.Demo(),
		Provenance: snap.Provenance,
		TripCount:  len(snap.Trips),
	})
}

// ListAdminTrips handles GET /admin/trips. It returns the whole snapshot
// the public pages are serving, unpaginated.
func (s *Server) ListAdminTrips(w http.ResponseWriter, r *http.Request) {
	snap := s.catalog.Resolve(r.Context())
	writeJSON(w, http.StatusOK, TripListResponse{
		Data:       s.tripResponses(snap.Trips),
		Provenance: snap.Provenance,
	})
}

// GetAdminTrip handles GET /admin/trips/{id}. It reads the store directly so
// the edit form sees the persisted record, not a cached snapshot.
func (s *Server) GetAdminTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// CreateTrip handles POST /admin/trips.
// Responds 201 with the stored record, or 200 with simulated=true in demo
// mode, where nothing was persisted.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var trip domain.Trip
	if !decodeJSON(w, r, &trip) {
		return
	}

	m, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if m.Simulated {
		writeJSON(w, http.StatusOK, m)
		return
	}
	s.invalidate(r.Context())
	writeJSON(w, http.StatusCreated, m)
}

// UpdateTrip handles PATCH /admin/trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var patch domain.TripPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	m, err := s.trips.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !m.Simulated {
		s.invalidate(r.Context())
	}
	writeJSON(w, http.StatusOK, m)
}

// DeleteTrip handles DELETE /admin/trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	m, err := s.trips.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !m.Simulated {
		s.invalidate(r.Context())
	}
	writeJSON(w, http.StatusOK, DeleteResponse{ID: m.Record, Simulated: m.Simulated})
}

// ExportTripsCSV handles GET /admin/trips/export.csv. List columns are
// joined with "|". The X-Catalog-Provenance header tells the admin whether
// the export came from the store or the static fallback.
func (s *Server) ExportTripsCSV(w http.ResponseWriter, r *http.Request) {
	rows, provenance := s.export.Export(r.Context())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("X-Catalog-Provenance", string(provenance))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(exportHeader)
	for _, row := range rows {
		_ = cw.Write(csvRecord(row))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.log.ErrorContext(r.Context(), "csv export write failed", "error", err)
	}
}

func csvRecord(row domain.ExportRow) []string {
	return []string{
		row.ID,
		row.Slug,
		row.Title,
		string(row.Category),
		string(row.Difficulty),
		row.Location,
		row.Duration,
		strconv.FormatInt(row.PriceMinor, 10),
		string(row.Currency),
		row.PriceDisplay,
		row.OriginalPrice,
		strconv.Itoa(row.Discount),
		strconv.FormatFloat(row.Rating, 'f', -1, 64),
		strconv.Itoa(row.Reviews),
		strconv.FormatBool(row.IsFeatured),
		strings.Join(row.PickupPoints, "|"),
		strings.Join(row.Highlights, "|"),
		row.UpdatedAt,
	}
}
