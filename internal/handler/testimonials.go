package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// TestimonialListResponse is the body of GET /testimonials.
type TestimonialListResponse struct {
	Data       []domain.Testimonial `json:"data"`
	Provenance domain.Provenance    `json:"provenance"`
}

// ListTestimonials handles GET /testimonials.
func (s *Server) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	list, provenance := s.testimonials.List(r.Context())
	if list == nil {
		list = []domain.Testimonial{}
	}
	writeJSON(w, http.StatusOK, TestimonialListResponse{Data: list, Provenance: provenance})
}

// CreateTestimonial handles POST /admin/testimonials.
func (s *Server) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var t domain.Testimonial
	if !decodeJSON(w, r, &t) {
		return
	}

	m, err := s.testimonialAdmin.Create(r.Context(), t)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if m.Simulated {
		writeJSON(w, http.StatusOK, m)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// UpdateTestimonial handles PATCH /admin/testimonials/{id}.
func (s *Server) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var patch domain.TestimonialPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	m, err := s.testimonialAdmin.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DeleteTestimonial handles DELETE /admin/testimonials/{id}.
func (s *Server) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	m, err := s.testimonialAdmin.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{ID: m.Record, Simulated: m.Simulated})
}
