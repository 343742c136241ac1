package handler

import (
	"net/http"

	"github.com/abhitrip/trip-catalog/internal/middleware"
)

// LoginRequest is the body of POST /admin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /admin/login.
// Responds 401 for wrong credentials and 503 when no admin account is
// configured.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "email and password are required")
		return
	}

	tok, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

// WhoAmI handles GET /admin/me and echoes the authenticated admin.
func (s *Server) WhoAmI(w http.ResponseWriter, r *http.Request) {
	sub, _ := middleware.AdminFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"email": sub})
}
