package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhitrip/trip-catalog/internal/middleware"
)

// drain reads the whole body and records the read error, the way the JSON
// and multipart handlers do.
type drain struct {
	called bool
	err    error
}

func (d *drain) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	_, d.err = io.ReadAll(r.Body)
	w.WriteHeader(http.StatusOK)
}

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 64
	tests := []struct {
		name          string
		size          int
		contentLength int64 // -1 for a streamed body
		wantCode      int
		wantCalled    bool
		wantReadLimit bool
	}{
		{"trip under limit", 40, 40, http.StatusOK, true, false},
		{"exactly at limit", limit, limit, http.StatusOK, true, false},
		{"declared length over limit", 200, 200, http.StatusRequestEntityTooLarge, false, false},
		{"streamed body over limit", 200, -1, http.StatusOK, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := &drain{}
			h := middleware.NewMaxBodySizeHandler(limit)(next)
			req := httptest.NewRequest(http.MethodPost, "/admin/trips", strings.NewReader(strings.Repeat("x", tc.size)))
			req.ContentLength = tc.contentLength

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantCalled, next.called)
			var tooLarge *http.MaxBytesError
			if tc.wantReadLimit {
				if assert.True(t, errors.As(next.err, &tooLarge), "read error %v", next.err) {
					assert.EqualValues(t, limit, tooLarge.Limit)
				}
			} else {
				assert.NoError(t, next.err)
			}
		})
	}
}
