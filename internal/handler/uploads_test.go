package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhitrip/trip-catalog/internal/handler"
	"github.com/abhitrip/trip-catalog/internal/storage"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR fake image bytes")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00 fake image bytes")
	pdfBytes  = []byte("%PDF-1.7 not an image")
)

// multipartBody builds a form with one "file" part holding content under the
// declared content type and, when folder is non-empty, a "folder" field.
func multipartBody(t *testing.T, contentType string, content []byte, folder string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if folder != "" {
		require.NoError(t, mw.WriteField("folder", folder))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="photo"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		content     []byte
		folder      string
		wantCode    int
	}{
		{"png into default folder", "image/png", pngBytes, "", http.StatusCreated},
		{"jpeg into testimonials", "image/jpeg", jpegBytes, "testimonials", http.StatusCreated},
		{"png declared as octet-stream", "application/octet-stream", pngBytes, "", http.StatusCreated},
		{"not an image", "application/pdf", pdfBytes, "", http.StatusUnprocessableEntity},
		{"pdf declared as png", "image/png", pdfBytes, "", http.StatusUnprocessableEntity},
		{"unknown folder", "image/png", pngBytes, "../etc", http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			body, ct := multipartBody(t, tc.contentType, tc.content, tc.folder)
			req := f.admin(t, http.MethodPost, "/admin/uploads", body)
			req.Header.Set("Content-Type", ct)

			rec := f.serve(req)

			require.Equal(t, tc.wantCode, rec.Code, rec.Body.String())
			if tc.wantCode == http.StatusCreated {
				assert.Equal(t, storage.PlaceholderURL, decode[handler.UploadResponse](t, rec).URL)
			}
		})
	}
}

func TestUploadImage_NotMultipart400(t *testing.T) {
	f := newFixture(t)
	req := f.admin(t, http.MethodPost, "/admin/uploads", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec := f.serve(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// The uploader receives the sniffed type and the whole file, not just what
// was left after sniffing.
func TestUploadImage_PassesSniffedTypeAndFullBody(t *testing.T) {
	f := newFixture(t)
	rec := &recordingUploader{}
	f.uploads = rec
	f.build(f.trips)
	body, ct := multipartBody(t, "image/jpeg", pngBytes, "")
	req := f.admin(t, http.MethodPost, "/admin/uploads", body)
	req.Header.Set("Content-Type", ct)

	resp := f.serve(req)

	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Equal(t, "image/png", rec.got.ContentType)
	assert.Equal(t, pngBytes, rec.body)
}

type recordingUploader struct {
	got  storage.Upload
	body []byte
}

func (r *recordingUploader) Upload(_ context.Context, u storage.Upload) (string, error) {
	r.got = u
	b, err := io.ReadAll(u.Body)
	r.body = b
	return "https://cdn.example.com/trips/x.png", err
}
