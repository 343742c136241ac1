package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/abhitrip/trip-catalog/internal/storage"
)

// uploadMemory is how much of a multipart body is held in memory before
// spilling to temp files. The overall size is capped by the body-size
// middleware.
const uploadMemory = 1 << 20

// uploadFolders are the object prefixes an admin may upload into.
var uploadFolders = map[string]bool{"trips": true, "testimonials": true}

// UploadResponse is the body of POST /admin/uploads.
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadImage handles POST /admin/uploads.
// Expects a multipart form with a "file" part and an optional "folder"
// field ("trips" by default, or "testimonials").
func (s *Server) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "expected a multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "trips"
	}
	if !uploadFolders[folder] {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, fmt.Sprintf("unknown folder %q", folder))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, `multipart field "file" is required`)
		return
	}
	defer file.Close()

	// The part's declared Content-Type is client input; the stored type is
	// sniffed from the bytes.
	contentType, err := sniffContentType(file)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := storage.CheckImage(contentType); err != nil {
		s.fail(w, r, err)
		return
	}

	url, err := s.uploads.Upload(r.Context(), storage.Upload{
		Folder:      folder,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

// sniffContentType detects the type of f from its first 512 bytes and
// rewinds it.
func sniffContentType(f io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("handler.sniffContentType: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("handler.sniffContentType: %w", err)
	}
	return http.DetectContentType(head[:n]), nil
}
