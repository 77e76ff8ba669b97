package server

import (
	"net/http"
)

// maxUploadBytes caps resume uploads at 10 MB.
const maxUploadBytes = 10 << 20

// handleUpload proxies a multipart file upload to the storage service and
// returns the stored path plus public URL. Failures surface as one error
// message; there is no retry.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "A 'file' form field is required")
		return
	}
	defer file.Close() //nolint:errcheck

	result, err := s.storage.Upload(r.Context(), header.Filename, file)
	if err != nil {
		backendErr := &ErrBackend{Message: err.Error()}
		s.errorResponse(w, HTTPStatus(backendErr), backendErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, result)
}
