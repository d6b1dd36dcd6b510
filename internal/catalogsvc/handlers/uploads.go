package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
)

const maxUploadBytes = 16 << 20 // 16 MiB per image

type uploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// validUploadPath restricts keys to the two prefixes clients derive,
// matching the bucket layout: covers/<ts>_<name>, guides/<id>_<ts>_<name>.
func validUploadPath(path string) bool {
	if strings.Contains(path, "..") {
		return false
	}
	return strings.HasPrefix(path, "covers/") || strings.HasPrefix(path, "guides/")
}

// UploadHandler stores one image object under the client-derived key.
// Multipart fields: path (object key) and file.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid multipart form"})
		return
	}

	path := r.FormValue("path")
	if !validUploadPath(path) {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid upload path"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "file field is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.storage.Upload(r.Context(), path, file, contentType); err != nil {
		log.Errorf("Error [Storage.Upload] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "upload failed"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "uploaded",
		Code:    http.StatusCreated,
		Data:    uploadResponse{Path: path, URL: h.storage.PublicURL(path)},
	})
}

// DeleteUploadHandler removes an object; clients call this to roll back
// an upload whose follow-up insert or update failed.
func (h *Handler) DeleteUploadHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if !validUploadPath(path) {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid path"})
		return
	}

	if err := h.storage.Delete(r.Context(), path); err != nil {
		log.Errorf("Error [Storage.Delete] %s", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "delete failed"})
		return
	}

	h.CreateResponse(w, Response{Message: "deleted", Code: http.StatusOK})
}

// ServeFileHandler streams a public object back out of the bucket.
func (h *Handler) ServeFileHandler(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" || strings.Contains(key, "..") {
		http.NotFound(w, r)
		return
	}

	reader, contentType, err := h.storage.Reader(r.Context(), key)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, reader); err != nil {
		log.Errorf("Error streaming object %s: %s", key, err)
	}
}
