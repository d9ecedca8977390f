package http

import (
	"io"
	"net/http"
	"path/filepath"

	"cyclerent-backend/internal/service"
	"cyclerent-backend/internal/storage"
)

// DocumentHandler covers customer ID photos: issuing upload URLs, attaching
// uploaded keys to contracts, and serving the bytes for the local storage
// backend's presigned URLs.
type DocumentHandler struct {
	documentSvc service.DocumentService
	store       storage.StorageInterface
}

func NewDocumentHandler(documentSvc service.DocumentService, store storage.StorageInterface) *DocumentHandler {
	return &DocumentHandler{
		documentSvc: documentSvc,
		store:       store,
	}
}

type issueUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type issueUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

func (h *DocumentHandler) IssueUploadURL(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req issueUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Filename == "" || req.ContentType == "" {
		writeBadRequest(w, "filename and contentType are required")
		return
	}

	key, uploadURL, err := h.documentSvc.IssueUploadURL(r.Context(), id, req.Filename, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issueUploadResponse{Key: key, UploadURL: uploadURL})
}

type confirmUploadRequest struct {
	Key string `json:"key"`
}

func (h *DocumentHandler) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req confirmUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Key == "" {
		writeBadRequest(w, "key is required")
		return
	}

	if err := h.documentSvc.ConfirmUpload(r.Context(), id, req.Key); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type downloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

func (h *DocumentHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeBadRequest(w, "missing key parameter")
		return
	}

	url, err := h.documentSvc.DownloadURL(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, downloadURLResponse{DownloadURL: url})
}

// HandleUpload accepts HTTP PUT requests against presigned upload URLs
func (h *DocumentHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "application/pdf" {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	if err := h.store.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", `"upload-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleDownload streams document bytes for presigned download URLs
func (h *DocumentHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	io.Copy(w, file)
}
