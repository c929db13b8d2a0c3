// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	service "github.com/okian/roster/internal/app"
	"github.com/okian/roster/pkg/logger"
)

// photoRequest is the JSON form of a capture: {"image": "data:image/jpeg;base64,..."}.
type photoRequest struct {
	Image string `json:"image"`
}

// PhotoHandler captures and serves employee photos.
type PhotoHandler struct {
	deps     PhotoDependencies
	maxBytes int64
	logger   logger.Logger
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(deps PhotoDependencies, maxBytes int64, l logger.Logger) *PhotoHandler {
	return &PhotoHandler{deps: deps, maxBytes: maxBytes, logger: l}
}

// HandleCapture handles POST /employees/{id}/photo requests. The body is raw
// image bytes, a data URL, or a JSON object carrying a data URL.
func (h *PhotoHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	const op = "api.photo_capture"
	payload, err := h.readPayload(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "photo_too_large", NewKind(op, service.ErrPhotoTooLarge))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	info, err := h.deps.CapturePhoto(r.Context(), TokenFromContext(r.Context()), r.PathValue("id"), payload)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// HandleDownload handles GET /employees/{id}/photo requests.
func (h *PhotoHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	file, err := h.deps.Photo(r.Context(), TokenFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), w, h.logger, "api.photo_download", err)
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

func (h *PhotoHandler) readPayload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	// Room for base64 expansion and JSON framing.
	body := http.MaxBytesReader(w, r.Body, h.maxBytes*4/3+1024)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return data, nil
	}
	var req photoRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	if req.Image == "" {
		return nil, ErrBadRequest
	}
	return []byte(req.Image), nil
}
