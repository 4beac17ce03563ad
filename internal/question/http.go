package question

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/icebreaker/internal/logging"
	httperrors "github.com/gokatarajesh/icebreaker/pkg/http/errors"
)

const maxBodyBytes = 64 << 10

// HTTPHandler exposes the admin question bank endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a question bank HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// List handles GET /api/admin/questions
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.svc.List(r.Context())
	if err != nil {
		h.internal(w, r, err, "Failed to fetch questions")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Create handles POST /api/admin/questions
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	q, err := h.svc.Create(r.Context(), req)
	if err != nil {
		if h.respondValidation(w, err) {
			return
		}
		h.internal(w, r, err, "Failed to add question")
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// Update handles PUT /api/admin/questions/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	q, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
			return
		}
		if h.respondValidation(w, err) {
			return
		}
		h.internal(w, r, err, "Failed to update question")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /api/admin/questions/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
			return
		}
		h.internal(w, r, err, "Failed to delete question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Question deleted",
	})
}

func (h *HTTPHandler) respondValidation(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, ErrTextRequired):
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Question text is required", "question")
	case errors.Is(err, ErrInvalidCategory):
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, err.Error(), "category")
	case errors.Is(err, ErrInvalidDifficulty):
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, err.Error(), "difficulty")
	default:
		return false
	}
	return true
}

func (h *HTTPHandler) internal(w http.ResponseWriter, r *http.Request, err error, message string) {
	logging.Ctx(r.Context(), h.logger).Error().Err(err).Msg(message)
	httperrors.RespondInternalError(w, message)
}

func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
