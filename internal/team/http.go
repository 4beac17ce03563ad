package team

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/icebreaker/internal/logging"
	"github.com/gokatarajesh/icebreaker/internal/question"
	httperrors "github.com/gokatarajesh/icebreaker/pkg/http/errors"
)

const maxBodyBytes = 16 << 10

// HTTPHandler exposes team, selection and ledger endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "team_http").Logger(),
	}
}

// List handles GET /api/teams
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.List(r.Context())
	if err != nil {
		h.internal(w, r, err, "Failed to fetch teams")
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// Create handles POST /api/teams
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !decode(w, r, &req) {
		return
	}

	t, err := h.svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Team name is required", "name")
		case errors.Is(err, ErrNameTaken):
			httperrors.RespondValidationError(w, httperrors.ErrCodeAlreadyExists, "Team name already exists", "name")
		default:
			h.internal(w, r, err, "Failed to create team")
		}
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// Question handles GET /api/teams/{teamId}/question
func (h *HTTPHandler) Question(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFrom(w, r)
	if !ok {
		return
	}

	q, err := h.svc.DrawQuestion(r.Context(), teamID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respondTeamNotFound(w)
		case errors.Is(err, question.ErrExhausted):
			httperrors.RespondNotFound(w, httperrors.ErrCodeQuestionsExhausted, "No more questions available for this team")
		default:
			h.internal(w, r, err, "Failed to get question")
		}
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// UseQuestion handles POST /api/teams/{teamId}/use-question
func (h *HTTPHandler) UseQuestion(w http.ResponseWriter, r *http.Request) {
	h.disposition(w, r, KindUsed)
}

// SkipQuestion handles POST /api/teams/{teamId}/skip-question
func (h *HTTPHandler) SkipQuestion(w http.ResponseWriter, r *http.Request) {
	h.disposition(w, r, KindSkipped)
}

func (h *HTTPHandler) disposition(w http.ResponseWriter, r *http.Request, kind string) {
	teamID, ok := teamIDFrom(w, r)
	if !ok {
		return
	}
	var req DispositionRequest
	if !decode(w, r, &req) {
		return
	}

	record, failMsg, okMsg := h.svc.RecordUse, "Failed to mark question as used", "Question marked as used"
	if kind == KindSkipped {
		record, failMsg, okMsg = h.svc.RecordSkip, "Failed to mark question as skipped", "Question marked as skipped"
	}

	if err := record(r.Context(), teamID, req); err != nil {
		switch {
		case errors.Is(err, ErrQuestionIDRequired):
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Question ID is required", "questionId")
		case errors.Is(err, ErrUserNameRequired):
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "User name is required", "userName")
		case errors.Is(err, ErrNotFound):
			respondTeamNotFound(w)
		case errors.Is(err, ErrQuestionNotFound):
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Question not found")
		case errors.Is(err, ErrAlreadyUsed):
			httperrors.RespondConflict(w, httperrors.ErrCodeConflict, "Question already marked as used")
		case errors.Is(err, ErrAlreadySkipped):
			httperrors.RespondConflict(w, httperrors.ErrCodeConflict, "Question already marked as skipped")
		default:
			h.internal(w, r, err, failMsg)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": okMsg,
	})
}

// TeamUsers handles GET /api/teams/{teamId}/users
func (h *HTTPHandler) TeamUsers(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.PathValue("teamId"))
	if err != nil {
		// Unknown ids simply have no users.
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	names, err := h.svc.TeamUserNames(r.Context(), teamID)
	if err != nil {
		h.internal(w, r, err, "Failed to fetch user suggestions")
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// AllUsers handles GET /api/users
func (h *HTTPHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.AllUserNames(r.Context())
	if err != nil {
		h.internal(w, r, err, "Failed to fetch user suggestions")
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// Reset handles POST /api/admin/teams/{teamId}/reset
func (h *HTTPHandler) Reset(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFrom(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Reset(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondTeamNotFound(w)
			return
		}
		h.internal(w, r, err, "Failed to reset team questions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        "Team questions reset successfully",
		"usedDeleted":    res.UsedDeleted,
		"skippedDeleted": res.SkippedDeleted,
	})
}

func (h *HTTPHandler) internal(w http.ResponseWriter, r *http.Request, err error, message string) {
	logging.Ctx(r.Context(), h.logger).Error().Err(err).Msg(message)
	httperrors.RespondInternalError(w, message)
}

// teamIDFrom parses the {teamId} path value. A malformed id cannot name a team, so it is a 404.
func teamIDFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("teamId"))
	if err != nil {
		respondTeamNotFound(w)
		return uuid.Nil, false
	}
	return id, true
}

func respondTeamNotFound(w http.ResponseWriter) {
	httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Team not found")
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
