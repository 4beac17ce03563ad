package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/icebreaker/internal/logging"
	httperrors "github.com/gokatarajesh/icebreaker/pkg/http/errors"
)

type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "admin_http").Logger(),
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Password == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "Password is required", "password")
		return
	}

	resp, err := h.svc.Login(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrDisabled):
			httperrors.RespondNotFound(w, httperrors.ErrCodeFeatureNotAvailable, "Admin login is not enabled")
		case errors.Is(err, ErrInvalidPassword):
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeLoginFailed, "Invalid password")
		default:
			logging.Ctx(r.Context(), h.logger).Error().Err(err).Msg("admin token issue failed")
			httperrors.RespondInternalError(w, "Login failed")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(resp)
}

// RequireAdmin rejects requests without a valid admin bearer token. It passes everything
// through when authentication is disabled.
func RequireAdmin(svc *Service, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !svc.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid authorization header")
				return
			}

			if err := svc.Authorize(parts[1]); err != nil {
				logging.Ctx(r.Context(), logger).Warn().Err(err).Msg("admin token rejected")
				code := httperrors.ErrCodeInvalidToken
				if errors.Is(err, ErrExpiredToken) {
					code = httperrors.ErrCodeTokenExpired
				}
				httperrors.RespondUnauthorized(w, code, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
