package report

import (
	"encoding/json"
	"net/http"

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
		logger: logger.With().Str("component", "report_http").Logger(),
	}
}

// UsageStats handles GET /api/admin/usage-stats
func (h *HTTPHandler) UsageStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.UsageStats(r.Context())
	if err != nil {
		logging.Ctx(r.Context(), h.logger).Error().Err(err).Msg("usage stats failed")
		httperrors.RespondInternalError(w, "Failed to fetch usage statistics")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}
