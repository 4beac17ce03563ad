package team

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/icebreaker/pkg/http/errors"
	ws "github.com/gokatarajesh/icebreaker/pkg/http/ws"
)

const (
	feedPingEvery = 30 * time.Second
	feedIdle      = 70 * time.Second
)

// FeedHandler serves the live WebSocket feed of one team's ledger changes.
type FeedHandler struct {
	svc      *Service
	hub      *ws.Hub
	upgrader *websocket.Upgrader
	logger   zerolog.Logger
}

func NewFeedHandler(svc *Service, hub *ws.Hub, upgrader *websocket.Upgrader, logger zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		svc:      svc,
		hub:      hub,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "team_feed").Logger(),
	}
}

// ServeHTTP handles GET /ws/teams/{teamId}
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	teamID, ok := teamIDFrom(w, r)
	if !ok {
		return
	}
	t, err := h.svc.Get(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondTeamNotFound(w)
			return
		}
		h.logger.Error().Err(err).Msg("feed team lookup failed")
		httperrors.RespondInternalError(w, "Failed to open team feed")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	wsConn := ws.NewConnection(conn, h.logger)
	connID := h.hub.Join(teamID, wsConn)
	defer h.hub.Leave(connID)

	welcome, _ := json.Marshal(ws.WelcomePayload{TeamID: teamID.String(), TeamName: t.Name})
	_ = wsConn.Send(ws.Message{Type: ws.TypeWelcome, Payload: welcome})

	go wsConn.WritePump(feedPingEvery)

	wsConn.ReadPump(feedIdle, func(msg ws.Message) error {
		switch msg.Type {
		case ws.TypePing:
			return wsConn.Send(ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
		default:
			payload, _ := json.Marshal(ws.ErrorPayload{
				Code:    httperrors.ErrCodeUnknownMessageType,
				Message: "Unknown message type: " + msg.Type,
			})
			return wsConn.Send(ws.Message{Type: ws.TypeError, Payload: payload, RequestID: msg.RequestID})
		}
	})
}
