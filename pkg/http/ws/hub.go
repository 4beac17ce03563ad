package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub groups live connections by the team they watch.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]map[uuid.UUID]*Connection
	teamOf map[uuid.UUID]uuid.UUID
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]map[uuid.UUID]*Connection),
		teamOf: make(map[uuid.UUID]uuid.UUID),
		logger: logger.With().Str("component", "ws_hub").Logger(),
	}
}

// Join adds conn to the team's room. The returned id is the handle for Leave.
func (h *Hub) Join(teamID uuid.UUID, conn *Connection) uuid.UUID {
	connID := uuid.New()

	h.mu.Lock()
	room := h.rooms[teamID]
	if room == nil {
		room = make(map[uuid.UUID]*Connection)
		h.rooms[teamID] = room
	}
	room[connID] = conn
	h.teamOf[connID] = teamID
	size := len(room)
	h.mu.Unlock()

	h.logger.Debug().
		Str("team_id", teamID.String()).
		Str("conn_id", connID.String()).
		Int("watchers", size).
		Msg("feed joined")
	return connID
}

// Leave closes the connection. Unknown ids are ignored.
func (h *Hub) Leave(connID uuid.UUID) {
	h.mu.Lock()
	teamID, ok := h.teamOf[connID]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.teamOf, connID)
	room := h.rooms[teamID]
	conn := room[connID]
	delete(room, connID)
	if len(room) == 0 {
		delete(h.rooms, teamID)
	}
	h.mu.Unlock()

	conn.Close()
	h.logger.Debug().Str("team_id", teamID.String()).Str("conn_id", connID.String()).Msg("feed left")
}

// BroadcastToTeam queues msg on every connection in the team's room and
// returns the first delivery error.
func (h *Hub) BroadcastToTeam(teamID uuid.UUID, msg Message) error {
	h.mu.RLock()
	targets := make([]*Connection, 0, len(h.rooms[teamID]))
	for _, conn := range h.rooms[teamID] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	var firstErr error
	for _, conn := range targets {
		err := conn.Send(msg)
		if err == nil {
			continue
		}
		h.logger.Warn().Err(err).Str("team_id", teamID.String()).Str("type", msg.Type).Msg("feed delivery failed")
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *Hub) TeamSize(teamID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[teamID])
}

// CloseAll disconnects everyone. Called during shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	rooms := h.rooms
	h.rooms = make(map[uuid.UUID]map[uuid.UUID]*Connection)
	h.teamOf = make(map[uuid.UUID]uuid.UUID)
	h.mu.Unlock()

	for _, room := range rooms {
		for _, conn := range room {
			conn.Close()
		}
	}
}
