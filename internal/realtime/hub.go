package realtime

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/utils"
)

// GroupRoom keys the shared chat of one property.
func GroupRoom(propertyID uuid.UUID) string {
	return "group:" + propertyID.String()
}

// DirectRoom keys a two-party conversation. Both parties derive the same
// key regardless of who opened it.
func DirectRoom(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	sort.Strings(ids)
	return "dm:" + strings.Join(ids, "_")
}

// Event is the wire envelope for everything pushed over a socket.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub tracks connected sessions and the rooms they joined. Publishing is
// fire-and-forget: a slow or disconnected session is skipped, never waited on.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*session]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*session]struct{})}
}

func (h *Hub) join(room string, s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*session]struct{})
		h.rooms[room] = members
	}
	members[s] = struct{}{}
}

func (h *Hub) remove(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Publish delivers an event to every session in the room. Sessions whose
// send buffer is full are dropped rather than blocked on, so a stuck client
// can never stall the caller.
func (h *Hub) Publish(room, event string, data any) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to encode realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.rooms[room] {
		select {
		case s.send <- payload:
		default:
			utils.Logger.Warnf("Dropping %s event for slow client %s", event, s.userID)
		}
	}
}

// RoomSize reports the current membership of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
