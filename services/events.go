package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/olahol/melody"
)

// AdminEvent is a notification pushed to connected admin screens.
type AdminEvent struct {
	Event   string      `json:"event"`
	Month   string      `json:"month,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// BroadcastAdminEvent pushes an event to every connected admin session.
// Delivery is best-effort; a closed socket is not an operation failure.
func BroadcastAdminEvent(m *melody.Melody, event string, month string, payload interface{}) {
	if m == nil {
		return
	}

	data, err := json.Marshal(AdminEvent{
		Event:   event,
		Month:   month,
		Payload: payload,
		At:      time.Now(),
	})
	if err != nil {
		log.Printf("admin event marshal failed: %v", err)
		return
	}

	if err := m.Broadcast(data); err != nil {
		log.Printf("admin event broadcast failed: %v", err)
	}
}
