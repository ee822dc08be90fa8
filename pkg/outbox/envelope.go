package outbox

import (
	"encoding/json"
	"time"
)

// ActorRef identifies the administrator whose action produced an event.
type ActorRef struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// PayloadEnvelope is the versioned wire format stored in the outbox payload
// column and shipped to the activity topic as-is.
type PayloadEnvelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"event_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}
