package core

import (
	"encoding/json"
	"time"
)

// Insight is an arbitrary JSON document pushed to the insight receiver.
type Insight struct {
	ID         int64           `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}
