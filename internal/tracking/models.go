package tracking

import (
	"time"

	"backend-passiverdi/internal/transport"
)

// PositionSample is one GPS fix pushed by the sensor feed. Ephemeral: it is
// folded into the session and discarded.
type PositionSample struct {
	Timestamp time.Time `json:"timestamp"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	AccuracyM float64   `json:"accuracy_m"`
	SpeedMps  float64   `json:"speed_mps"`
}

// MotionHint is one motion-activity reading pushed by the sensor feed.
type MotionHint struct {
	Timestamp time.Time `json:"timestamp"`
	transport.Hint
}

// Summary is a live snapshot of an open session.
type Summary struct {
	SessionID   string         `json:"session_id"`
	PlayerID    string         `json:"player_id"`
	Mode        transport.Mode `json:"mode"`
	DistanceKm  float64        `json:"distance_km"`
	SampleCount int            `json:"sample_count"`
	StartTime   time.Time      `json:"start_time"`
}
