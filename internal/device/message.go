package device

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend-passiverdi/internal/tracking"
	"backend-passiverdi/internal/transport"
)

// Kind discriminates the device feed variants.
type Kind string

const (
	KindStart    Kind = "start"
	KindPosition Kind = "position"
	KindMotion   Kind = "motion"
	KindStop     Kind = "stop"
)

var ErrInvalidMessage = errors.New("device: invalid message")

// Message is one frame of the device feed. Kind selects which fields apply;
// everything else is ignored.
type Message struct {
	Kind      Kind      `json:"kind"`
	PlayerID  string    `json:"player_id,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`

	// position fields
	Lat       float64 `json:"lat,omitempty"`
	Lng       float64 `json:"lng,omitempty"`
	AccuracyM float64 `json:"accuracy_m,omitempty"`
	SpeedMps  float64 `json:"speed_mps,omitempty"`

	// motion fields
	Hint *transport.Hint `json:"hint,omitempty"`
}

// Parse decodes and validates one frame. Malformed input is rejected at the
// boundary so the recorders only ever see well-formed samples.
func Parse(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := msg.validate(); err != nil {
		return Message{}, err
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	return msg, nil
}

func (m Message) validate() error {
	switch m.Kind {
	case KindStart:
		if m.PlayerID == "" {
			return fmt.Errorf("%w: start requires player_id", ErrInvalidMessage)
		}
	case KindPosition:
		if m.Lat < -90 || m.Lat > 90 || m.Lng < -180 || m.Lng > 180 {
			return fmt.Errorf("%w: coordinates out of range", ErrInvalidMessage)
		}
		if m.AccuracyM < 0 {
			return fmt.Errorf("%w: negative accuracy", ErrInvalidMessage)
		}
	case KindMotion:
		if m.Hint == nil {
			return fmt.Errorf("%w: motion requires hint", ErrInvalidMessage)
		}
	case KindStop:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidMessage, m.Kind)
	}
	return nil
}

// Position converts a position frame into a tracking sample.
func (m Message) Position() tracking.PositionSample {
	return tracking.PositionSample{
		Timestamp: m.Timestamp,
		Lat:       m.Lat,
		Lng:       m.Lng,
		AccuracyM: m.AccuracyM,
		SpeedMps:  m.SpeedMps,
	}
}

// Motion converts a motion frame into a tracking hint.
func (m Message) Motion() tracking.MotionHint {
	return tracking.MotionHint{Timestamp: m.Timestamp, Hint: *m.Hint}
}
