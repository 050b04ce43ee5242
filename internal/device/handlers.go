package device

import (
	"context"
	"time"

	"backend-passiverdi/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Engine is the session backend the device feed drives.
type Engine interface {
	StartSession(playerID string, now time.Time) tracking.Summary
	Position(sessionID string, p tracking.PositionSample) error
	Motion(sessionID string, h tracking.MotionHint) error
	StopSession(ctx context.Context, sessionID string, now time.Time) (*tracking.StopResult, error)
}

type reply struct {
	Kind    string               `json:"kind"`
	Session *tracking.Summary    `json:"session,omitempty"`
	Result  *tracking.StopResult `json:"result,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// RegisterRoutes mounts the device feed: one websocket per device, one open
// session per connection.
func RegisterRoutes(r fiber.Router, engine Engine) {
	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		var sessionID string
		defer func() {
			// a dropped connection still finalizes its session
			if sessionID != "" {
				_, _ = engine.StopSession(context.Background(), sessionID, time.Now())
			}
		}()

		for {
			_, data, err := c.ReadMessage()
			if err != nil {
				return
			}

			msg, err := Parse(data)
			if err != nil {
				writeReply(c, reply{Kind: "error", Error: err.Error()})
				continue
			}

			switch msg.Kind {
			case KindStart:
				if sessionID != "" {
					writeReply(c, reply{Kind: "error", Error: "session already open"})
					continue
				}
				summary := engine.StartSession(msg.PlayerID, time.Now())
				sessionID = summary.SessionID
				writeReply(c, reply{Kind: "started", Session: &summary})

			case KindPosition:
				if err := feed(sessionID, func() error { return engine.Position(sessionID, msg.Position()) }); err != nil {
					writeReply(c, reply{Kind: "error", Error: err.Error()})
				}

			case KindMotion:
				if err := feed(sessionID, func() error { return engine.Motion(sessionID, msg.Motion()) }); err != nil {
					writeReply(c, reply{Kind: "error", Error: err.Error()})
				}

			case KindStop:
				if sessionID == "" {
					writeReply(c, reply{Kind: "error", Error: "no open session"})
					continue
				}
				result, err := engine.StopSession(context.Background(), sessionID, time.Now())
				sessionID = ""
				if err != nil {
					writeReply(c, reply{Kind: "error", Error: err.Error()})
					continue
				}
				writeReply(c, reply{Kind: "stopped", Result: result})
			}
		}
	}))
}

func feed(sessionID string, fn func() error) error {
	if sessionID == "" {
		return tracking.ErrSessionNotFound
	}
	return fn()
}

func writeReply(c *websocket.Conn, r reply) {
	_ = c.WriteJSON(r)
}
