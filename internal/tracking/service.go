package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"backend-passiverdi/internal/activity"
	"backend-passiverdi/internal/stream"
	"backend-passiverdi/internal/transport"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("tracking: session not found")

// StopResult is what a finished session yields: the finalized activity plus
// the player state it folded into.
type StopResult struct {
	Activity activity.Activity    `json:"activity"`
	Outcome  activity.FoldOutcome `json:"outcome"`
}

// Service owns the open sessions. All I/O happens at session boundaries
// (start, stop); the sample hot path only feeds the in-memory recorders.
type Service struct {
	coeffs  transport.Coefficients
	window  int
	players activity.Folder
	hub     *stream.Hub

	mu        sync.Mutex
	recorders map[string]*Recorder
}

func NewService(coeffs transport.Coefficients, classifierWindow int, players activity.Folder, hub *stream.Hub) *Service {
	return &Service{
		coeffs:    coeffs,
		window:    classifierWindow,
		players:   players,
		hub:       hub,
		recorders: map[string]*Recorder{},
	}
}

// StartSession opens a session for a player and spins up its recorder.
func (s *Service) StartSession(playerID string, now time.Time) Summary {
	session := NewSession(uuid.NewString(), playerID, now, s.window)
	rec := NewRecorder(session, s.coeffs)

	s.mu.Lock()
	s.recorders[session.ID] = rec
	s.mu.Unlock()

	return session.Summary()
}

func (s *Service) recorder(sessionID string) (*Recorder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recorders[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return rec, nil
}

// Position pushes a GPS fix into the session.
func (s *Service) Position(sessionID string, p PositionSample) error {
	rec, err := s.recorder(sessionID)
	if err != nil {
		return err
	}
	rec.OnPosition(p)
	return nil
}

// Motion pushes a motion hint into the session.
func (s *Service) Motion(sessionID string, h MotionHint) error {
	rec, err := s.recorder(sessionID)
	if err != nil {
		return err
	}
	rec.OnMotionHint(h)
	return nil
}

// Summary returns a live snapshot of an open session.
func (s *Service) Summary(sessionID string) (Summary, error) {
	rec, err := s.recorder(sessionID)
	if err != nil {
		return Summary{}, err
	}
	return rec.Summary(), nil
}

// StopSession finalizes the session and, when it produced an activity, folds
// it into the player state and broadcasts the result. Returns (nil, nil) for
// an empty session: a valid outcome, not an error.
func (s *Service) StopSession(ctx context.Context, sessionID string, now time.Time) (*StopResult, error) {
	s.mu.Lock()
	rec, ok := s.recorders[sessionID]
	delete(s.recorders, sessionID)
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	act := rec.Stop(now)
	if act == nil {
		return nil, nil
	}

	outcome, err := s.players.ApplyActivity(ctx, *act)
	if err != nil {
		return nil, err
	}

	result := &StopResult{Activity: *act, Outcome: outcome}
	s.broadcast(sessionID, result)
	return result, nil
}

func (s *Service) broadcast(topic string, result *StopResult) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	s.hub.Broadcast(topic, payload)
}
