package tracking

import (
	"time"

	"backend-passiverdi/internal/activity"
	"backend-passiverdi/internal/shared/geo"
	"backend-passiverdi/internal/transport"
)

const (
	// Position fixes with worse horizontal accuracy are sensor noise.
	maxAccuracyM = 50.0
	// Deltas below this are stationary GPS drift and do not advance the
	// last accepted position.
	minMovementKm = 0.01
)

// Session accumulates distance and classification for one open tracking
// session. Single-owner: only the session's Recorder goroutine touches it.
type Session struct {
	ID        string
	PlayerID  string
	StartTime time.Time

	distanceKm   float64
	sampleCount  int
	last         *PositionSample
	lastPosition time.Time
	lastHint     time.Time
	classifier   *transport.Classifier
}

func NewSession(id, playerID string, now time.Time, classifierWindow int) *Session {
	return &Session{
		ID:         id,
		PlayerID:   playerID,
		StartTime:  now,
		classifier: transport.NewClassifier(classifierWindow),
	}
}

// AddPosition folds one fix into the session. Rejected samples (low accuracy,
// non-monotonic timestamp) are dropped silently; sensor noise is expected,
// not exceptional.
func (s *Session) AddPosition(p PositionSample) bool {
	if p.AccuracyM >= maxAccuracyM {
		return false
	}
	if !s.lastPosition.IsZero() && !p.Timestamp.After(s.lastPosition) {
		return false
	}
	s.lastPosition = p.Timestamp
	s.sampleCount++

	s.classifier.ObserveSpeed(p.SpeedMps)

	if s.last == nil {
		// first fix anchors the session with zero distance contribution
		s.last = &p
		return true
	}
	delta := geo.HaversineKm(s.last.Lat, s.last.Lng, p.Lat, p.Lng)
	if delta < minMovementKm {
		return true
	}
	s.distanceKm += delta
	s.last = &p
	return true
}

// AddMotion folds one motion hint into the classification.
func (s *Session) AddMotion(h MotionHint) bool {
	if !s.lastHint.IsZero() && !h.Timestamp.After(s.lastHint) {
		return false
	}
	s.lastHint = h.Timestamp
	s.sampleCount++
	s.classifier.ObserveHint(h.Hint)
	return true
}

// Mode returns the session's current classification.
func (s *Session) Mode() transport.Mode {
	return s.classifier.Mode()
}

// DistanceKm returns the accumulated distance.
func (s *Session) DistanceKm() float64 {
	return s.distanceKm
}

// Summary returns a live snapshot.
func (s *Session) Summary() Summary {
	return Summary{
		SessionID:   s.ID,
		PlayerID:    s.PlayerID,
		Mode:        s.classifier.Mode(),
		DistanceKm:  s.distanceKm,
		SampleCount: s.sampleCount,
		StartTime:   s.StartTime,
	}
}

// Finalize closes the session into an immutable activity, or nil when
// nothing meaningful happened. A session that never classified finalizes as
// Unknown with zero points and zero CO2 credit.
func (s *Session) Finalize(coeffs transport.Coefficients, now time.Time) *activity.Activity {
	if s.distanceKm <= 0 {
		return nil
	}
	act := activity.New(s.PlayerID, s.classifier.Mode(), s.distanceKm, s.StartTime, now, coeffs)
	act.ID = s.ID
	return &act
}
