package tracking

import (
	"math"
	"testing"
	"time"

	"backend-passiverdi/internal/transport"
)

var t0 = time.Date(2025, 10, 6, 8, 0, 0, 0, time.UTC)

func fix(ts time.Time, lat, lng, accuracy, speed float64) PositionSample {
	return PositionSample{Timestamp: ts, Lat: lat, Lng: lng, AccuracyM: accuracy, SpeedMps: speed}
}

func TestAggregatorNoiseFloor(t *testing.T) {
	// P3: two fixes ~5 m apart leave the distance unchanged
	s := NewSession("s1", "p1", t0, 0)
	s.AddPosition(fix(t0, 45.0, 9.0, 10, 1.4))
	s.AddPosition(fix(t0.Add(5*time.Second), 45.000045, 9.0, 10, 1.4))
	if s.DistanceKm() != 0 {
		t.Fatalf("expected jitter rejected, got %v km", s.DistanceKm())
	}

	// ~0.5 km apart with good accuracy accumulates ~0.5
	s.AddPosition(fix(t0.Add(10*time.Second), 45.0045, 9.0, 10, 1.4))
	if d := s.DistanceKm(); d < 0.45 || d > 0.55 {
		t.Fatalf("expected ~0.5 km, got %v", d)
	}
}

func TestAggregatorJitterDoesNotAdvanceAnchor(t *testing.T) {
	// repeated sub-floor drift must not creep into the total
	s := NewSession("s1", "p1", t0, 0)
	s.AddPosition(fix(t0, 45.0, 9.0, 10, 0))
	for i := 1; i <= 20; i++ {
		lat := 45.0 + float64(i)*0.00004 // ~4.4 m per step
		s.AddPosition(fix(t0.Add(time.Duration(i)*time.Second), lat, 9.0, 10, 0))
	}
	if s.DistanceKm() != 0 {
		t.Fatalf("drift accumulated: %v km", s.DistanceKm())
	}
}

func TestAggregatorAccuracyGate(t *testing.T) {
	s := NewSession("s1", "p1", t0, 0)
	if s.AddPosition(fix(t0, 45.0, 9.0, 50, 1.4)) {
		t.Fatalf("expected accuracy 50 rejected")
	}
	if s.AddPosition(fix(t0.Add(time.Second), 45.0, 9.0, 120, 1.4)) {
		t.Fatalf("expected accuracy 120 rejected")
	}
	if !s.AddPosition(fix(t0.Add(2*time.Second), 45.0, 9.0, 49.9, 1.4)) {
		t.Fatalf("expected accuracy 49.9 accepted")
	}
}

func TestAggregatorMonotonicTimestamps(t *testing.T) {
	s := NewSession("s1", "p1", t0, 0)
	s.AddPosition(fix(t0, 45.0, 9.0, 10, 1.4))
	if s.AddPosition(fix(t0.Add(-time.Second), 45.01, 9.0, 10, 1.4)) {
		t.Fatalf("expected stale fix rejected")
	}
	if s.AddPosition(fix(t0, 45.01, 9.0, 10, 1.4)) {
		t.Fatalf("expected duplicate timestamp rejected")
	}
	if s.DistanceKm() != 0 {
		t.Fatalf("rejected fixes must not move the total")
	}
}

func TestSessionClassification(t *testing.T) {
	s := NewSession("s1", "p1", t0, 5)
	if s.Mode() != transport.Unknown {
		t.Fatalf("expected unknown before samples")
	}
	for i := 0; i < 5; i++ {
		s.AddPosition(fix(t0.Add(time.Duration(i)*time.Second), 45.0+float64(i)*0.001, 9.0, 10, 5.0))
	}
	if s.Mode() != transport.Cycling {
		t.Fatalf("expected cycling, got %s", s.Mode())
	}

	s.AddMotion(MotionHint{Timestamp: t0.Add(6 * time.Second), Hint: transport.Hint{Automotive: true}})
	if s.Mode() != transport.Cycling {
		t.Fatalf("single conflicting hint flipped the mode")
	}
}

func TestSessionMotionMonotonic(t *testing.T) {
	s := NewSession("s1", "p1", t0, 5)
	if !s.AddMotion(MotionHint{Timestamp: t0, Hint: transport.Hint{Walking: true}}) {
		t.Fatalf("expected hint accepted")
	}
	if s.AddMotion(MotionHint{Timestamp: t0, Hint: transport.Hint{Walking: true}}) {
		t.Fatalf("expected stale hint rejected")
	}
}

func TestFinalizeEmptySession(t *testing.T) {
	s := NewSession("s1", "p1", t0, 0)
	if act := s.Finalize(transport.DefaultCoefficients(), t0.Add(time.Minute)); act != nil {
		t.Fatalf("expected nil activity for empty session")
	}

	// samples that never pass the movement floor still finalize to nil
	s.AddPosition(fix(t0, 45.0, 9.0, 10, 1.0))
	s.AddPosition(fix(t0.Add(time.Second), 45.00001, 9.0, 10, 1.0))
	if act := s.Finalize(transport.DefaultCoefficients(), t0.Add(time.Minute)); act != nil {
		t.Fatalf("expected nil activity below movement floor")
	}
}

func TestFinalizeUnclassifiedSession(t *testing.T) {
	// distance without a single confident classification finalizes as
	// unknown: zero points, zero CO2 credit
	s := NewSession("s1", "p1", t0, 5)
	s.AddPosition(fix(t0, 45.0, 9.0, 10, 0))
	s.AddPosition(fix(t0.Add(time.Minute), 45.01, 9.0, 10, -1))

	end := t0.Add(2 * time.Minute)
	act := s.Finalize(transport.DefaultCoefficients(), end)
	if act == nil {
		t.Fatalf("expected activity")
	}
	if act.Mode != transport.Unknown {
		t.Fatalf("expected unknown mode, got %s", act.Mode)
	}
	if act.PointsEarned != 0 || act.CO2SavedKg != 0 {
		t.Fatalf("unknown sessions earn nothing: %+v", act)
	}
	if !act.StartTime.Equal(t0) || !act.EndTime.Equal(end) {
		t.Fatalf("unexpected activity times: %+v", act)
	}
}

func TestFinalizeCyclingSession(t *testing.T) {
	s := NewSession("s1", "p1", t0, 5)
	s.AddPosition(fix(t0, 45.0, 9.0, 10, 5.0))
	for i := 1; i <= 10; i++ {
		ts := t0.Add(time.Duration(i) * time.Minute)
		s.AddPosition(fix(ts, 45.0+float64(i)*0.009, 9.0, 10, 5.0))
	}

	act := s.Finalize(transport.DefaultCoefficients(), t0.Add(11*time.Minute))
	if act == nil {
		t.Fatalf("expected activity")
	}
	if act.Mode != transport.Cycling {
		t.Fatalf("expected cycling, got %s", act.Mode)
	}
	// 10 steps of ~1 km
	if act.DistanceKm < 9.5 || act.DistanceKm > 10.5 {
		t.Fatalf("expected ~10 km, got %v", act.DistanceKm)
	}
	if act.PointsEarned != int(math.Floor(act.DistanceKm*12)) {
		t.Fatalf("unexpected points: %d for %v km", act.PointsEarned, act.DistanceKm)
	}
}
