package transport

import "testing"

func TestPointsFloor(t *testing.T) {
	c := DefaultCoefficients()
	if pts := c.Points(Cycling, 10); pts != 120 {
		t.Fatalf("expected 120 points, got %d", pts)
	}
	// 2.3 km walking -> floor(34.5) = 34
	if pts := c.Points(Walking, 2.3); pts != 34 {
		t.Fatalf("expected 34 points, got %d", pts)
	}
	if pts := c.Points(Car, 100); pts != 0 {
		t.Fatalf("expected 0 points for car, got %d", pts)
	}
	if pts := c.Points(Unknown, 100); pts != 0 {
		t.Fatalf("expected 0 points for unknown, got %d", pts)
	}
}

func TestCO2Saved(t *testing.T) {
	c := DefaultCoefficients()
	if got := c.CO2SavedKg(Cycling, 10); got != 1.7 {
		t.Fatalf("expected 1.7 kg, got %v", got)
	}
	// public transport: (170-68)*10/1000 = 1.02
	if got := c.CO2SavedKg(PublicTransport, 10); got < 1.019 || got > 1.021 {
		t.Fatalf("expected ~1.02 kg, got %v", got)
	}
	if got := c.CO2SavedKg(Car, 10); got != 0 {
		t.Fatalf("expected 0 kg for car, got %v", got)
	}
	if got := c.CO2SavedKg(Unknown, 10); got != 0 {
		t.Fatalf("expected 0 kg for unknown, got %v", got)
	}
}

func TestCO2SavedClamped(t *testing.T) {
	c := Coefficients{
		Car:     {CO2GramsPerKm: 100},
		Carpool: {CO2GramsPerKm: 120},
	}
	if got := c.CO2SavedKg(Carpool, 10); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

func TestModeValid(t *testing.T) {
	for _, m := range []Mode{Walking, Cycling, PublicTransport, Car, Carpool, Unknown} {
		if !m.Valid() {
			t.Fatalf("expected %s valid", m)
		}
	}
	if Mode("teleport").Valid() {
		t.Fatalf("expected invalid mode")
	}
}
