package transport

import "math"

// Mode is the inferred method of movement for a tracked session.
type Mode string

const (
	Walking         Mode = "walking"
	Cycling         Mode = "cycling"
	PublicTransport Mode = "public_transport"
	Car             Mode = "car"
	Carpool         Mode = "carpool"
	Unknown         Mode = "unknown"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case Walking, Cycling, PublicTransport, Car, Carpool, Unknown:
		return true
	}
	return false
}

// Coefficient holds the per-kilometer emission and reward factors of a mode.
type Coefficient struct {
	CO2GramsPerKm float64
	PointsPerKm   float64
}

// Coefficients maps each mode to its factors. The Car row doubles as the
// reference vehicle for CO2-saved computations.
type Coefficients map[Mode]Coefficient

// DefaultCoefficients returns the standard coefficient table.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		Walking:         {CO2GramsPerKm: 0, PointsPerKm: 15},
		Cycling:         {CO2GramsPerKm: 0, PointsPerKm: 12},
		PublicTransport: {CO2GramsPerKm: 68, PointsPerKm: 8},
		Carpool:         {CO2GramsPerKm: 85, PointsPerKm: 5},
		Car:             {CO2GramsPerKm: 170, PointsPerKm: 0},
		Unknown:         {CO2GramsPerKm: 170, PointsPerKm: 0},
	}
}

// Points returns the points earned for distanceKm traveled by mode,
// floor of the float product.
func (c Coefficients) Points(mode Mode, distanceKm float64) int {
	return int(math.Floor(distanceKm * c[mode].PointsPerKm))
}

// CO2SavedKg returns kilograms of CO2 saved relative to the reference car,
// clamped to zero for modes that emit at least as much.
func (c Coefficients) CO2SavedKg(mode Mode, distanceKm float64) float64 {
	saved := distanceKm * (c[Car].CO2GramsPerKm - c[mode].CO2GramsPerKm) / 1000.0
	if saved < 0 {
		return 0
	}
	return saved
}
