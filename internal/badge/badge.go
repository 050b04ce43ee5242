package badge

import "backend-passiverdi/internal/transport"

type Category string

const (
	CategoryDistance      Category = "distance"
	CategoryPoints        Category = "points"
	CategoryActivityCount Category = "activity_count"
	CategoryStreak        Category = "streak"
	CategorySpecial       Category = "special"
)

// Definition is a static catalog entry describing one unlockable badge.
type Definition struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    Category       `json:"category"`
	Requirement float64        `json:"requirement"`
	ModeFilter  transport.Mode `json:"mode_filter,omitempty"` // activity_count only
}

// Catalog returns the full badge catalog. Loaded once at startup; definitions
// are immutable.
func Catalog() []Definition {
	return []Definition{
		{ID: "first_step", Name: "First Step", Description: "Complete your first activity", Category: CategorySpecial, Requirement: 1},
		{ID: "eco_explorer", Name: "Eco Explorer", Description: "Cover 50 sustainable kilometers", Category: CategoryDistance, Requirement: 50},
		{ID: "bike_hero", Name: "Bike Hero", Description: "Ride 100 kilometers by bicycle", Category: CategoryActivityCount, Requirement: 100, ModeFilter: transport.Cycling},
		{ID: "walking_master", Name: "Walking Master", Description: "Walk 100 kilometers", Category: CategoryActivityCount, Requirement: 100, ModeFilter: transport.Walking},
		{ID: "week_warrior", Name: "Week Warrior", Description: "7 consecutive days of green mobility", Category: CategoryStreak, Requirement: 7},
		{ID: "month_champion", Name: "Month Champion", Description: "30 consecutive days of green mobility", Category: CategoryStreak, Requirement: 30},
		{ID: "co2_saver", Name: "CO2 Saver", Description: "Save 100 kg of CO2", Category: CategorySpecial, Requirement: 100},
		{ID: "public_transport_fan", Name: "Public Transport Fan", Description: "Cover 50 kilometers by public transport", Category: CategoryActivityCount, Requirement: 50, ModeFilter: transport.PublicTransport},
		{ID: "point_collector", Name: "Point Collector", Description: "Earn 1000 green points", Category: CategoryPoints, Requirement: 1000},
	}
}
