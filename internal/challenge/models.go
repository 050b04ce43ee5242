package challenge

import "time"

type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
	TypeSpecial Type = "special"
)

// Challenge is a time-boxed goal that credits reward points on completion.
type Challenge struct {
	ID           string    `json:"id"`
	PlayerID     string    `json:"player_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Type         Type      `json:"type"`
	TargetValue  int       `json:"target_value"`
	CurrentValue int       `json:"current_value"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Reward       int       `json:"reward"`
	IsCompleted  bool      `json:"is_completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// Progress is the completion fraction in [0,1].
func (c Challenge) Progress() float64 {
	if c.TargetValue <= 0 {
		return 0
	}
	p := float64(c.CurrentValue) / float64(c.TargetValue)
	if p > 1 {
		return 1
	}
	return p
}
