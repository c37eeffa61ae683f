package player

import (
	"fmt"
	"time"
)

const (
	PositionGoalkeeper = "GK"
	PositionDefender   = "DF"
	PositionMidfielder = "MF"
	PositionForward    = "FW"
)

// Player is a squad member of one team.
type Player struct {
	ID          string
	TeamID      string
	Name        string
	BirthDate   time.Time
	Nationality string
	Position    string
	IsForeign   bool
	ShirtNumber int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.BirthDate.IsZero() {
		return fmt.Errorf("player birth date is required")
	}
	if !IsKnownPosition(p.Position) {
		return fmt.Errorf("unknown player position %q", p.Position)
	}
	if p.ShirtNumber < 1 || p.ShirtNumber > 99 {
		return fmt.Errorf("player shirt number must be between 1 and 99")
	}

	return nil
}

func IsKnownPosition(position string) bool {
	switch position {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	default:
		return false
	}
}

// AgeAt reports the player's age in whole years at the given date.
func (p Player) AgeAt(date time.Time) int {
	age := date.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(age, 0, 0)
	if anniversary.After(date) {
		age--
	}
	return age
}

// Patch carries optional fields of a partial player update.
type Patch struct {
	Name        *string
	Nationality *string
	Position    *string
	ShirtNumber *int
}

func (p Patch) Apply(item Player) Player {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Nationality != nil {
		item.Nationality = *p.Nationality
	}
	if p.Position != nil {
		item.Position = *p.Position
	}
	if p.ShirtNumber != nil {
		item.ShirtNumber = *p.ShirtNumber
	}
	return item
}
