package season

import (
	"fmt"
	"time"
)

// Season is one competition year of the league.
type Season struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Active    bool
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return fmt.Errorf("season start and end dates are required")
	}
	if s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("season end date is before start date")
	}

	return nil
}

// Patch carries the optional fields of a partial season update. Nil means
// "leave unchanged".
type Patch struct {
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	Active    *bool
}

func (p Patch) Apply(s Season) Season {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		s.EndDate = *p.EndDate
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
	return s
}
