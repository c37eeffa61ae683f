package team

import "fmt"

// Team is a club registered for one season.
type Team struct {
	ID       string
	SeasonID string
	Name     string
	Stadium  string
	Coach    string
	LogoURL  string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.SeasonID == "" {
		return fmt.Errorf("team season id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Patch carries optional fields of a partial team update.
type Patch struct {
	Name    *string
	Stadium *string
	Coach   *string
	LogoURL *string
}

func (p Patch) Apply(t Team) Team {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Stadium != nil {
		t.Stadium = *p.Stadium
	}
	if p.Coach != nil {
		t.Coach = *p.Coach
	}
	if p.LogoURL != nil {
		t.LogoURL = *p.LogoURL
	}
	return t
}
