package regulation

import (
	"errors"
	"fmt"
	"strings"
)

const (
	KindAgeRules     = "ageRules"
	KindMatchRules   = "matchRules"
	KindGoalRules    = "goalRules"
	KindRankingRules = "rankingRules"
)

// Ranking criteria vocabulary for rankingRules.
const (
	CriterionPoints           = "points"
	CriterionGoalsDifference  = "goalsDifference"
	CriterionHeadToHeadPoints = "headToHeadPoints"
	CriterionGoalsForAway     = "goalsForAway"
)

var ErrUnknownCriterion = errors.New("unknown ranking criterion")

// Regulation is a season-scoped rule document. Exactly one of the payload
// pointers matching Kind is set.
type Regulation struct {
	ID       string
	SeasonID string
	Kind     string
	Age      *AgeRules
	Match    *MatchRules
	Goal     *GoalRules
	Ranking  *RankingRules
}

// AgeRules constrains roster composition at player creation time.
type AgeRules struct {
	MinAge            int
	MaxAge            int
	MaxPlayers        int
	MaxForeignPlayers int
}

// MatchRules drives the round-robin schedule generator.
type MatchRules struct {
	Rounds        int
	MatchesPerDay int
}

// GoalRules constrains recorded goal events.
type GoalRules struct {
	GoalTypes []string
	MaxMinute int
}

// RankingRules configures the standings comparator.
type RankingRules struct {
	WinPoints       int
	DrawPoints      int
	LosePoints      int
	RankingCriteria []string
}

func IsKnownKind(kind string) bool {
	switch kind {
	case KindAgeRules, KindMatchRules, KindGoalRules, KindRankingRules:
		return true
	default:
		return false
	}
}

func (r Regulation) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("regulation id is required")
	}
	if r.SeasonID == "" {
		return fmt.Errorf("regulation season id is required")
	}
	if !IsKnownKind(r.Kind) {
		return fmt.Errorf("unknown regulation kind %q", r.Kind)
	}

	switch r.Kind {
	case KindAgeRules:
		if r.Age == nil {
			return fmt.Errorf("age rules payload is required")
		}
		return r.Age.Validate()
	case KindMatchRules:
		if r.Match == nil {
			return fmt.Errorf("match rules payload is required")
		}
		return r.Match.Validate()
	case KindGoalRules:
		if r.Goal == nil {
			return fmt.Errorf("goal rules payload is required")
		}
		return r.Goal.Validate()
	case KindRankingRules:
		if r.Ranking == nil {
			return fmt.Errorf("ranking rules payload is required")
		}
		return r.Ranking.Validate()
	}

	return nil
}

func (a AgeRules) Validate() error {
	if a.MinAge < 0 || a.MaxAge < a.MinAge {
		return fmt.Errorf("age range [%d, %d] is invalid", a.MinAge, a.MaxAge)
	}
	if a.MaxPlayers < 1 {
		return fmt.Errorf("max players must be positive")
	}
	if a.MaxForeignPlayers < 0 || a.MaxForeignPlayers > a.MaxPlayers {
		return fmt.Errorf("max foreign players must be between 0 and max players")
	}
	return nil
}

func (m MatchRules) Validate() error {
	if m.Rounds < 1 {
		return fmt.Errorf("rounds must be positive")
	}
	if m.MatchesPerDay < 1 {
		return fmt.Errorf("matches per day must be positive")
	}
	return nil
}

func (g GoalRules) Validate() error {
	if len(g.GoalTypes) == 0 {
		return fmt.Errorf("at least one goal type is required")
	}
	for _, goalType := range g.GoalTypes {
		if strings.TrimSpace(goalType) == "" {
			return fmt.Errorf("goal type cannot be blank")
		}
	}
	if g.MaxMinute < 1 {
		return fmt.Errorf("max minute must be positive")
	}
	return nil
}

func (g GoalRules) AllowsType(goalType string) bool {
	for _, item := range g.GoalTypes {
		if item == goalType {
			return true
		}
	}
	return false
}

func (r RankingRules) Validate() error {
	if len(r.RankingCriteria) == 0 {
		return fmt.Errorf("ranking criteria are required")
	}
	for _, criterion := range r.RankingCriteria {
		switch criterion {
		case CriterionPoints, CriterionGoalsDifference, CriterionHeadToHeadPoints, CriterionGoalsForAway:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownCriterion, criterion)
		}
	}
	return nil
}

// PointsFor maps a goal balance to the configured points for one team.
func (r RankingRules) PointsFor(goalsFor, goalsAgainst int) int {
	switch {
	case goalsFor > goalsAgainst:
		return r.WinPoints
	case goalsFor == goalsAgainst:
		return r.DrawPoints
	default:
		return r.LosePoints
	}
}
