package match

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusFinished  = "FINISHED"
)

// Match is one fixture between two teams of a season.
type Match struct {
	ID         string
	SeasonID   string
	HomeTeamID string
	AwayTeamID string
	Date       time.Time
	Stadium    string
	Score      string
	Status     string
	Goals      []GoalEvent
}

// GoalEvent is one scored goal inside a match.
type GoalEvent struct {
	PlayerID string `json:"player_id"`
	Minute   int    `json:"minute"`
	GoalType string `json:"goal_type"`
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.SeasonID == "" {
		return fmt.Errorf("match season id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match team ids are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match teams must differ")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match date is required")
	}

	return nil
}

func (m Match) IsFinished() bool {
	return m.Status == StatusFinished
}

// ParseScore splits a "X-Y" score string into home and away goal counts.
func ParseScore(score string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(score), "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("score %q is not in X-Y format", score)
	}

	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || home < 0 {
		return 0, 0, fmt.Errorf("score %q has an invalid home goal count", score)
	}
	away, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || away < 0 {
		return 0, 0, fmt.Errorf("score %q has an invalid away goal count", score)
	}

	return home, away, nil
}

// FormatScore renders goal counts as the canonical "X-Y" score string.
func FormatScore(home, away int) string {
	return strconv.Itoa(home) + "-" + strconv.Itoa(away)
}
