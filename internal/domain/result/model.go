package result

import (
	"fmt"
	"time"
)

// TeamResult is a dated cumulative statistics snapshot for one team. One row
// exists per (team, season, calendar day); a new day carries forward the most
// recent earlier row.
type TeamResult struct {
	ID             string
	TeamID         string
	SeasonID       string
	Date           time.Time
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	AwayGoals      int
	// HeadToHead accumulates points earned against each opponent, keyed by
	// opponent team id. Absent keys count as zero.
	HeadToHead map[string]int
}

// PlayerResult is the player-side analogue of TeamResult.
type PlayerResult struct {
	ID          string
	PlayerID    string
	SeasonID    string
	Date        time.Time
	Played      int
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

func (r TeamResult) Validate() error {
	if r.TeamID == "" || r.SeasonID == "" {
		return fmt.Errorf("team result team and season ids are required")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("team result date is required")
	}
	if r.GoalDifference != r.GoalsFor-r.GoalsAgainst {
		return fmt.Errorf("team result goal difference is inconsistent")
	}
	return nil
}

// HeadToHeadAgainst reports accumulated points against one opponent,
// defaulting to zero when the opponent was never met.
func (r TeamResult) HeadToHeadAgainst(opponentID string) int {
	if r.HeadToHead == nil {
		return 0
	}
	return r.HeadToHead[opponentID]
}

// CloneForDate copies a snapshot as the baseline for a new calendar day.
func (r TeamResult) CloneForDate(date time.Time) TeamResult {
	clone := r
	clone.ID = ""
	clone.Date = date
	clone.HeadToHead = make(map[string]int, len(r.HeadToHead))
	for opponentID, points := range r.HeadToHead {
		clone.HeadToHead[opponentID] = points
	}
	return clone
}

// CloneForDate copies a player snapshot as the baseline for a new day.
func (r PlayerResult) CloneForDate(date time.Time) PlayerResult {
	clone := r
	clone.ID = ""
	clone.Date = date
	return clone
}

// NormalizeDate truncates a timestamp to midnight UTC. Snapshots are keyed by
// calendar day, never by time of day.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
