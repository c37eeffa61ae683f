package ranking

import "time"

// Ranking is one dated table row derived from a TeamResult snapshot.
type Ranking struct {
	ID           string
	SeasonID     string
	TeamID       string
	TeamResultID string
	Rank         int
	Date         time.Time
}

// PlayerRanking is one dated scorer-table row derived from a PlayerResult.
type PlayerRanking struct {
	ID             string
	SeasonID       string
	PlayerID       string
	PlayerResultID string
	Rank           int
	Date           time.Time
}
