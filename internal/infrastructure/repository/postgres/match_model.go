package postgres

import (
	"database/sql"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/match"
)

type matchTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	SeasonPublicID   string         `db:"season_public_id"`
	HomeTeamPublicID string         `db:"home_team_public_id"`
	AwayTeamPublicID string         `db:"away_team_public_id"`
	MatchDate        time.Time      `db:"match_date"`
	Stadium          sql.NullString `db:"stadium"`
	Score            sql.NullString `db:"score"`
	Status           string         `db:"status"`
	GoalDetails      []byte         `db:"goal_details"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID         string    `db:"public_id"`
	SeasonPublicID   string    `db:"season_public_id"`
	HomeTeamPublicID string    `db:"home_team_public_id"`
	AwayTeamPublicID string    `db:"away_team_public_id"`
	MatchDate        time.Time `db:"match_date"`
	Stadium          string    `db:"stadium"`
	Status           string    `db:"status"`
}

func (m matchTableModel) toDomain() (match.Match, error) {
	var goals []match.GoalEvent
	if err := decodeJSON(m.GoalDetails, &goals); err != nil {
		return match.Match{}, err
	}

	return match.Match{
		ID:         m.PublicID,
		SeasonID:   m.SeasonPublicID,
		HomeTeamID: m.HomeTeamPublicID,
		AwayTeamID: m.AwayTeamPublicID,
		Date:       m.MatchDate,
		Stadium:    m.Stadium.String,
		Score:      m.Score.String,
		Status:     m.Status,
		Goals:      goals,
	}, nil
}
