package postgres

import (
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/result"
)

type teamResultTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	TeamPublicID   string     `db:"team_public_id"`
	SeasonPublicID string     `db:"season_public_id"`
	ResultDate     time.Time  `db:"result_date"`
	Played         int        `db:"played"`
	Won            int        `db:"won"`
	Drawn          int        `db:"drawn"`
	Lost           int        `db:"lost"`
	GoalsFor       int        `db:"goals_for"`
	GoalsAgainst   int        `db:"goals_against"`
	GoalDifference int        `db:"goal_difference"`
	Points         int        `db:"points"`
	AwayGoals      int        `db:"away_goals"`
	HeadToHead     []byte     `db:"head_to_head"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type teamResultInsertModel struct {
	PublicID       string    `db:"public_id"`
	TeamPublicID   string    `db:"team_public_id"`
	SeasonPublicID string    `db:"season_public_id"`
	ResultDate     time.Time `db:"result_date"`
	Played         int       `db:"played"`
	Won            int       `db:"won"`
	Drawn          int       `db:"drawn"`
	Lost           int       `db:"lost"`
	GoalsFor       int       `db:"goals_for"`
	GoalsAgainst   int       `db:"goals_against"`
	GoalDifference int       `db:"goal_difference"`
	Points         int       `db:"points"`
	AwayGoals      int       `db:"away_goals"`
	HeadToHead     []byte    `db:"head_to_head"`
}

func (m teamResultTableModel) toDomain() (result.TeamResult, error) {
	headToHead := make(map[string]int)
	if err := decodeJSON(m.HeadToHead, &headToHead); err != nil {
		return result.TeamResult{}, err
	}

	return result.TeamResult{
		ID:             m.PublicID,
		TeamID:         m.TeamPublicID,
		SeasonID:       m.SeasonPublicID,
		Date:           m.ResultDate,
		Played:         m.Played,
		Won:            m.Won,
		Drawn:          m.Drawn,
		Lost:           m.Lost,
		GoalsFor:       m.GoalsFor,
		GoalsAgainst:   m.GoalsAgainst,
		GoalDifference: m.GoalDifference,
		Points:         m.Points,
		AwayGoals:      m.AwayGoals,
		HeadToHead:     headToHead,
	}, nil
}

type playerResultTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	PlayerPublicID string     `db:"player_public_id"`
	SeasonPublicID string     `db:"season_public_id"`
	ResultDate     time.Time  `db:"result_date"`
	Played         int        `db:"played"`
	Goals          int        `db:"goals"`
	Assists        int        `db:"assists"`
	YellowCards    int        `db:"yellow_cards"`
	RedCards       int        `db:"red_cards"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type playerResultInsertModel struct {
	PublicID       string    `db:"public_id"`
	PlayerPublicID string    `db:"player_public_id"`
	SeasonPublicID string    `db:"season_public_id"`
	ResultDate     time.Time `db:"result_date"`
	Played         int       `db:"played"`
	Goals          int       `db:"goals"`
	Assists        int       `db:"assists"`
	YellowCards    int       `db:"yellow_cards"`
	RedCards       int       `db:"red_cards"`
}

func (m playerResultTableModel) toDomain() result.PlayerResult {
	return result.PlayerResult{
		ID:          m.PublicID,
		PlayerID:    m.PlayerPublicID,
		SeasonID:    m.SeasonPublicID,
		Date:        m.ResultDate,
		Played:      m.Played,
		Goals:       m.Goals,
		Assists:     m.Assists,
		YellowCards: m.YellowCards,
		RedCards:    m.RedCards,
	}
}
