package postgres

import (
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/ranking"
)

type rankingTableModel struct {
	ID                 int64      `db:"id"`
	PublicID           string     `db:"public_id"`
	SeasonPublicID     string     `db:"season_public_id"`
	TeamPublicID       string     `db:"team_public_id"`
	TeamResultPublicID string     `db:"team_result_public_id"`
	Rank               int        `db:"rank"`
	RankingDate        time.Time  `db:"ranking_date"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

type rankingInsertModel struct {
	PublicID           string    `db:"public_id"`
	SeasonPublicID     string    `db:"season_public_id"`
	TeamPublicID       string    `db:"team_public_id"`
	TeamResultPublicID string    `db:"team_result_public_id"`
	Rank               int       `db:"rank"`
	RankingDate        time.Time `db:"ranking_date"`
}

func (m rankingTableModel) toDomain() ranking.Ranking {
	return ranking.Ranking{
		ID:           m.PublicID,
		SeasonID:     m.SeasonPublicID,
		TeamID:       m.TeamPublicID,
		TeamResultID: m.TeamResultPublicID,
		Rank:         m.Rank,
		Date:         m.RankingDate,
	}
}

type playerRankingTableModel struct {
	ID                   int64      `db:"id"`
	PublicID             string     `db:"public_id"`
	SeasonPublicID       string     `db:"season_public_id"`
	PlayerPublicID       string     `db:"player_public_id"`
	PlayerResultPublicID string     `db:"player_result_public_id"`
	Rank                 int        `db:"rank"`
	RankingDate          time.Time  `db:"ranking_date"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
	DeletedAt            *time.Time `db:"deleted_at"`
}

type playerRankingInsertModel struct {
	PublicID             string    `db:"public_id"`
	SeasonPublicID       string    `db:"season_public_id"`
	PlayerPublicID       string    `db:"player_public_id"`
	PlayerResultPublicID string    `db:"player_result_public_id"`
	Rank                 int       `db:"rank"`
	RankingDate          time.Time `db:"ranking_date"`
}

func (m playerRankingTableModel) toDomain() ranking.PlayerRanking {
	return ranking.PlayerRanking{
		ID:             m.PublicID,
		SeasonID:       m.SeasonPublicID,
		PlayerID:       m.PlayerPublicID,
		PlayerResultID: m.PlayerResultPublicID,
		Rank:           m.Rank,
		Date:           m.RankingDate,
	}
}
