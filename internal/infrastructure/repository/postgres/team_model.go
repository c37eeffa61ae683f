package postgres

import (
	"database/sql"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/team"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	SeasonPublicID string         `db:"season_public_id"`
	Name           string         `db:"name"`
	Stadium        sql.NullString `db:"stadium"`
	Coach          sql.NullString `db:"coach"`
	LogoURL        sql.NullString `db:"logo_url"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID       string `db:"public_id"`
	SeasonPublicID string `db:"season_public_id"`
	Name           string `db:"name"`
	Stadium        string `db:"stadium"`
	Coach          string `db:"coach"`
	LogoURL        string `db:"logo_url"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:       m.PublicID,
		SeasonID: m.SeasonPublicID,
		Name:     m.Name,
		Stadium:  m.Stadium.String,
		Coach:    m.Coach.String,
		LogoURL:  m.LogoURL.String,
	}
}
