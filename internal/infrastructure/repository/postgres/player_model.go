package postgres

import (
	"database/sql"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/player"
)

type playerTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	TeamPublicID string         `db:"team_public_id"`
	Name         string         `db:"name"`
	BirthDate    time.Time      `db:"birth_date"`
	Nationality  sql.NullString `db:"nationality"`
	Position     string         `db:"position"`
	IsForeign    bool           `db:"is_foreign"`
	ShirtNumber  int            `db:"shirt_number"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID     string    `db:"public_id"`
	TeamPublicID string    `db:"team_public_id"`
	Name         string    `db:"name"`
	BirthDate    time.Time `db:"birth_date"`
	Nationality  string    `db:"nationality"`
	Position     string    `db:"position"`
	IsForeign    bool      `db:"is_foreign"`
	ShirtNumber  int       `db:"shirt_number"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.PublicID,
		TeamID:      m.TeamPublicID,
		Name:        m.Name,
		BirthDate:   m.BirthDate,
		Nationality: m.Nationality.String,
		Position:    m.Position,
		IsForeign:   m.IsForeign,
		ShirtNumber: m.ShirtNumber,
	}
}
