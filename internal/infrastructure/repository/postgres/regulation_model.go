package postgres

import (
	"fmt"
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
)

type regulationTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	SeasonPublicID string     `db:"season_public_id"`
	Kind           string     `db:"kind"`
	Rules          []byte     `db:"rules"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type regulationInsertModel struct {
	PublicID       string `db:"public_id"`
	SeasonPublicID string `db:"season_public_id"`
	Kind           string `db:"kind"`
	Rules          []byte `db:"rules"`
}

type ageRulesPayload struct {
	MinAge            int `json:"minAge"`
	MaxAge            int `json:"maxAge"`
	MaxPlayers        int `json:"maxPlayers"`
	MaxForeignPlayers int `json:"maxForeignPlayers"`
}

type matchRulesPayload struct {
	Rounds        int `json:"rounds"`
	MatchesPerDay int `json:"matchesPerDay"`
}

type goalRulesPayload struct {
	GoalTypes []string `json:"goalTypes"`
	MaxMinute int      `json:"maxMinute"`
}

type rankingRulesPayload struct {
	WinPoints       int      `json:"winPoints"`
	DrawPoints      int      `json:"drawPoints"`
	LosePoints      int      `json:"losePoints"`
	RankingCriteria []string `json:"rankingCriteria"`
}

func encodeRegulationRules(item regulation.Regulation) ([]byte, error) {
	switch item.Kind {
	case regulation.KindAgeRules:
		if item.Age == nil {
			return nil, fmt.Errorf("age rules payload is required")
		}
		return encodeJSON(ageRulesPayload{
			MinAge:            item.Age.MinAge,
			MaxAge:            item.Age.MaxAge,
			MaxPlayers:        item.Age.MaxPlayers,
			MaxForeignPlayers: item.Age.MaxForeignPlayers,
		})
	case regulation.KindMatchRules:
		if item.Match == nil {
			return nil, fmt.Errorf("match rules payload is required")
		}
		return encodeJSON(matchRulesPayload{
			Rounds:        item.Match.Rounds,
			MatchesPerDay: item.Match.MatchesPerDay,
		})
	case regulation.KindGoalRules:
		if item.Goal == nil {
			return nil, fmt.Errorf("goal rules payload is required")
		}
		return encodeJSON(goalRulesPayload{
			GoalTypes: item.Goal.GoalTypes,
			MaxMinute: item.Goal.MaxMinute,
		})
	case regulation.KindRankingRules:
		if item.Ranking == nil {
			return nil, fmt.Errorf("ranking rules payload is required")
		}
		return encodeJSON(rankingRulesPayload{
			WinPoints:       item.Ranking.WinPoints,
			DrawPoints:      item.Ranking.DrawPoints,
			LosePoints:      item.Ranking.LosePoints,
			RankingCriteria: item.Ranking.RankingCriteria,
		})
	default:
		return nil, fmt.Errorf("unknown regulation kind %q", item.Kind)
	}
}

func (m regulationTableModel) toDomain() (regulation.Regulation, error) {
	out := regulation.Regulation{
		ID:       m.PublicID,
		SeasonID: m.SeasonPublicID,
		Kind:     m.Kind,
	}

	switch m.Kind {
	case regulation.KindAgeRules:
		var payload ageRulesPayload
		if err := decodeJSON(m.Rules, &payload); err != nil {
			return regulation.Regulation{}, err
		}
		out.Age = &regulation.AgeRules{
			MinAge:            payload.MinAge,
			MaxAge:            payload.MaxAge,
			MaxPlayers:        payload.MaxPlayers,
			MaxForeignPlayers: payload.MaxForeignPlayers,
		}
	case regulation.KindMatchRules:
		var payload matchRulesPayload
		if err := decodeJSON(m.Rules, &payload); err != nil {
			return regulation.Regulation{}, err
		}
		out.Match = &regulation.MatchRules{
			Rounds:        payload.Rounds,
			MatchesPerDay: payload.MatchesPerDay,
		}
	case regulation.KindGoalRules:
		var payload goalRulesPayload
		if err := decodeJSON(m.Rules, &payload); err != nil {
			return regulation.Regulation{}, err
		}
		out.Goal = &regulation.GoalRules{
			GoalTypes: payload.GoalTypes,
			MaxMinute: payload.MaxMinute,
		}
	case regulation.KindRankingRules:
		var payload rankingRulesPayload
		if err := decodeJSON(m.Rules, &payload); err != nil {
			return regulation.Regulation{}, err
		}
		out.Ranking = &regulation.RankingRules{
			WinPoints:       payload.WinPoints,
			DrawPoints:      payload.DrawPoints,
			LosePoints:      payload.LosePoints,
			RankingCriteria: payload.RankingCriteria,
		}
	default:
		return regulation.Regulation{}, fmt.Errorf("unknown regulation kind %q", m.Kind)
	}

	return out, nil
}
