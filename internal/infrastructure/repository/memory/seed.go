package memory

import (
	"time"

	"github.com/rizkyfalih/league-manager/internal/domain/player"
	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
)

const SeasonIDVLeague2026 = "vleague-2026"

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:        SeasonIDVLeague2026,
			Name:      "V-League 2026",
			StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
			Active:    true,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "vl-hanoi", SeasonID: SeasonIDVLeague2026, Name: "Hanoi FC", Stadium: "Hang Day", Coach: "Le Duc Tuan"},
		{ID: "vl-hagl", SeasonID: SeasonIDVLeague2026, Name: "Hoang Anh Gia Lai", Stadium: "Pleiku", Coach: "Vu Tien Thanh"},
		{ID: "vl-viettel", SeasonID: SeasonIDVLeague2026, Name: "The Cong Viettel", Stadium: "My Dinh", Coach: "Nguyen Duc Thang"},
		{ID: "vl-binhdinh", SeasonID: SeasonIDVLeague2026, Name: "Binh Dinh FC", Stadium: "Quy Nhon", Coach: "Bui Doan Quang Huy"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "vl-hanoi-01", TeamID: "vl-hanoi", Name: "Nguyen Van Hoang", BirthDate: time.Date(1995, 3, 12, 0, 0, 0, 0, time.UTC), Nationality: "VN", Position: player.PositionGoalkeeper, ShirtNumber: 1},
		{ID: "vl-hanoi-10", TeamID: "vl-hanoi", Name: "Pham Tuan Hai", BirthDate: time.Date(1998, 5, 24, 0, 0, 0, 0, time.UTC), Nationality: "VN", Position: player.PositionForward, ShirtNumber: 10},
		{ID: "vl-hanoi-08", TeamID: "vl-hanoi", Name: "Do Hung Dung", BirthDate: time.Date(1993, 9, 8, 0, 0, 0, 0, time.UTC), Nationality: "VN", Position: player.PositionMidfielder, ShirtNumber: 8},
		{ID: "vl-hagl-01", TeamID: "vl-hagl", Name: "Tran Trung Kien", BirthDate: time.Date(2001, 1, 30, 0, 0, 0, 0, time.UTC), Nationality: "VN", Position: player.PositionGoalkeeper, ShirtNumber: 1},
		{ID: "vl-hagl-09", TeamID: "vl-hagl", Name: "Ryan Ha", BirthDate: time.Date(1997, 7, 2, 0, 0, 0, 0, time.UTC), Nationality: "AU", Position: player.PositionForward, IsForeign: true, ShirtNumber: 9},
		{ID: "vl-viettel-07", TeamID: "vl-viettel", Name: "Nguyen Hoang Duc", BirthDate: time.Date(1998, 1, 11, 0, 0, 0, 0, time.UTC), Nationality: "VN", Position: player.PositionMidfielder, ShirtNumber: 7},
		{ID: "vl-viettel-11", TeamID: "vl-viettel", Name: "Pedro Henrique", BirthDate: time.Date(1995, 11, 19, 0, 0, 0, 0, time.UTC), Nationality: "BR", Position: player.PositionForward, IsForeign: true, ShirtNumber: 11},
		{ID: "vl-binhdinh-04", TeamID: "vl-binhdinh", Name: "Do Van Thuan", BirthDate: time.Date(1996, 6, 15, 0, 0, 0, 0, time.UTC), Nationality: "VN", Position: player.PositionDefender, ShirtNumber: 4},
	}
}

func SeedRegulations() []regulation.Regulation {
	return []regulation.Regulation{
		{
			ID:       "vl-reg-age",
			SeasonID: SeasonIDVLeague2026,
			Kind:     regulation.KindAgeRules,
			Age: &regulation.AgeRules{
				MinAge:            16,
				MaxAge:            40,
				MaxPlayers:        22,
				MaxForeignPlayers: 3,
			},
		},
		{
			ID:       "vl-reg-match",
			SeasonID: SeasonIDVLeague2026,
			Kind:     regulation.KindMatchRules,
			Match: &regulation.MatchRules{
				Rounds:        2,
				MatchesPerDay: 2,
			},
		},
		{
			ID:       "vl-reg-goal",
			SeasonID: SeasonIDVLeague2026,
			Kind:     regulation.KindGoalRules,
			Goal: &regulation.GoalRules{
				GoalTypes: []string{"normal", "penalty", "own-goal"},
				MaxMinute: 120,
			},
		},
		{
			ID:       "vl-reg-ranking",
			SeasonID: SeasonIDVLeague2026,
			Kind:     regulation.KindRankingRules,
			Ranking: &regulation.RankingRules{
				WinPoints:  3,
				DrawPoints: 1,
				LosePoints: 0,
				RankingCriteria: []string{
					regulation.CriterionPoints,
					regulation.CriterionGoalsDifference,
					regulation.CriterionHeadToHeadPoints,
				},
			},
		},
	}
}
