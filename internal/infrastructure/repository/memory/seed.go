package memory

import (
	"time"

	"github.com/riskibarqy/tennis-players/internal/domain/player"
	"github.com/riskibarqy/tennis-players/internal/domain/ranking"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SeedPlayers is the dev data set used with STORAGE_DRIVER=memory. Several
// rows are left incomplete on purpose so listing exercises the backfill.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "104925", FirstName: "Novak", LastName: "Djokovic", Hand: player.HandRight, BirthDate: date(1987, time.May, 22), Country: "rs", HeightCM: 188, WikidataID: "Q5812"},
		{ID: "104745", FirstName: "Rafael", LastName: "Nadal", Hand: player.HandLeft, BirthDate: date(1986, time.June, 3), Country: "es", HeightCM: 185},
		{ID: "103819", FirstName: "Roger", LastName: "Federer", Hand: player.HandRight, Country: "ch"},
		{ID: "207989", FirstName: "Carlos", LastName: "Alcaraz", Hand: player.HandRight, BirthDate: date(2003, time.May, 5)},
		{ID: "206173", FirstName: "Jannik", LastName: "Sinner", BirthDate: date(1800, time.January, 1)},
		{ID: "100644", FirstName: "Alexander", LastName: "Zverev", Hand: player.HandRight, Country: "de", HeightCM: 198},
	}
}

func SeedRankings() []ranking.Ranking {
	return []ranking.Ranking{
		{PlayerID: "104925", Date: date(2023, time.November, 20), Rank: 1, Points: 11245},
		{PlayerID: "104925", Date: date(2024, time.November, 18), Rank: 7, Points: 3910},
		{PlayerID: "104745", Date: date(2022, time.July, 4), Rank: 4, Points: 6525},
		{PlayerID: "207989", Date: date(2022, time.September, 12), Rank: 1, Points: 6740},
		{PlayerID: "206173", Date: date(2024, time.June, 10), Rank: 1, Points: 9480},
		{PlayerID: "100644", Date: date(2024, time.October, 28), Rank: 2, Points: 7135},
	}
}
