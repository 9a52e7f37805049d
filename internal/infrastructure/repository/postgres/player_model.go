package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/tennis-players/internal/domain/player"
)

type playerTableModel struct {
	ID         string          `db:"id"`
	FirstName  sql.NullString  `db:"name_first"`
	LastName   sql.NullString  `db:"name_last"`
	FullName   sql.NullString  `db:"fullname"`
	Hand       sql.NullString  `db:"hand"`
	BirthDate  sql.NullTime    `db:"birth_date"`
	Country    sql.NullString  `db:"country"`
	HeightCM   sql.NullFloat64 `db:"height_cm"`
	WeightKG   sql.NullFloat64 `db:"weight_kg"`
	WikidataID sql.NullString  `db:"wikidata_id"`
	Instagram  sql.NullString  `db:"instagram"`
	Facebook   sql.NullString  `db:"facebook"`
	XTwitter   sql.NullString  `db:"x_twitter"`
	ProSince   sql.NullInt32   `db:"pro_since"`
}

type playerSummaryRow struct {
	playerTableModel
	BestRank sql.NullInt64 `db:"best_rank"`
}

type playerInsertModel struct {
	ID         string     `db:"id"`
	FirstName  *string    `db:"name_first"`
	LastName   *string    `db:"name_last"`
	FullName   *string    `db:"fullname"`
	Hand       *string    `db:"hand"`
	BirthDate  *time.Time `db:"birth_date"`
	Country    *string    `db:"country"`
	HeightCM   *float64   `db:"height_cm"`
	WeightKG   *float64   `db:"weight_kg"`
	WikidataID *string    `db:"wikidata_id"`
	Instagram  *string    `db:"instagram"`
	Facebook   *string    `db:"facebook"`
	XTwitter   *string    `db:"x_twitter"`
	ProSince   *int       `db:"pro_since"`
}

var playerColumns = []string{
	"id",
	"name_first",
	"name_last",
	"fullname",
	"hand",
	"birth_date",
	"country",
	"height_cm",
	"weight_kg",
	"wikidata_id",
	"instagram",
	"facebook",
	"x_twitter",
	"pro_since",
}

func playerFromRow(row playerTableModel) player.Player {
	out := player.Player{
		ID:         row.ID,
		FirstName:  stringOrEmpty(row.FirstName),
		LastName:   stringOrEmpty(row.LastName),
		FullName:   stringOrEmpty(row.FullName),
		Hand:       player.Hand(stringOrEmpty(row.Hand)),
		Country:    stringOrEmpty(row.Country),
		WikidataID: stringOrEmpty(row.WikidataID),
		Instagram:  stringOrEmpty(row.Instagram),
		Facebook:   stringOrEmpty(row.Facebook),
		XTwitter:   stringOrEmpty(row.XTwitter),
	}
	if row.BirthDate.Valid {
		out.BirthDate = row.BirthDate.Time
	}
	if row.HeightCM.Valid {
		out.HeightCM = row.HeightCM.Float64
	}
	if row.WeightKG.Valid {
		out.WeightKG = row.WeightKG.Float64
	}
	if row.ProSince.Valid {
		out.ProSince = int(row.ProSince.Int32)
	}
	return out
}

func playerToInsertModel(item player.Player) playerInsertModel {
	return playerInsertModel{
		ID:         item.ID,
		FirstName:  nullableString(item.FirstName),
		LastName:   nullableString(item.LastName),
		FullName:   nullableString(item.FullName),
		Hand:       nullableString(string(item.Hand)),
		BirthDate:  nullableDate(item.BirthDate),
		Country:    nullableString(item.Country),
		HeightCM:   nullableFloat64(item.HeightCM),
		WeightKG:   nullableFloat64(item.WeightKG),
		WikidataID: nullableString(item.WikidataID),
		Instagram:  nullableString(item.Instagram),
		Facebook:   nullableString(item.Facebook),
		XTwitter:   nullableString(item.XTwitter),
		ProSince:   nullableInt(item.ProSince),
	}
}

// patchColumn is one column touched by a player.Patch, with its NULL-mapped
// value.
type patchColumn struct {
	name  string
	value any
}

func patchColumns(patch player.Patch) []patchColumn {
	var out []patchColumn
	addString := func(name string, v *string) {
		if v != nil {
			out = append(out, patchColumn{name: name, value: nullableString(*v)})
		}
	}

	addString("name_first", patch.FirstName)
	addString("name_last", patch.LastName)
	addString("fullname", patch.FullName)
	if patch.Hand != nil {
		out = append(out, patchColumn{name: "hand", value: nullableString(string(*patch.Hand))})
	}
	if patch.BirthDate != nil {
		out = append(out, patchColumn{name: "birth_date", value: nullableDate(*patch.BirthDate)})
	}
	addString("country", patch.Country)
	if patch.HeightCM != nil {
		out = append(out, patchColumn{name: "height_cm", value: nullableFloat64(*patch.HeightCM)})
	}
	if patch.WeightKG != nil {
		out = append(out, patchColumn{name: "weight_kg", value: nullableFloat64(*patch.WeightKG)})
	}
	addString("wikidata_id", patch.WikidataID)
	addString("instagram", patch.Instagram)
	addString("facebook", patch.Facebook)
	addString("x_twitter", patch.XTwitter)
	if patch.ProSince != nil {
		out = append(out, patchColumn{name: "pro_since", value: nullableInt(*patch.ProSince)})
	}
	return out
}
