package postgres

import (
	"database/sql"
	"time"
)

type rankingTableModel struct {
	PlayerID string        `db:"player_id"`
	Date     time.Time     `db:"ranking_date"`
	Rank     int           `db:"rank"`
	Points   sql.NullInt64 `db:"points"`
}
