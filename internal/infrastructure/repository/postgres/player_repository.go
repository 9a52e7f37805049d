package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennis-players/internal/domain/player"
	qb "github.com/riskibarqy/tennis-players/internal/platform/querybuilder"
)

// legacyBirthDateSQL matches the placeholder written by older imports.
const legacyBirthDateSQL = "DATE '1800-01-01'"

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, query player.ListQuery) ([]player.Summary, error) {
	columns := make([]string, 0, len(playerColumns)+1)
	for _, col := range playerColumns {
		columns = append(columns, "p."+col)
	}
	columns = append(columns, "MIN(r.rank) AS best_rank")

	sqlQuery, args, err := qb.Select(columns...).
		From("players p").
		LeftJoin("rankings r", "r.player_id = p.id").
		Where(lastNameFilter("p.name_last", query.LastNameContains)...).
		GroupBy("p.id").
		OrderBy("p.birth_date DESC NULLS LAST", "p.id").
		Limit(query.Limit).
		Offset(query.Offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerSummaryRow
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Summary, 0, len(rows))
	for _, row := range rows {
		item := player.Summary{Player: playerFromRow(row.playerTableModel)}
		if row.BestRank.Valid {
			item.BestRank = int(row.BestRank.Int64)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *PlayerRepository) Count(ctx context.Context, lastNameContains string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From("players").
		Where(lastNameFilter("name_last", lastNameContains)...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return total, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", playerToInsertModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert player id=%s: %w", item.ID, player.ErrAlreadyExists)
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, playerID string, patch player.Patch) (player.Player, bool, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, playerID)
	}
	query, args, err := updateQuery(playerID, patch)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build update player query: %w", err)
	}
	return r.updateReturning(ctx, query, args, "update player")
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) (bool, error) {
	query, args, err := qb.DeleteFrom("players").Where(qb.Eq("id", playerID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete player rows affected: %w", err)
	}
	return affected > 0, nil
}

// Backfill fills NULL columns only, so a concurrent manual edit always wins.
func (r *PlayerRepository) Backfill(ctx context.Context, playerID string, patch player.Patch) (player.Player, bool, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, playerID)
	}
	query, args, err := backfillQuery(playerID, patch)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build backfill player query: %w", err)
	}
	return r.updateReturning(ctx, query, args, "backfill player")
}

func updateQuery(playerID string, patch player.Patch) (string, []any, error) {
	builder := qb.Update("players")
	for _, col := range patchColumns(patch) {
		builder.Set(col.name, col.value)
	}
	return returningRow(builder, playerID)
}

// backfillQuery keeps every populated column. birth_date also counts as
// empty when it holds the legacy placeholder.
func backfillQuery(playerID string, patch player.Patch) (string, []any, error) {
	builder := qb.Update("players")
	for _, col := range patchColumns(patch) {
		if col.name == "birth_date" {
			builder.SetExpr(col.name,
				"CASE WHEN birth_date IS NULL OR birth_date = "+legacyBirthDateSQL+" THEN ? ELSE birth_date END",
				col.value)
			continue
		}
		builder.SetExpr(col.name, "COALESCE("+col.name+", ?)", col.value)
	}
	return returningRow(builder, playerID)
}

func returningRow(builder *qb.UpdateBuilder, playerID string) (string, []any, error) {
	return builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", playerID)).
		Suffix("RETURNING " + strings.Join(playerColumns, ", ")).
		ToSQL()
}

// updateReturning runs query against one row in its own transaction and
// returns the stored row.
func (r *PlayerRepository) updateReturning(ctx context.Context, query string, args []any, op string) (player.Player, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("begin tx %s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var row playerTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return player.Player{}, false, fmt.Errorf("commit %s: %w", op, err)
	}
	return playerFromRow(row), true, nil
}

func lastNameFilter(column, term string) []qb.Condition {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return []qb.Condition{qb.ContainsFold(column, term)}
}
