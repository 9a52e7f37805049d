package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennis-players/internal/domain/ranking"
	qb "github.com/riskibarqy/tennis-players/internal/platform/querybuilder"
)

type RankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

func (r *RankingRepository) ListByPlayer(ctx context.Context, playerID string) ([]ranking.Ranking, error) {
	query, args, err := qb.Select("player_id", "ranking_date", "rank", "points").
		From("rankings").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("ranking_date DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rankings query: %w", err)
	}

	var rows []rankingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rankings by player: %w", err)
	}

	out := make([]ranking.Ranking, 0, len(rows))
	for _, row := range rows {
		out = append(out, ranking.Ranking{
			PlayerID: row.PlayerID,
			Date:     row.Date,
			Rank:     row.Rank,
			Points:   int(row.Points.Int64),
		})
	}
	return out, nil
}
