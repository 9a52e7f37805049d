package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/tennis-players/internal/domain/ranking"
)

type RankingRepository struct {
	mu       sync.RWMutex
	byPlayer map[string][]ranking.Ranking
}

func NewRankingRepository(items []ranking.Ranking) *RankingRepository {
	byPlayer := make(map[string][]ranking.Ranking)
	for _, item := range items {
		byPlayer[item.PlayerID] = append(byPlayer[item.PlayerID], item)
	}
	for _, list := range byPlayer {
		sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	}

	return &RankingRepository{byPlayer: byPlayer}
}

func (r *RankingRepository) ListByPlayer(_ context.Context, playerID string) ([]ranking.Ranking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byPlayer[playerID]
	out := make([]ranking.Ranking, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *RankingRepository) bestRank(playerID string) int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := 0
	for _, item := range r.byPlayer[playerID] {
		if best == 0 || item.Rank < best {
			best = item.Rank
		}
	}
	return best
}

func (r *RankingRepository) deleteByPlayer(playerID string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byPlayer, playerID)
}
