package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/tennis-players/internal/domain/player"
)

type PlayerRepository struct {
	mu       sync.RWMutex
	players  map[string]player.Player
	rankings *RankingRepository
}

// NewPlayerRepository keeps players in memory; rankings, when set, feed the
// best rank of listing rows.
func NewPlayerRepository(players []player.Player, rankings *RankingRepository) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}

	return &PlayerRepository{
		players:  index,
		rankings: rankings,
	}
}

func (r *PlayerRepository) List(_ context.Context, query player.ListQuery) ([]player.Summary, error) {
	r.mu.RLock()
	matched := r.filterLocked(query.LastNameContains)
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch {
		case a.BirthDate.IsZero() != b.BirthDate.IsZero():
			return !a.BirthDate.IsZero()
		case !a.BirthDate.Equal(b.BirthDate):
			return a.BirthDate.After(b.BirthDate)
		default:
			return a.ID < b.ID
		}
	})

	start := min(max(query.Offset, 0), len(matched))
	end := len(matched)
	if query.Limit > 0 {
		end = min(start+query.Limit, len(matched))
	}

	out := make([]player.Summary, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, player.Summary{Player: p, BestRank: r.rankings.bestRank(p.ID)})
	}
	return out, nil
}

func (r *PlayerRepository) Count(_ context.Context, lastNameContains string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filterLocked(lastNameContains)), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[item.ID]; exists {
		return fmt.Errorf("insert player id=%s: %w", item.ID, player.ErrAlreadyExists)
	}
	r.players[item.ID] = item
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, playerID string, patch player.Patch) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	updated := patch.Apply(current)
	r.players[playerID] = updated
	return updated, true, nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return false, nil
	}
	delete(r.players, playerID)
	r.rankings.deleteByPlayer(playerID)
	return true, nil
}

func (r *PlayerRepository) Backfill(_ context.Context, playerID string, patch player.Patch) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.players[playerID]
	if !ok {
		return player.Player{}, false, nil
	}
	updated := patch.FillGaps(current)
	r.players[playerID] = updated
	return updated, true, nil
}

func (r *PlayerRepository) filterLocked(lastNameContains string) []player.Player {
	term := strings.ToLower(strings.TrimSpace(lastNameContains))
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if term != "" && !strings.Contains(strings.ToLower(p.LastName), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}
