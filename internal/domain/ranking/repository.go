package ranking

import "context"

// Repository is read-only; rankings are loaded by imports outside this service.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID string) ([]Ranking, error)
}
