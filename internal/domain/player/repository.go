package player

import "context"

// ListQuery selects one page of players.
type ListQuery struct {
	Offset int
	Limit  int
	// LastNameContains filters case-insensitively; empty means no filter.
	LastNameContains string
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, query ListQuery) ([]Summary, error)
	Count(ctx context.Context, lastNameContains string) (int, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, playerID string, patch Patch) (Player, bool, error)
	Delete(ctx context.Context, playerID string) (bool, error)
	// Backfill writes only the patch fields that are still unknown in storage
	// and returns the stored row afterwards. It reports false when the row is
	// gone.
	Backfill(ctx context.Context, playerID string, patch Patch) (Player, bool, error)
}
