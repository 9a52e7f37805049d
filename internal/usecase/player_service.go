package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/tennis-players/internal/domain/player"
	"github.com/riskibarqy/tennis-players/internal/domain/ranking"
	"github.com/riskibarqy/tennis-players/internal/platform/id"
	"github.com/riskibarqy/tennis-players/internal/platform/logging"
)

const (
	defaultPlayersPageSize = 10
	defaultPlayersMaxPage  = 30
	defaultEnrichWorkers   = 4
)

type PlayerServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	// EnrichWorkers bounds how many rows of one page are backfilled at once.
	// 1 backfills rows one after another.
	EnrichWorkers int
}

type ListPlayersInput struct {
	Page     int
	PerPage  int
	LastName string
}

type ListPlayersResult struct {
	Players []player.Summary
	Total   int
	Page    int
	PerPage int
	Pages   int
}

type PlayerService struct {
	playerRepo  player.Repository
	rankingRepo ranking.Repository
	enricher    PlayerEnricher
	ids         id.Generator
	cfg         PlayerServiceConfig
	logger      *logging.Logger
}

func NewPlayerService(
	playerRepo player.Repository,
	rankingRepo ranking.Repository,
	enricher PlayerEnricher,
	ids id.Generator,
	cfg PlayerServiceConfig,
	logger *logging.Logger,
) *PlayerService {
	if enricher == nil {
		enricher = NewNoopPlayerEnricher()
	}
	if ids == nil {
		ids = id.NewRandomGenerator(0)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = defaultPlayersMaxPage
	}
	if cfg.DefaultPageSize <= 0 || cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = min(defaultPlayersPageSize, cfg.MaxPageSize)
	}
	if cfg.EnrichWorkers <= 0 {
		cfg.EnrichWorkers = defaultEnrichWorkers
	}

	return &PlayerService{
		playerRepo:  playerRepo,
		rankingRepo: rankingRepo,
		enricher:    enricher,
		ids:         ids,
		cfg:         cfg,
		logger:      logger,
	}
}

// ListPlayers returns one page ordered by birth date, newest first. Rows with
// gaps are backfilled before they are returned.
func (s *PlayerService) ListPlayers(ctx context.Context, input ListPlayersInput) (ListPlayersResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	lastName := strings.TrimSpace(input.LastName)
	perPage := input.PerPage
	if perPage < 1 || perPage > s.cfg.MaxPageSize {
		perPage = s.cfg.DefaultPageSize
	}

	total, err := s.playerRepo.Count(ctx, lastName)
	if err != nil {
		return ListPlayersResult{}, fmt.Errorf("count players: %w", err)
	}
	pages := (total + perPage - 1) / perPage
	page := clampPage(input.Page, pages)

	rows, err := s.playerRepo.List(ctx, player.ListQuery{
		Offset:           (page - 1) * perPage,
		Limit:            perPage,
		LastNameContains: lastName,
	})
	if err != nil {
		return ListPlayersResult{}, fmt.Errorf("list players: %w", err)
	}

	if err := s.backfillRows(ctx, rows); err != nil {
		return ListPlayersResult{}, err
	}

	return ListPlayersResult{
		Players: rows,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
	}, nil
}

// GetPlayer returns a single player after trying to fill every unknown
// attribute.
func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	item, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	return s.backfill(ctx, item, backfillProfile), nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	patch, err := input.Fields.toPatch()
	if err != nil {
		return player.Player{}, err
	}

	playerID := strings.TrimSpace(input.ID)
	if player.IsPlaceholder(playerID) {
		playerID, err = s.ids.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
	}

	item := patch.Apply(player.Player{ID: playerID})
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		if errors.Is(err, player.ErrAlreadyExists) {
			return player.Player{}, fmt.Errorf("%w: player=%s", ErrConflict, playerID)
		}
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", playerID)
	return item, nil
}

// UpdatePlayer applies only the provided fields.
func (s *PlayerService) UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(input.ID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	patch, err := input.Fields.toPatch()
	if err != nil {
		return player.Player{}, err
	}
	if patch.IsEmpty() {
		return s.getPlayer(ctx, playerID)
	}

	item, exists, err := s.playerRepo.Update(ctx, playerID, patch)
	if err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeletePlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	deleted, err := s.playerRepo.Delete(ctx, playerID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", playerID)
	return nil
}

// ListRankings returns the ranking history of a player, newest first.
func (s *PlayerService) ListRankings(ctx context.Context, playerID string) ([]ranking.Ranking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListRankings")
	defer span.End()

	if _, err := s.getPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	items, err := s.rankingRepo.ListByPlayer(ctx, strings.TrimSpace(playerID))
	if err != nil {
		return nil, fmt.Errorf("list rankings: %w", err)
	}

	return items, nil
}

func (s *PlayerService) getPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}

// backfillRows fills listing gaps of every row in place, bounded by the
// configured worker count.
func (s *PlayerService) backfillRows(ctx context.Context, rows []player.Summary) error {
	workerCount := min(s.cfg.EnrichWorkers, len(rows))
	if workerCount <= 1 {
		for i := range rows {
			rows[i].Player = s.backfill(ctx, rows[i].Player, backfillListing)
		}
		return nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	var submitErr error
	for i := range rows {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			rows[i].Player = s.backfill(ctx, rows[i].Player, backfillListing)
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("submit backfill to worker pool: %w", err)
			break
		}
	}
	workers.Wait()

	return submitErr
}

// backfill commits what the enricher found for item and returns the stored
// row. Storage errors are logged and the row is returned as loaded.
func (s *PlayerService) backfill(ctx context.Context, item player.Player, scope backfillScope) player.Player {
	patch := planBackfill(ctx, s.enricher, item, scope)
	if patch.IsEmpty() {
		return item
	}

	stored, exists, err := s.playerRepo.Backfill(ctx, item.ID, patch)
	if err != nil {
		s.logger.ErrorContext(ctx, "commit player backfill failed", "player_id", item.ID, "error", err)
		return item
	}
	if !exists {
		s.logger.WarnContext(ctx, "player removed before backfill commit", "player_id", item.ID)
		return item
	}

	s.logger.DebugContext(ctx, "player backfilled", "player_id", item.ID, "wikidata_id", stored.WikidataID)
	return stored
}

func clampPage(page, pages int) int {
	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}
	return page
}
