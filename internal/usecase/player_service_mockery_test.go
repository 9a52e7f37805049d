package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/tennis-players/internal/domain/player"
	playermock "github.com/riskibarqy/tennis-players/internal/mocks/domain/player"
	rankingmock "github.com/riskibarqy/tennis-players/internal/mocks/domain/ranking"
	"github.com/riskibarqy/tennis-players/internal/platform/logging"
)

func TestPlayerService_ListPlayers_BackfillCommitErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	rankingRepo := rankingmock.NewRepository(t)
	enricher := &fakeEnricher{
		entities: map[string]string{"Daniil Medvedev": "Q49"},
		profiles: map[string]fakeProfile{"Q49": {country: "ru"}},
	}
	svc := NewPlayerService(playerRepo, rankingRepo, enricher, nil, PlayerServiceConfig{EnrichWorkers: 1}, logging.NewNop())

	row := player.Summary{Player: player.Player{ID: "106421", FirstName: "Daniil", LastName: "Medvedev"}, BestRank: 1}

	playerRepo.On("Count", ctx, "").Return(1, nil).Once()
	playerRepo.
		On("List", ctx, player.ListQuery{Offset: 0, Limit: 10}).
		Return([]player.Summary{row}, nil).
		Once()
	playerRepo.
		On("Backfill", ctx, "106421", mock.MatchedBy(func(p player.Patch) bool {
			return p.WikidataID != nil && *p.WikidataID == "Q49" &&
				p.Country != nil && *p.Country == "ru" &&
				p.HeightCM == nil
		})).
		Return(player.Player{}, false, errors.New("connection reset")).
		Once()

	got, err := svc.ListPlayers(ctx, ListPlayersInput{Page: 1})
	if err != nil {
		t.Fatalf("expected listing to survive a failed backfill commit, got %v", err)
	}
	if len(got.Players) != 1 || got.Players[0].WikidataID != "" || got.Players[0].BestRank != 1 {
		t.Fatalf("expected row as loaded, got %+v", got.Players)
	}
}

func TestPlayerService_ListPlayers_CountErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	rankingRepo := rankingmock.NewRepository(t)
	svc := NewPlayerService(playerRepo, rankingRepo, nil, nil, PlayerServiceConfig{}, logging.NewNop())

	dbErr := errors.New("db down")
	playerRepo.On("Count", ctx, "nadal").Return(0, dbErr).Once()

	_, err := svc.ListPlayers(ctx, ListPlayersInput{Page: 1, LastName: " nadal "})
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPlayerService_ListRankings_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	rankingRepo := rankingmock.NewRepository(t)
	svc := NewPlayerService(playerRepo, rankingRepo, nil, nil, PlayerServiceConfig{}, logging.NewNop())

	dbErr := errors.New("statement timeout")
	playerRepo.On("GetByID", ctx, "104925").Return(player.Player{ID: "104925"}, true, nil).Once()
	rankingRepo.On("ListByPlayer", ctx, "104925").Return(nil, dbErr).Once()

	_, err := svc.ListRankings(ctx, "104925")
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped ranking error, got %v", err)
	}
}

func TestPlayerService_UpdatePlayer_SkipsStorageForEmptyPatchUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	svc := NewPlayerService(playerRepo, rankingmock.NewRepository(t), nil, nil, PlayerServiceConfig{}, logging.NewNop())

	current := player.Player{ID: "104925", LastName: "Djokovic"}
	playerRepo.On("GetByID", ctx, "104925").Return(current, true, nil).Once()

	got, err := svc.UpdatePlayer(ctx, UpdatePlayerInput{ID: "104925"})
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if got.LastName != "Djokovic" {
		t.Fatalf("unexpected player: %+v", got)
	}
	playerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
