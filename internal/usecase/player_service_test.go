package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/tennis-players/internal/domain/enrichment"
	"github.com/riskibarqy/tennis-players/internal/domain/player"
	"github.com/riskibarqy/tennis-players/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tennis-players/internal/platform/logging"
)

var errLookupDown = errors.New("lookup down")

type fakeProfile struct {
	country   string
	birthDate time.Time
	height    float64
	weight    float64
	hand      player.Hand
	socials   enrichment.Socials
	proSince  int
}

// fakeEnricher answers from fixed tables and records name searches.
type fakeEnricher struct {
	mu       sync.Mutex
	entities map[string]string
	profiles map[string]fakeProfile
	fail     bool
	searched []string
}

func (f *fakeEnricher) ResolveEntityID(_ context.Context, name string) enrichment.Result[string] {
	f.mu.Lock()
	f.searched = append(f.searched, name)
	f.mu.Unlock()

	if f.fail {
		return enrichment.Failed[string](errLookupDown)
	}
	if id, ok := f.entities[name]; ok {
		return enrichment.Found(id)
	}
	return enrichment.Empty[string]()
}

func lookup[T comparable](f *fakeEnricher, entityID string, pick func(fakeProfile) T) enrichment.Result[T] {
	if f.fail {
		return enrichment.Failed[T](errLookupDown)
	}
	profile, ok := f.profiles[entityID]
	if !ok {
		return enrichment.Empty[T]()
	}
	var zero T
	v := pick(profile)
	if v == zero {
		return enrichment.Empty[T]()
	}
	return enrichment.Found(v)
}

func (f *fakeEnricher) Country(_ context.Context, id string) enrichment.Result[string] {
	return lookup(f, id, func(p fakeProfile) string { return p.country })
}

func (f *fakeEnricher) BirthDate(_ context.Context, id string) enrichment.Result[time.Time] {
	return lookup(f, id, func(p fakeProfile) time.Time { return p.birthDate })
}

func (f *fakeEnricher) Height(_ context.Context, id string) enrichment.Result[float64] {
	return lookup(f, id, func(p fakeProfile) float64 { return p.height })
}

func (f *fakeEnricher) Weight(_ context.Context, id string) enrichment.Result[float64] {
	return lookup(f, id, func(p fakeProfile) float64 { return p.weight })
}

func (f *fakeEnricher) Hand(_ context.Context, id string) enrichment.Result[player.Hand] {
	return lookup(f, id, func(p fakeProfile) player.Hand { return p.hand })
}

func (f *fakeEnricher) Socials(_ context.Context, id string) enrichment.Result[enrichment.Socials] {
	return lookup(f, id, func(p fakeProfile) enrichment.Socials { return p.socials })
}

func (f *fakeEnricher) ProSince(_ context.Context, id string) enrichment.Result[int] {
	return lookup(f, id, func(p fakeProfile) int { return p.proSince })
}

func (f *fakeEnricher) searches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searched...)
}

type fixedIDs struct{ id string }

func (g fixedIDs) NewID() (string, error) { return g.id, nil }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newTestPlayerService(enricher PlayerEnricher, workers int) (*PlayerService, *memory.PlayerRepository) {
	rankings := memory.NewRankingRepository(memory.SeedRankings())
	players := memory.NewPlayerRepository(memory.SeedPlayers(), rankings)
	svc := NewPlayerService(players, rankings, enricher, fixedIDs{id: "gen0001"}, PlayerServiceConfig{
		DefaultPageSize: 10,
		MaxPageSize:     30,
		EnrichWorkers:   workers,
	}, logging.NewNop())
	return svc, players
}

func ptr[T any](v T) *T { return &v }

func TestPlayerService_ListPlayers_Pagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     ListPlayersInput
		wantPage  int
		wantPer   int
		wantPages int
		wantLen   int
	}{
		{name: "per page zero falls back to default", input: ListPlayersInput{Page: 1, PerPage: 0}, wantPage: 1, wantPer: 10, wantPages: 1, wantLen: 6},
		{name: "per page above max falls back to default", input: ListPlayersInput{Page: 1, PerPage: 31}, wantPage: 1, wantPer: 10, wantPages: 1, wantLen: 6},
		{name: "per page at max is kept", input: ListPlayersInput{Page: 1, PerPage: 30}, wantPage: 1, wantPer: 30, wantPages: 1, wantLen: 6},
		{name: "page beyond last clamps", input: ListPlayersInput{Page: 9, PerPage: 4}, wantPage: 2, wantPer: 4, wantPages: 2, wantLen: 2},
		{name: "page below one clamps", input: ListPlayersInput{Page: -3, PerPage: 4}, wantPage: 1, wantPer: 4, wantPages: 2, wantLen: 4},
		{name: "last name filter", input: ListPlayersInput{Page: 1, PerPage: 10, LastName: "er"}, wantPage: 1, wantPer: 10, wantPages: 1, wantLen: 3},
		{name: "no match", input: ListPlayersInput{Page: 3, PerPage: 10, LastName: "zzz"}, wantPage: 1, wantPer: 10, wantPages: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestPlayerService(nil, 1)
			got, err := svc.ListPlayers(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("list players: %v", err)
			}
			if got.Page != tt.wantPage || got.PerPage != tt.wantPer || got.Pages != tt.wantPages {
				t.Fatalf("unexpected paging: page=%d per_page=%d pages=%d", got.Page, got.PerPage, got.Pages)
			}
			if len(got.Players) != tt.wantLen {
				t.Fatalf("unexpected row count: got=%d want=%d", len(got.Players), tt.wantLen)
			}
		})
	}
}

func TestPlayerService_ListPlayers_BackfillsAndCommits(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 4} {
		enricher := &fakeEnricher{
			entities: map[string]string{
				"Carlos Alcaraz": "Q51",
				"Jannik Sinner":  "Q52",
			},
			profiles: map[string]fakeProfile{
				"Q51": {country: "es", birthDate: day(1999, time.January, 1), height: 183},
				"Q52": {country: "it", birthDate: day(2001, time.August, 16)},
			},
		}
		svc, repo := newTestPlayerService(enricher, workers)

		got, err := svc.ListPlayers(context.Background(), ListPlayersInput{Page: 1, PerPage: 10})
		if err != nil {
			t.Fatalf("workers=%d list players: %v", workers, err)
		}

		var alcaraz player.Summary
		for _, row := range got.Players {
			if row.ID == "207989" {
				alcaraz = row
			}
		}
		if alcaraz.WikidataID != "Q51" || alcaraz.Country != "es" {
			t.Fatalf("workers=%d expected response row to carry backfill, got %+v", workers, alcaraz.Player)
		}
		if alcaraz.BestRank != 1 {
			t.Fatalf("workers=%d expected best rank to survive backfill, got %d", workers, alcaraz.BestRank)
		}

		stored, _, _ := repo.GetByID(context.Background(), "207989")
		if stored.WikidataID != "Q51" || stored.Country != "es" {
			t.Fatalf("workers=%d expected backfill to be committed, got %+v", workers, stored)
		}
		if !stored.BirthDate.Equal(day(2003, time.May, 5)) {
			t.Fatalf("workers=%d expected known birth date to be kept, got %s", workers, stored.BirthDate)
		}
		if stored.HeightCM != 0 {
			t.Fatalf("workers=%d expected listing to leave height alone, got %v", workers, stored.HeightCM)
		}

		sinner, _, _ := repo.GetByID(context.Background(), "206173")
		if !sinner.BirthDate.Equal(day(2001, time.August, 16)) {
			t.Fatalf("workers=%d expected legacy birth date to be replaced, got %s", workers, sinner.BirthDate)
		}
	}
}

func TestPlayerService_ListPlayers_NeverReResolvesLinkedPlayers(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{}
	svc, _ := newTestPlayerService(enricher, 4)

	for i := 0; i < 2; i++ {
		if _, err := svc.ListPlayers(context.Background(), ListPlayersInput{Page: 1, PerPage: 10}); err != nil {
			t.Fatalf("list players: %v", err)
		}
	}

	for _, name := range enricher.searches() {
		if name == "Novak Djokovic" {
			t.Fatalf("player with identity link was searched by name")
		}
	}
	if n := len(enricher.searches()); n != 10 {
		t.Fatalf("expected the 5 unlinked players to be searched on each read, got %d searches", n)
	}
}

func TestPlayerService_ListPlayers_FailedLookupLeavesRowUntouched(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{fail: true}
	svc, repo := newTestPlayerService(enricher, 4)

	before, _, _ := repo.GetByID(context.Background(), "103819")
	got, err := svc.ListPlayers(context.Background(), ListPlayersInput{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("expected listing to succeed when lookups fail, got %v", err)
	}
	if got.Total != 6 {
		t.Fatalf("unexpected total: %d", got.Total)
	}

	after, _, _ := repo.GetByID(context.Background(), "103819")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("row changed after failed lookup (-before +after):\n%s", diff)
	}
}

func TestPlayerService_GetPlayer_FullProfileBackfill(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{
		entities: map[string]string{"Roger Federer": "Q1426"},
		profiles: map[string]fakeProfile{
			"Q1426": {
				country:   "sz",
				birthDate: day(1981, time.August, 8),
				height:    185,
				weight:    85,
				hand:      player.HandLeft,
				socials:   enrichment.Socials{Instagram: "https://www.instagram.com/rogerfederer"},
				proSince:  1998,
			},
		},
	}
	svc, repo := newTestPlayerService(enricher, 1)

	got, err := svc.GetPlayer(context.Background(), " 103819 ")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}

	want := player.Player{
		ID:         "103819",
		FirstName:  "Roger",
		LastName:   "Federer",
		Hand:       player.HandRight,
		BirthDate:  day(1981, time.August, 8),
		Country:    "ch",
		HeightCM:   185,
		WeightKG:   85,
		WikidataID: "Q1426",
		Instagram:  "https://www.instagram.com/rogerfederer",
		ProSince:   1998,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected player (-want +got):\n%s", diff)
	}

	stored, _, _ := repo.GetByID(context.Background(), "103819")
	if diff := cmp.Diff(want, stored); diff != "" {
		t.Fatalf("unexpected stored player (-want +got):\n%s", diff)
	}
}

func TestPlayerService_GetPlayer_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestPlayerService(nil, 1)
	if _, err := svc.GetPlayer(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetPlayer(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlayerService_CreatePlayer(t *testing.T) {
	t.Parallel()

	svc, repo := newTestPlayerService(nil, 1)
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, CreatePlayerInput{
		Fields: PlayerFields{
			FirstName: ptr("Casper"),
			LastName:  ptr("Ruud"),
			Hand:      ptr("Derecha"),
			BirthDate: ptr("22-12-1998"),
			Country:   ptr("NOR"),
			Height:    ptr("183"),
			Weight:    ptr("-"),
		},
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	want := player.Player{
		ID:        "gen0001",
		FirstName: "Casper",
		LastName:  "Ruud",
		Hand:      player.HandRight,
		BirthDate: day(1998, time.December, 22),
		Country:   "no",
		HeightCM:  183,
	}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Fatalf("unexpected created player (-want +got):\n%s", diff)
	}
	if _, exists, _ := repo.GetByID(ctx, "gen0001"); !exists {
		t.Fatalf("expected created player to be stored")
	}

	_, err = svc.CreatePlayer(ctx, CreatePlayerInput{ID: "104925", Fields: PlayerFields{LastName: ptr("Djokovic")}})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate id, got %v", err)
	}

	_, err = svc.CreatePlayer(ctx, CreatePlayerInput{ID: "x1", Fields: PlayerFields{BirthDate: ptr("1998/12/22")}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}

	_, err = svc.CreatePlayer(ctx, CreatePlayerInput{ID: "x2", Fields: PlayerFields{Height: ptr("tall")}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad height, got %v", err)
	}

	_, err = svc.CreatePlayer(ctx, CreatePlayerInput{ID: "x3", Fields: PlayerFields{Height: ptr("123456")}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized height, got %v", err)
	}
}

func TestPlayerService_UpdatePlayer_PartialPatch(t *testing.T) {
	t.Parallel()

	svc, repo := newTestPlayerService(nil, 1)
	ctx := context.Background()

	before, _, _ := repo.GetByID(ctx, "104745")
	got, err := svc.UpdatePlayer(ctx, UpdatePlayerInput{
		ID:     "104745",
		Fields: PlayerFields{Weight: ptr("85"), Instagram: ptr("https://www.instagram.com/rafaelnadal")},
	})
	if err != nil {
		t.Fatalf("update player: %v", err)
	}

	want := before
	want.WeightKG = 85
	want.Instagram = "https://www.instagram.com/rafaelnadal"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected updated player (-want +got):\n%s", diff)
	}

	cleared, err := svc.UpdatePlayer(ctx, UpdatePlayerInput{ID: "104745", Fields: PlayerFields{Country: ptr("unknown")}})
	if err != nil {
		t.Fatalf("update player: %v", err)
	}
	if cleared.Country != "" || cleared.WeightKG != 85 {
		t.Fatalf("expected only country to be cleared, got %+v", cleared)
	}

	unchanged, err := svc.UpdatePlayer(ctx, UpdatePlayerInput{ID: "104745"})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if diff := cmp.Diff(cleared, unchanged); diff != "" {
		t.Fatalf("empty update changed player (-want +got):\n%s", diff)
	}

	_, err = svc.UpdatePlayer(ctx, UpdatePlayerInput{ID: "missing", Fields: PlayerFields{Weight: ptr("80")}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayerService_DeletePlayer(t *testing.T) {
	t.Parallel()

	svc, repo := newTestPlayerService(nil, 1)
	ctx := context.Background()

	if err := svc.DeletePlayer(ctx, "100644"); err != nil {
		t.Fatalf("delete player: %v", err)
	}
	if _, exists, _ := repo.GetByID(ctx, "100644"); exists {
		t.Fatalf("expected player to be deleted")
	}
	if err := svc.DeletePlayer(ctx, "100644"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestPlayerService_ListRankings(t *testing.T) {
	t.Parallel()

	svc, _ := newTestPlayerService(nil, 1)
	ctx := context.Background()

	items, err := svc.ListRankings(ctx, "104925")
	if err != nil {
		t.Fatalf("list rankings: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected ranking count: %d", len(items))
	}
	if !items[0].Date.After(items[1].Date) {
		t.Fatalf("expected newest ranking first, got %s then %s", items[0].Date, items[1].Date)
	}

	if _, err := svc.ListRankings(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
