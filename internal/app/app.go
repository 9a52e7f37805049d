package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tennis-players/external/wikidata"
	"github.com/riskibarqy/tennis-players/internal/config"
	"github.com/riskibarqy/tennis-players/internal/domain/player"
	"github.com/riskibarqy/tennis-players/internal/domain/ranking"
	"github.com/riskibarqy/tennis-players/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tennis-players/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tennis-players/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/tennis-players/internal/platform/id"
	"github.com/riskibarqy/tennis-players/internal/platform/logging"
	"github.com/riskibarqy/tennis-players/internal/platform/resilience"
	"github.com/riskibarqy/tennis-players/internal/usecase"
)

// App is the service context built once at startup. Everything a request
// needs is reachable from here; nothing is held in package globals.
type App struct {
	Server        *http.Server
	PlayerService *usecase.PlayerService

	db     *sqlx.DB
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	playerRepo, rankingRepo, err := a.openRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a.PlayerService = usecase.NewPlayerService(
		playerRepo,
		rankingRepo,
		newPlayerEnricher(cfg, logger),
		idgen.NewRandomGenerator(0),
		usecase.PlayerServiceConfig{
			DefaultPageSize: cfg.PlayersDefaultPageSize,
			MaxPageSize:     cfg.PlayersMaxPageSize,
			EnrichWorkers:   cfg.EnrichMaxWorkers,
		},
		logger.Named("usecase"),
	)

	handler := httpapi.NewHandler(a.PlayerService, logger)
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger.Named("http"), cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config) (player.Repository, ranking.Repository, error) {
	if cfg.StorageDriver == config.StorageMemory {
		a.logger.Warn("using in-memory storage with seed data", "storage_driver", cfg.StorageDriver)
		rankings := memory.NewRankingRepository(memory.SeedRankings())
		return memory.NewPlayerRepository(memory.SeedPlayers(), rankings), rankings, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	a.db = db

	a.logger.Info("postgres connected",
		"db_name", dbNameFromURL(cfg.DBURL),
		"max_open_conns", cfg.DBMaxOpenConns,
	)
	return postgres.NewPlayerRepository(db), postgres.NewRankingRepository(db), nil
}

func newPlayerEnricher(cfg config.Config, logger *logging.Logger) usecase.PlayerEnricher {
	if !cfg.WikidataEnabled {
		logger.Info("wikidata enrichment disabled", "reason", "WIKIDATA_ENABLED=false")
		return usecase.NewNoopPlayerEnricher()
	}

	return wikidata.NewClient(wikidata.ClientConfig{
		APIURL:    cfg.WikidataAPIURL,
		Timeout:   cfg.WikidataTimeout,
		Language:  cfg.WikidataLanguage,
		UserAgent: cfg.WikidataUserAgent,
		Logger:    logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.WikidataCircuitEnabled,
			FailureThreshold: cfg.WikidataCircuitFailureCount,
			OpenTimeout:      cfg.WikidataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.WikidataCircuitHalfOpenMaxReq,
		},
	})
}
