package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rizkyfalih/league-manager/external/notify"
	"github.com/rizkyfalih/league-manager/internal/config"
	"github.com/rizkyfalih/league-manager/internal/domain/match"
	"github.com/rizkyfalih/league-manager/internal/domain/player"
	"github.com/rizkyfalih/league-manager/internal/domain/ranking"
	"github.com/rizkyfalih/league-manager/internal/domain/regulation"
	"github.com/rizkyfalih/league-manager/internal/domain/result"
	"github.com/rizkyfalih/league-manager/internal/domain/season"
	"github.com/rizkyfalih/league-manager/internal/domain/team"
	"github.com/rizkyfalih/league-manager/internal/infrastructure/account/janus"
	cacherepo "github.com/rizkyfalih/league-manager/internal/infrastructure/repository/cache"
	"github.com/rizkyfalih/league-manager/internal/infrastructure/repository/memory"
	"github.com/rizkyfalih/league-manager/internal/infrastructure/repository/postgres"
	"github.com/rizkyfalih/league-manager/internal/interfaces/httpapi"
	basecache "github.com/rizkyfalih/league-manager/internal/platform/cache"
	idgen "github.com/rizkyfalih/league-manager/internal/platform/id"
	"github.com/rizkyfalih/league-manager/internal/platform/logging"
	"github.com/rizkyfalih/league-manager/internal/platform/resilience"
	"github.com/rizkyfalih/league-manager/internal/usecase"
)

type repositories struct {
	seasons        season.Repository
	teams          team.Repository
	players        player.Repository
	regulations    regulation.Repository
	matches        match.Repository
	teamResults    result.TeamResultRepository
	playerResults  result.PlayerResultRepository
	rankings       ranking.Repository
	playerRankings ranking.PlayerRepository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.regulations = cacherepo.NewRegulationRepository(repos.regulations, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	gen := idgen.NewRandomGenerator()

	var notifier usecase.StandingsNotifier
	if cfg.WebhookEnabled {
		notifier = notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			EndpointURL:  cfg.WebhookEndpointURL,
			SigningToken: cfg.WebhookSigningToken,
			Timeout:      cfg.WebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
			},
		}, logger)
		logger.Info("standings webhook enabled", "endpoint", cfg.WebhookEndpointURL)
	}

	standingSvc := usecase.NewStandingService(
		repos.teams,
		repos.players,
		repos.regulations,
		repos.teamResults,
		repos.playerResults,
		repos.rankings,
		repos.playerRankings,
		gen,
		notifier,
		logger,
	)
	seasonSvc := usecase.NewSeasonService(repos.seasons, gen)
	teamSvc := usecase.NewTeamService(repos.seasons, repos.teams, gen)
	playerSvc := usecase.NewPlayerService(repos.teams, repos.players, repos.regulations, gen)
	regulationSvc := usecase.NewRegulationService(repos.seasons, repos.regulations, gen)
	matchSvc := usecase.NewMatchService(
		repos.seasons,
		repos.teams,
		repos.players,
		repos.regulations,
		repos.matches,
		standingSvc,
		gen,
		logger,
	)
	rebuildSvc := usecase.NewRebuildService(
		repos.seasons,
		repos.matches,
		repos.teamResults,
		repos.playerResults,
		repos.rankings,
		repos.playerRankings,
		standingSvc,
		logger,
	)

	janusClient := janus.NewClient(
		&http.Client{Timeout: cfg.JanusTimeout},
		cfg.JanusBaseURL,
		cfg.JanusIntrospectPath,
		cfg.JanusAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.JanusCircuitEnabled,
			FailureThreshold: cfg.JanusCircuitFailureCount,
			OpenTimeout:      cfg.JanusCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.JanusCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		seasonSvc,
		teamSvc,
		playerSvc,
		regulationSvc,
		matchSvc,
		standingSvc,
		rebuildSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, janusClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			seasons:        memory.NewSeasonRepository(memory.SeedSeasons()),
			teams:          memory.NewTeamRepository(memory.SeedTeams()),
			players:        memory.NewPlayerRepository(memory.SeedPlayers()),
			regulations:    memory.NewRegulationRepository(memory.SeedRegulations()),
			matches:        memory.NewMatchRepository(nil),
			teamResults:    memory.NewTeamResultRepository(),
			playerResults:  memory.NewPlayerResultRepository(),
			rankings:       memory.NewRankingRepository(),
			playerRankings: memory.NewPlayerRankingRepository(),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	logger.Info("using postgres repositories", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		seasons:        postgres.NewSeasonRepository(db),
		teams:          postgres.NewTeamRepository(db),
		players:        postgres.NewPlayerRepository(db),
		regulations:    postgres.NewRegulationRepository(db),
		matches:        postgres.NewMatchRepository(db),
		teamResults:    postgres.NewTeamResultRepository(db),
		playerResults:  postgres.NewPlayerResultRepository(db),
		rankings:       postgres.NewRankingRepository(db),
		playerRankings: postgres.NewPlayerRankingRepository(db),
	}, nil
}
