// Package api exposes the HTTP surface the Discord gateway calls. All
// routes require a bearer token identifying the Discord user on whose
// behalf the gateway acts.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	leagueservice "github.com/ladderleague/ladder-bot/app/modules/league/application"
	matchservice "github.com/ladderleague/ladder-bot/app/modules/match/application"
	matchtime "github.com/ladderleague/ladder-bot/app/modules/match/time_utils"
	playerservice "github.com/ladderleague/ladder-bot/app/modules/player/application"
)

// Server holds the handlers' dependencies.
type Server struct {
	leagues    leagueservice.Service
	players    playerservice.Service
	matches    matchservice.Service
	timeParser matchtime.TimeParserInterface
	logger     *slog.Logger
}

// Config tunes the API middleware.
type Config struct {
	JWTSecret     string
	RatePerSecond float64
	RateBurst     int
}

// NewServer builds the API server.
func NewServer(
	leagues leagueservice.Service,
	players playerservice.Service,
	matches matchservice.Service,
	timeParser matchtime.TimeParserInterface,
	logger *slog.Logger,
) *Server {
	return &Server{
		leagues:    leagues,
		players:    players,
		matches:    matches,
		timeParser: timeParser,
		logger:     logger,
	}
}

// Routes mounts all API routes on a fresh router.
func (s *Server) Routes(cfg Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	provider := NewJWTProvider(cfg.JWTSecret)
	limiter := NewCallerRateLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)

	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(provider))
		r.Use(RateLimitMiddleware(limiter))

		r.Route("/leagues", func(r chi.Router) {
			r.Post("/", s.handleCreateLeague)
			r.Get("/", s.handleListLeagues)
			r.Route("/{leagueID}", func(r chi.Router) {
				r.Get("/", s.handleGetLeague)
				r.Post("/join", s.handleJoinLeague)
				r.Post("/leave", s.handleLeaveLeague)
				r.Get("/standings", s.handleGetStandings)
				r.Get("/standings/export", s.handleExportStandings)
				r.Get("/matches", s.handleListScheduledMatches)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Post("/", s.handleScheduleMatch)
			r.Get("/", s.handleListMyMatches)
			r.Route("/{matchID}", func(r chi.Router) {
				r.Get("/", s.handleGetMatch)
				r.Post("/confirm", s.handleConfirmMatch)
				r.Post("/result", s.handleReportResult)
				r.Post("/cancel", s.handleCancelMatch)
			})
		})

		r.Route("/players/{playerID}", func(r chi.Router) {
			r.Get("/", s.handleGetPlayer)
			r.Get("/history", s.handleGetRatingHistory)
			r.Get("/rating-chart", s.handleGetRatingChart)
		})
	})

	return r
}
