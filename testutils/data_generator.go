// Package testutils generates realistic domain fixtures for tests.
// Generators are deterministic when seeded, so a failing test can be
// replayed with the same data.
package testutils

import (
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/modules/rating"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// TestDataGenerator produces leagues, players, and matches with
// plausible shapes.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator, seeded for reproducibility
// when a seed is given.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

// Seed returns the seed in use, for logging on failure.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// DiscordID returns a snowflake-shaped user id.
func (g *TestDataGenerator) DiscordID() shared.UserID {
	return shared.UserID(g.faker.Numerify("##################"))
}

// GenerateLeague creates a league in the given guild.
func (g *TestDataGenerator) GenerateLeague(guildID string) *leaguedb.League {
	now := time.Now().UTC()
	return &leaguedb.League{
		ID:        shared.NewLeagueID(),
		GuildID:   guildID,
		Name:      g.faker.Adjective() + " " + g.faker.NounAbstract(),
		CreatedBy: g.DiscordID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GeneratePlayers creates count league members with spread-out ratings
// and join dates. The slice comes back in ladder order (elo descending,
// earlier joiners first on ties) so it can back a repository fake
// directly.
func (g *TestDataGenerator) GeneratePlayers(leagueID shared.LeagueID, count int) []*playerdb.Player {
	now := time.Now().UTC()
	players := make([]*playerdb.Player, count)
	for i := range players {
		elo := shared.Elo(g.faker.Number(600, 2400))
		joined := g.faker.DateRange(now.AddDate(0, -3, 0), now.Add(-time.Hour))
		players[i] = &playerdb.Player{
			ID:        shared.NewPlayerID(),
			UserID:    g.DiscordID(),
			LeagueID:  leagueID,
			Elo:       elo,
			Rank:      rating.ClassifyTier(elo),
			Wins:      g.faker.Number(0, 30),
			Losses:    g.faker.Number(0, 30),
			JoinedAt:  joined,
			UpdatedAt: joined,
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Elo != players[j].Elo {
			return players[i].Elo > players[j].Elo
		}
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})
	return players
}

// MatchOptions constrains GenerateMatch. A nil ScheduledAt makes an
// instant match.
type MatchOptions struct {
	ScheduledAt *time.Time
	Confirmed   bool
}

// GenerateMatch creates a scheduled match between two players, with
// player1 as the challenger.
func (g *TestDataGenerator) GenerateMatch(leagueID shared.LeagueID, p1, p2 *playerdb.Player, opts MatchOptions) *matchdb.Match {
	now := time.Now().UTC()
	m := &matchdb.Match{
		ID:               shared.NewMatchID(),
		LeagueID:         leagueID,
		Status:           shared.MatchStatusScheduled,
		Player1ID:        p1.ID,
		Player2ID:        p2.ID,
		ScheduledAt:      opts.ScheduledAt,
		IsInstant:        opts.ScheduledAt == nil,
		Player1Confirmed: true,
		Player2Confirmed: opts.Confirmed,
		CreatedBy:        p1.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if !m.IsInstant {
		m.Player2Confirmed = true
	}
	return m
}

// GenerateCompletedMatch creates a finished match won by winner, with
// the rating movements the result would have produced. The players'
// ratings are not mutated.
func (g *TestDataGenerator) GenerateCompletedMatch(leagueID shared.LeagueID, winner, loser *playerdb.Player) (*matchdb.Match, []*playerdb.RatingChange) {
	completed := time.Now().UTC().Add(-time.Duration(g.faker.Number(1, 72)) * time.Hour)
	m := g.GenerateMatch(leagueID, winner, loser, MatchOptions{Confirmed: true})
	m.Status = shared.MatchStatusCompleted
	m.CompletedAt = &completed
	m.UpdatedAt = completed

	winnerScore := g.faker.Number(1, 5)
	loserScore := g.faker.Number(0, winnerScore-1)
	m.Player1Score = &winnerScore
	m.Player2Score = &loserScore
	m.WinnerID = &winner.ID
	m.LoserID = &loser.ID

	newWinner, newLoser, delta := rating.Apply(winner.Elo, loser.Elo)
	changes := []*playerdb.RatingChange{
		{PlayerID: winner.ID, MatchID: m.ID, EloBefore: winner.Elo, EloAfter: newWinner, Delta: delta, CreatedAt: completed},
		{PlayerID: loser.ID, MatchID: m.ID, EloBefore: loser.Elo, EloAfter: newLoser, Delta: delta, CreatedAt: completed},
	}
	return m, changes
}

// TimePtr is a helper for the pointer-typed schedule fields.
func TimePtr(t time.Time) *time.Time {
	return &t
}
