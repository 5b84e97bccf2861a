package matchservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/observability"
	"github.com/ladderleague/ladder-bot/app/observability/metrics/matchmetrics"
	"github.com/ladderleague/ladder-bot/app/shared"
)

type testHarness struct {
	service   *MatchService
	matches   *FakeMatchRepository
	players   *FakePlayerRepository
	leagues   *FakeLeagueRepository
	bus       *FakeEventBus
	scheduler *FakeJobScheduler
}

func newTestHarness() *testHarness {
	matches := NewFakeMatchRepository()
	players := NewFakePlayerRepository()
	leagues := &FakeLeagueRepository{}
	bus := &FakeEventBus{}
	scheduler := &FakeJobScheduler{}
	service := NewMatchService(
		matches,
		players,
		leagues,
		scheduler,
		bus,
		observability.NoOpLogger,
		matchmetrics.NoOpMetrics{},
		observability.NewNoOpTracer(),
		nil,
	)
	return &testHarness{service: service, matches: matches, players: players, leagues: leagues, bus: bus, scheduler: scheduler}
}

func (h *testHarness) seedPlayer(userID shared.UserID, leagueID shared.LeagueID, elo shared.Elo) *playerdb.Player {
	player := &playerdb.Player{
		ID:       shared.NewPlayerID(),
		UserID:   userID,
		LeagueID: leagueID,
		Elo:      elo,
		Rank:     shared.TierBronze,
		JoinedAt: time.Now().UTC(),
	}
	h.players.Seed(player)
	return player
}

func TestScheduleMatch(t *testing.T) {
	leagueID := shared.NewLeagueID()

	t.Run("instant match leaves the opponent unconfirmed", func(t *testing.T) {
		h := newTestHarness()
		p1 := h.seedPlayer("alice", leagueID, 1000)
		p2 := h.seedPlayer("bob", leagueID, 1000)

		match, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		require.NoError(t, err)

		assert.Equal(t, shared.MatchStatusScheduled, match.Status)
		assert.Equal(t, p1.ID, match.Player1ID)
		assert.Equal(t, p2.ID, match.Player2ID)
		assert.True(t, match.IsInstant)
		assert.Nil(t, match.ScheduledAt)
		assert.True(t, match.Player1Confirmed)
		assert.False(t, match.Player2Confirmed)
		assert.Equal(t, []string{"match.scheduled"}, h.bus.Subjects())
		assert.Empty(t, h.scheduler.Scheduled)
	})

	t.Run("dated match starts confirmed on both sides and enqueues jobs", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)
		at := time.Now().Add(48 * time.Hour)

		match, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", &at)
		require.NoError(t, err)

		assert.False(t, match.IsInstant)
		require.NotNil(t, match.ScheduledAt)
		assert.True(t, match.Player1Confirmed)
		assert.True(t, match.Player2Confirmed)
		assert.Equal(t, []shared.MatchID{match.ID}, h.scheduler.Scheduled)
	})

	t.Run("challenging yourself is rejected", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)

		_, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "alice", nil)
		assert.ErrorIs(t, err, ErrSelfChallenge)
	})

	t.Run("a past date is rejected", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)
		at := time.Now().Add(-time.Hour)

		_, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", &at)
		assert.ErrorIs(t, err, ErrPastScheduledDate)
	})

	t.Run("non-members cannot be challenged", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)

		_, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "stranger", nil)
		assert.ErrorIs(t, err, ErrNotLeagueMember)
	})

	t.Run("one open match per pair, either seat order", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)

		_, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		require.NoError(t, err)

		_, err = h.service.ScheduleMatch(context.Background(), leagueID, "bob", "alice", nil)
		assert.ErrorIs(t, err, ErrDuplicateMatch)
	})

	t.Run("a pair raced into existence maps to ErrDuplicateMatch", func(t *testing.T) {
		// The duplicate read sees nothing, but the insert trips the
		// unique index because a concurrent schedule committed first.
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)
		h.matches.CreateMatchFunc = func(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
			return matchdb.ErrDuplicate
		}

		_, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		assert.ErrorIs(t, err, ErrDuplicateMatch)
	})

	t.Run("a completed match does not block a rematch", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)

		first, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		require.NoError(t, err)
		_, err = h.service.ConfirmMatch(context.Background(), first.ID, "bob")
		require.NoError(t, err)
		_, err = h.service.ReportResult(context.Background(), first.ID, "alice", 3, 1)
		require.NoError(t, err)

		_, err = h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		assert.NoError(t, err)
	})
}
