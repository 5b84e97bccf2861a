package matchservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladderleague/ladder-bot/app/shared"
)

func TestGetMatch(t *testing.T) {
	leagueID := shared.NewLeagueID()

	t.Run("resolves both players' user ids", func(t *testing.T) {
		h := newTestHarness()
		p1 := h.seedPlayer("alice", leagueID, 1000)
		p2 := h.seedPlayer("bob", leagueID, 1000)
		match := h.seedConfirmedMatch(leagueID, p1, p2)

		view, err := h.service.GetMatch(context.Background(), match.ID)
		require.NoError(t, err)

		assert.Equal(t, match.ID, view.ID)
		assert.Equal(t, shared.UserID("alice"), view.Player1User)
		assert.Equal(t, shared.UserID("bob"), view.Player2User)
	})

	t.Run("unknown match maps to ErrMatchNotFound", func(t *testing.T) {
		h := newTestHarness()
		_, err := h.service.GetMatch(context.Background(), shared.NewMatchID())
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestListPlayerMatches(t *testing.T) {
	leagueID := shared.NewLeagueID()

	t.Run("filters by status", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)
		h.seedPlayer("carol", leagueID, 1000)

		open, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		require.NoError(t, err)
		done, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "carol", nil)
		require.NoError(t, err)
		_, err = h.service.ConfirmMatch(context.Background(), done.ID, "carol")
		require.NoError(t, err)
		_, err = h.service.ReportResult(context.Background(), done.ID, "alice", 2, 0)
		require.NoError(t, err)

		status := shared.MatchStatusScheduled
		matches, err := h.service.ListPlayerMatches(context.Background(), "alice", leagueID, &status)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, open.ID, matches[0].ID)

		all, err := h.service.ListPlayerMatches(context.Background(), "alice", leagueID, nil)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("non-members are rejected", func(t *testing.T) {
		h := newTestHarness()
		_, err := h.service.ListPlayerMatches(context.Background(), "stranger", leagueID, nil)
		assert.ErrorIs(t, err, ErrNotLeagueMember)
	})
}

func TestListActiveMatches(t *testing.T) {
	leagueID := shared.NewLeagueID()

	t.Run("returns only open matches for the user", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)
		h.seedPlayer("carol", leagueID, 1000)

		open, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		require.NoError(t, err)
		cancelled, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "carol", nil)
		require.NoError(t, err)
		_, err = h.service.CancelMatch(context.Background(), cancelled.ID, "alice")
		require.NoError(t, err)

		matches, err := h.service.ListActiveMatches(context.Background(), "alice", leagueID)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, open.ID, matches[0].ID)
	})
}
