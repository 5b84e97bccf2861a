package matchservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladderleague/ladder-bot/app/shared"
)

func TestConfirmMatch(t *testing.T) {
	leagueID := shared.NewLeagueID()

	t.Run("opponent confirmation stamps an instant match", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)

		match, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		require.NoError(t, err)
		require.Nil(t, match.ScheduledAt)

		confirmed, err := h.service.ConfirmMatch(context.Background(), match.ID, "bob")
		require.NoError(t, err)

		assert.True(t, confirmed.BothConfirmed())
		assert.NotNil(t, confirmed.ScheduledAt)
		assert.Contains(t, h.bus.Subjects(), "match.confirmed")
	})

	t.Run("re-confirming is a no-op and publishes nothing", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)

		match, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		require.NoError(t, err)

		// The challenger is already confirmed at creation.
		before := len(h.bus.Published)
		_, err = h.service.ConfirmMatch(context.Background(), match.ID, "alice")
		require.NoError(t, err)
		assert.Len(t, h.bus.Published, before)
	})

	t.Run("outsiders cannot confirm", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)
		h.seedPlayer("carol", leagueID, 1000)

		match, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		require.NoError(t, err)

		_, err = h.service.ConfirmMatch(context.Background(), match.ID, "carol")
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("terminal matches reject confirmation", func(t *testing.T) {
		h := newTestHarness()
		h.seedPlayer("alice", leagueID, 1000)
		h.seedPlayer("bob", leagueID, 1000)

		match, err := h.service.ScheduleMatch(context.Background(), leagueID, "alice", "bob", nil)
		require.NoError(t, err)
		_, err = h.service.CancelMatch(context.Background(), match.ID, "alice")
		require.NoError(t, err)

		_, err = h.service.ConfirmMatch(context.Background(), match.ID, "bob")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("unknown match maps to ErrMatchNotFound", func(t *testing.T) {
		h := newTestHarness()
		_, err := h.service.ConfirmMatch(context.Background(), shared.NewMatchID(), "alice")
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}
