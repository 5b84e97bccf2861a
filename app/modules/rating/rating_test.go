package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ladderleague/ladder-bot/app/shared"
)

func TestDelta(t *testing.T) {
	tests := []struct {
		name      string
		winnerElo shared.Elo
		loserElo  shared.Elo
		want      int
	}{
		{
			name:      "equal ratings transfer half the K factor",
			winnerElo: 1000,
			loserElo:  1000,
			want:      16,
		},
		{
			name:      "large upset earns the bonus multiplier",
			winnerElo: 1200,
			loserElo:  2100,
			want:      48,
		},
		{
			name:      "gap of exactly 100 is not an upset",
			winnerElo: 1000,
			loserElo:  1100,
			want:      20,
		},
		{
			name:      "gap just over 100 is an upset",
			winnerElo: 1000,
			loserElo:  1101,
			want:      31,
		},
		{
			name:      "heavy favorite gains almost nothing",
			winnerElo: 2400,
			loserElo:  1000,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Delta(tt.winnerElo, tt.loserElo)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeltaDeterministic(t *testing.T) {
	first := Delta(1742, 1618)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Delta(1742, 1618))
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		winnerElo  shared.Elo
		loserElo   shared.Elo
		wantWinner shared.Elo
		wantLoser  shared.Elo
		wantDelta  int
	}{
		{
			name:       "equal ratings",
			winnerElo:  1000,
			loserElo:   1000,
			wantWinner: 1016,
			wantLoser:  984,
			wantDelta:  16,
		},
		{
			name:       "upset moves both sides by the boosted delta",
			winnerElo:  1200,
			loserElo:   2100,
			wantWinner: 1248,
			wantLoser:  2052,
			wantDelta:  48,
		},
		{
			name:       "loser never drops below the floor",
			winnerElo:  5,
			loserElo:   10,
			wantWinner: 21,
			wantLoser:  1,
			wantDelta:  16,
		},
		{
			name:       "floor does not change the winner's gain",
			winnerElo:  1,
			loserElo:   10,
			wantWinner: 17,
			wantLoser:  1,
			wantDelta:  16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotWinner, gotLoser, gotDelta := Apply(tt.winnerElo, tt.loserElo)
			assert.Equal(t, tt.wantWinner, gotWinner, "winner elo")
			assert.Equal(t, tt.wantLoser, gotLoser, "loser elo")
			assert.Equal(t, tt.wantDelta, gotDelta, "delta")
		})
	}
}

func TestApplyFloorClampsOnlyLoser(t *testing.T) {
	gotWinner, gotLoser, delta := Apply(20, 12)
	assert.Equal(t, shared.Elo(20)+shared.Elo(delta), gotWinner)
	assert.Equal(t, EloFloor, gotLoser)
}
