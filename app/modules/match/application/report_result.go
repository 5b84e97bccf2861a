package matchservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/events"
	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/modules/rating"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// ReportResult finalizes a match: records scores, moves both ratings,
// writes the rating history rows, reclassifies tiers, and runs
// Grandmaster arbitration over the league. All of it commits in one
// transaction; the events fire only after the commit.
//
// The winner is decided strictly by score: score1 > score2 means
// player1 won, anything else means player2 won. Ties are rejected.
func (s *MatchService) ReportResult(ctx context.Context, matchID shared.MatchID, reporter shared.UserID, score1, score2 int) (*ResultSummary, error) {
	return withTelemetry(s, ctx, "ReportResult", func(ctx context.Context) (*ResultSummary, error) {
		if score1 < 0 || score2 < 0 || score1 == score2 {
			return nil, ErrInvalidScore
		}

		summary, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*ResultSummary, error) {
			match, err := s.repo.GetMatchForUpdate(ctx, db, matchID)
			if err != nil {
				if errors.Is(err, matchdb.ErrNotFound) {
					return nil, ErrMatchNotFound
				}
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			// Re-checked under the row lock: a concurrent report or
			// cancel that won the race leaves us nothing to do.
			if match.Status != shared.MatchStatusScheduled {
				return nil, ErrInvalidState
			}

			caller, err := s.playerRepo.GetByUserAndLeague(ctx, db, reporter, match.LeagueID)
			if err != nil {
				if errors.Is(err, playerdb.ErrNotFound) {
					return nil, ErrNotParticipant
				}
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			if !match.Participant(caller.ID) {
				return nil, ErrNotParticipant
			}
			if !match.BothConfirmed() {
				return nil, ErrNotConfirmed
			}

			winnerID, loserID := match.Player2ID, match.Player1ID
			if score1 > score2 {
				winnerID, loserID = match.Player1ID, match.Player2ID
			}

			// Lock both player rows in a fixed order so two reports
			// touching overlapping players cannot deadlock.
			first, second := winnerID, loserID
			if bytes.Compare(first[:], second[:]) > 0 {
				first, second = second, first
			}
			firstPlayer, err := s.playerRepo.GetByIDForUpdate(ctx, db, first)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			secondPlayer, err := s.playerRepo.GetByIDForUpdate(ctx, db, second)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			winner, loser := firstPlayer, secondPlayer
			if winner.ID != winnerID {
				winner, loser = secondPlayer, firstPlayer
			}

			now := time.Now().UTC()
			newWinnerElo, newLoserElo, delta := rating.Apply(winner.Elo, loser.Elo)

			match.Status = shared.MatchStatusCompleted
			match.Player1Score = &score1
			match.Player2Score = &score2
			match.WinnerID = &winner.ID
			match.LoserID = &loser.ID
			match.CompletedAt = &now
			if err := s.repo.UpdateMatch(ctx, db, match); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}

			changes := []*playerdb.RatingChange{
				{PlayerID: winner.ID, MatchID: match.ID, EloBefore: winner.Elo, EloAfter: newWinnerElo, Delta: delta, CreatedAt: now},
				{PlayerID: loser.ID, MatchID: match.ID, EloBefore: loser.Elo, EloAfter: newLoserElo, Delta: delta, CreatedAt: now},
			}

			winnerOldTier, loserOldTier := winner.Rank, loser.Rank
			winner.Elo = newWinnerElo
			winner.Wins++
			winner.Rank = rating.ClassifyTier(winner.Elo)
			loser.Elo = newLoserElo
			loser.Losses++
			loser.Rank = rating.ClassifyTier(loser.Elo)

			if err := s.playerRepo.UpdatePlayer(ctx, db, winner); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			if err := s.playerRepo.UpdatePlayer(ctx, db, loser); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			for _, change := range changes {
				if err := s.playerRepo.CreateRatingChange(ctx, db, change); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrStorage, err)
				}
			}

			tierChanges := make([]TierChange, 0, 4)
			if winner.Rank != winnerOldTier {
				tierChanges = append(tierChanges, TierChange{
					PlayerID: winner.ID, UserID: winner.UserID,
					OldTier: winnerOldTier, NewTier: winner.Rank, Elo: winner.Elo,
				})
			}
			if loser.Rank != loserOldTier {
				tierChanges = append(tierChanges, TierChange{
					PlayerID: loser.ID, UserID: loser.UserID,
					OldTier: loserOldTier, NewTier: loser.Rank, Elo: loser.Elo,
				})
			}

			arbitrated, err := s.arbitrateGrandmaster(ctx, db, match.LeagueID, winner, loser)
			if err != nil {
				return nil, err
			}
			tierChanges = reconcileTierChanges(tierChanges, arbitrated)

			return &ResultSummary{
				Match:       match,
				WinnerElo:   winner.Elo,
				LoserElo:    loser.Elo,
				RatingDelta: delta,
				TierChanges: tierChanges,
			}, nil
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "match completed",
			attr.MatchID(matchID),
			attr.LeagueID(summary.Match.LeagueID),
			attr.PlayerID(*summary.Match.WinnerID),
			attr.Elo("winner_elo", summary.WinnerElo),
			attr.Elo("loser_elo", summary.LoserElo),
		)
		s.metrics.RecordMatchCompleted(ctx, summary.Match.LeagueID.String())
		s.metrics.RecordRatingDelta(ctx, summary.RatingDelta)

		winnerScore, loserScore := score1, score2
		if *summary.Match.WinnerID == summary.Match.Player2ID {
			winnerScore, loserScore = score2, score1
		}
		s.publish(ctx, events.MatchCompleted, events.MatchCompletedPayload{
			MatchID:     summary.Match.ID,
			LeagueID:    summary.Match.LeagueID,
			WinnerID:    *summary.Match.WinnerID,
			LoserID:     *summary.Match.LoserID,
			WinnerScore: winnerScore,
			LoserScore:  loserScore,
			RatingDelta: summary.RatingDelta,
			WinnerElo:   summary.WinnerElo,
			LoserElo:    summary.LoserElo,
			CompletedAt: *summary.Match.CompletedAt,
		})
		for _, change := range summary.TierChanges {
			s.publish(ctx, events.PlayerRankChanged, events.PlayerRankChangedPayload{
				PlayerID: change.PlayerID,
				LeagueID: summary.Match.LeagueID,
				UserID:   change.UserID,
				OldTier:  change.OldTier,
				NewTier:  change.NewTier,
				Elo:      change.Elo,
			})
		}

		if s.scheduler != nil {
			if err := s.scheduler.CancelMatchJobs(ctx, matchID); err != nil {
				s.logger.ErrorContext(ctx, "failed to cancel match jobs", attr.MatchID(matchID), attr.Error(err))
			}
		}

		return summary, nil
	})
}

// arbitrateGrandmaster enforces the single-Grandmaster invariant: of
// the league's players at or above the eligibility threshold, only the
// top one (elo desc, joined_at asc, id asc) holds Grandmaster; every
// other eligible player is Master. Rows already updated this
// transaction (the match's winner and loser) are passed in so their
// in-memory state wins over the stale locked read.
func (s *MatchService) arbitrateGrandmaster(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, updated ...*playerdb.Player) ([]TierChange, error) {
	// Serialize arbitration on the league row. Locking only the
	// eligible player rows is not enough: two completions whose
	// eligible scans share no row (an empty band, or each seeing only
	// its own winner) would both proceed and could crown two
	// Grandmasters.
	if _, err := s.leagueRepo.GetByIDForUpdate(ctx, db, leagueID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	eligible, err := s.playerRepo.ListEligibleForUpdate(ctx, db, leagueID, rating.GrandmasterMinElo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	byID := make(map[shared.PlayerID]*playerdb.Player, len(updated))
	for _, p := range updated {
		byID[p.ID] = p
	}
	for i, p := range eligible {
		if fresh, ok := byID[p.ID]; ok {
			eligible[i] = fresh
		}
	}

	var changes []TierChange
	var grandmasterChanged bool
	for i, p := range eligible {
		want := shared.TierMaster
		if i == 0 {
			want = shared.TierGrandmaster
		}
		if p.Rank == want {
			continue
		}
		old := p.Rank
		p.Rank = want
		if err := s.playerRepo.UpdatePlayer(ctx, db, p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		changes = append(changes, TierChange{
			PlayerID: p.ID, UserID: p.UserID,
			OldTier: old, NewTier: want, Elo: p.Elo,
		})
		if want == shared.TierGrandmaster {
			grandmasterChanged = true
		}
	}

	if grandmasterChanged {
		s.metrics.RecordGrandmasterChange(ctx, leagueID.String())
	}
	return changes, nil
}

// reconcileTierChanges merges the match players' tier movements with
// arbitration's: when arbitration re-ranks a player already in the
// list, the arbitration outcome replaces the earlier entry.
func reconcileTierChanges(base, arbitrated []TierChange) []TierChange {
	for _, a := range arbitrated {
		replaced := false
		for i, b := range base {
			if b.PlayerID == a.PlayerID {
				base[i].NewTier = a.NewTier
				base[i].Elo = a.Elo
				replaced = true
				break
			}
		}
		if !replaced {
			base = append(base, a)
		}
	}

	// Drop entries that ended where they started.
	out := base[:0]
	for _, c := range base {
		if c.OldTier != c.NewTier {
			out = append(out, c)
		}
	}
	return out
}
