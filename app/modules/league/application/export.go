package leagueservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// ExportStandings renders the league ladder as an xlsx workbook.
func (s *LeagueService) ExportStandings(ctx context.Context, leagueID shared.LeagueID) ([]byte, error) {
	return withTelemetry(s, ctx, "ExportStandings", func(ctx context.Context) ([]byte, error) {
		league, err := s.GetLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		standings, err := s.GetStandings(ctx, leagueID)
		if err != nil {
			return nil, err
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Standings"
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}

		headers := []any{"#", "Player", "Elo", "Tier", "Wins", "Losses", "Win %"}
		if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
			return nil, fmt.Errorf("failed to write header row: %w", err)
		}

		for i, entry := range standings {
			cell := fmt.Sprintf("A%d", i+2)
			row := []any{
				entry.Position,
				string(entry.UserID),
				int(entry.Elo),
				string(entry.Tier),
				entry.Wins,
				entry.Losses,
				fmt.Sprintf("%.1f%%", entry.WinPct),
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write standings row: %w", err)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize workbook for league %s: %w", league.Name, err)
		}

		s.metrics.RecordStandingsExport(ctx, leagueID.String())
		return buf.Bytes(), nil
	})
}
