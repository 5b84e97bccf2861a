package playerservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

var (
	chartLineColor = drawing.Color{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	chartDotColor  = drawing.Color{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	chartTextColor = drawing.Color{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// RenderRatingChart produces a PNG line chart of the player's rating
// over time.
func (s *PlayerService) RenderRatingChart(ctx context.Context, playerID shared.PlayerID) ([]byte, error) {
	return withTelemetry(s, ctx, "RenderRatingChart", func(ctx context.Context) ([]byte, error) {
		if _, err := s.repo.GetByID(ctx, nil, playerID); err != nil {
			if errors.Is(err, playerdb.ErrNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		history, err := s.repo.ListRatingChanges(ctx, nil, playerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return generateRatingChart(history)
	})
}

func generateRatingChart(history []*playerdb.RatingChange) ([]byte, error) {
	// TimeSeries needs at least two points to draw a line.
	if len(history) < 2 {
		return renderNoDataPlaceholder()
	}

	xValues := make([]time.Time, len(history))
	yValues := make([]float64, len(history))
	for i, entry := range history {
		xValues[i] = entry.CreatedAt
		yValues[i] = float64(entry.EloAfter)
	}

	mainSeries := chart.TimeSeries{
		Name:    "Rating",
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: chartLineColor,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    chartDotColor,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Style: chart.Style{
				FontColor: chartTextColor,
			},
		},
		YAxis: chart.YAxis{
			Name: "Elo",
			Style: chart.Style{
				FontColor: chartTextColor,
			},
		},
		Series: []chart.Series{mainSeries},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No completed matches yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(chartTextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
