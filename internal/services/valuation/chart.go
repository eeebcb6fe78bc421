package valuation

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/csfin/portfolio/internal/models"
)

// RenderQuoteChart renders a PNG line chart of a security's quote
// history. When avgPrice is positive a dashed reference line marks the
// average purchase price. Returns raw PNG bytes.
func RenderQuoteChart(name string, series []models.QuoteItem, avgPrice float64) ([]byte, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("need at least 2 quotes, got %d", len(series))
	}

	xValues := make([]time.Time, len(series))
	priceY := make([]float64, len(series))
	for i, q := range series {
		xValues[i] = q.Date
		priceY[i] = q.Price
	}

	priceSeries := chart.TimeSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: priceY,
	}

	graph := chart.Chart{
		Title:  name,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{priceSeries},
	}

	if avgPrice > 0 {
		avgY := make([]float64, len(series))
		for i := range avgY {
			avgY[i] = avgPrice
		}
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name: "Avg Purchase Price",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"),
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: xValues,
			YValues: avgY,
		})
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
