package pdf

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/clientbottle/clientbottle-api/internal/application/report"
)

var (
	chartRed  = drawing.Color{R: 200, G: 30, B: 30, A: 255}
	chartBlue = drawing.Color{R: 30, G: 60, B: 200, A: 255}
)

// renderChart dibuja las dos series (prestadas/devueltas por día) como PNG,
// con una etiqueta sobre cada punto con movimiento.
func renderChart(days []report.DayCount) ([]byte, error) {
	xs := make([]float64, len(days))
	loaned := make([]float64, len(days))
	returned := make([]float64, len(days))
	var labels []chart.Value2
	for i, d := range days {
		xs[i] = float64(d.Day)
		loaned[i] = float64(d.Loaned)
		returned[i] = float64(d.Returned)
		if d.Loaned > 0 {
			labels = append(labels, chart.Value2{
				XValue: xs[i], YValue: loaned[i],
				Label: fmt.Sprintf("%d", d.Loaned),
				Style: chart.Style{FontColor: chartRed, FontSize: 8},
			})
		}
		if d.Returned > 0 {
			labels = append(labels, chart.Value2{
				XValue: xs[i], YValue: returned[i],
				Label: fmt.Sprintf("%d", d.Returned),
				Style: chart.Style{FontColor: chartBlue, FontSize: 8},
			})
		}
	}

	graph := chart.Chart{
		Width:  900,
		Height: 500,
		XAxis: chart.XAxis{
			Name: "Dia do mês",
		},
		YAxis: chart.YAxis{
			Name: "Garrafas",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Emprestadas",
				XValues: xs,
				YValues: loaned,
				Style: chart.Style{
					StrokeColor: chartRed,
					StrokeWidth: 2,
					DotColor:    chartRed,
					DotWidth:    3,
				},
			},
			chart.ContinuousSeries{
				Name:    "Devolvidas",
				XValues: xs,
				YValues: returned,
				Style: chart.Style{
					StrokeColor: chartBlue,
					StrokeWidth: 2,
					DotColor:    chartBlue,
					DotWidth:    3,
				},
			},
			chart.AnnotationSeries{Annotations: labels},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
