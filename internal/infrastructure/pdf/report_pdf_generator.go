// Package pdf genera el reporte mensual de transacciones: una página A4 con
// el título del mes y el gráfico de líneas de botellas prestadas vs devueltas
// por día, incrustado como PNG.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/clientbottle/clientbottle-api/internal/application/report"
)

var (
	colorLoaned   = &props.Color{Red: 200, Green: 30, Blue: 30}
	colorReturned = &props.Color{Red: 30, Green: 60, Blue: 200}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReportGenerator implementa report.PDFGenerator usando Maroto v2.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// Generate genera el PDF del mes y devuelve sus bytes.
func (g *ReportGenerator) Generate(monthLabel string, days []report.DayCount) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Reporte mensal de transações", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(12).Add(
		col.New(12).Add(
			text.New("Transações para o mês de "+monthLabel, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 2,
			}),
		),
	))
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	png, err := renderChart(days)
	if err != nil {
		return nil, fmt.Errorf("pdf: generar gráfico: %w", err)
	}
	m.AddRows(row.New(120).Add(
		col.New(12).Add(
			image.NewFromBytes(png, extension.Png, props.Rect{
				Center: true, Percent: 100,
			}),
		),
	))

	m.AddRows(row.New(10).Add(
		col.New(6).Add(text.New("— Emprestadas", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorLoaned, Top: 3,
		})),
		col.New(6).Add(text.New("— Devolvidas", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorReturned, Top: 3,
		})),
	))

	loaned, returned := totals(days)
	m.AddRows(row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total emprestadas: %d   |   Total devolvidas: %d", loaned, returned),
				props.Text{Size: 9, Align: align.Center, Color: colorGray, Top: 3}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func totals(days []report.DayCount) (loaned, returned int) {
	for _, d := range days {
		loaned += d.Loaned
		returned += d.Returned
	}
	return loaned, returned
}
