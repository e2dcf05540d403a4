// Package pdf renders the project certification report using maroto/v2:
// project header, client and type details, the wall table and the rating
// block (official certification or estimate).
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// ── Colour palette ──────────────────────────────────────────────────────

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorAccent    = &props.Color{Red: 22, Green: 163, Blue: 74}   // green-600
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249} // slate-100
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251} // gray-50
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240} // slate-200

	gradeColors = map[string]*props.Color{
		"A+": {Red: 22, Green: 163, Blue: 74},   // green-600
		"A":  {Red: 37, Green: 99, Blue: 235},   // blue-600
		"B":  {Red: 8, Green: 145, Blue: 178},   // cyan-600
		"C":  {Red: 217, Green: 119, Blue: 6},   // amber-600
		"D":  {Red: 220, Green: 38, Blue: 38},   // red-600
	}
)

// WallRow is one line of the report's wall table.
type WallRow struct {
	Location     string
	MaterialName string
	Conductivity decimal.Decimal
	SurfaceArea  decimal.Decimal
}

// ReportData holds all data needed to generate a project report PDF.
type ReportData struct {
	ProjectName string
	ClientName  string
	TypeName    string
	StartDate   string

	Walls []WallRow

	Grade             string
	ConsumptionKwhM2  decimal.Decimal
	IsOfficial        bool
	CertificationDate *string
}

// GenerateProjectReport creates the certification report document for the
// given project data.
func GenerateProjectReport(data ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(buildHeader(data)...)
	m.AddRows(row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	m.AddRows(row.New(6))

	m.AddRows(buildDetailsBlock(data)...)
	m.AddRows(row.New(6))

	m.AddRows(buildWallTable(data)...)
	m.AddRows(row.New(6))

	m.AddRows(buildRatingBlock(data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// ── Header ──────────────────────────────────────────────────────────────

func buildHeader(data ReportData) []core.Row {
	return []core.Row{
		row.New(20).Add(
			col.New(7).Add(
				text.New(data.ProjectName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Color: colorPrimary,
					Top:   4,
				}),
			),
			col.New(5).Add(
				text.New("INFORME CEV", props.Text{
					Size:  20,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: colorAccent,
				}),
				text.New("Calificación Energética de Viviendas", props.Text{
					Size:  8,
					Align: align.Right,
					Color: colorSecondary,
					Top:   11,
				}),
			),
		),
	}
}

// ── Details block ───────────────────────────────────────────────────────

func buildDetailsBlock(data ReportData) []core.Row {
	labelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent}
	valueStyle := props.Text{Size: 9, Color: colorPrimary}

	return []core.Row{
		row.New(5).Add(
			col.New(4).Add(text.New("CLIENTE", labelStyle)),
			col.New(4).Add(text.New("TIPO DE PROYECTO", labelStyle)),
			col.New(4).Add(text.New("FECHA DE INICIO", labelStyle)),
		),
		row.New(6).Add(
			col.New(4).Add(text.New(data.ClientName, valueStyle)),
			col.New(4).Add(text.New(data.TypeName, valueStyle)),
			col.New(4).Add(text.New(data.StartDate, valueStyle)),
		),
	}
}

// ── Wall table ──────────────────────────────────────────────────────────

func buildWallTable(data ReportData) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(text.New("MUROS", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorAccent,
			})),
		),
	}

	if len(data.Walls) == 0 {
		rows = append(rows, row.New(6).Add(
			col.New(12).Add(text.New("Sin muros registrados.", props.Text{
				Size:  8,
				Color: colorSecondary,
			})),
		))
		return rows
	}

	headerStyle := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerStyleRight := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}

	rows = append(rows, row.New(7).Add(
		col.New(4).Add(text.New("Ubicación", headerStyle)),
		col.New(4).Add(text.New("Material", headerStyle)),
		col.New(2).Add(text.New("Conductividad", headerStyleRight)),
		col.New(2).Add(text.New("Superficie (m²)", headerStyleRight)),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	}))

	normalStyle := props.Text{Size: 8, Color: colorPrimary, Top: 1}
	rightStyle := props.Text{Size: 8, Color: colorPrimary, Align: align.Right, Top: 1}

	for i, wall := range data.Walls {
		r := row.New(7).Add(
			col.New(4).Add(text.New(wall.Location, normalStyle)),
			col.New(4).Add(text.New(wall.MaterialName, normalStyle)),
			col.New(2).Add(text.New(wall.Conductivity.String(), rightStyle)),
			col.New(2).Add(text.New(wall.SurfaceArea.String(), rightStyle)),
		)
		if i%2 == 0 {
			r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
		}
		rows = append(rows, r)
	}

	return rows
}

// ── Rating block ────────────────────────────────────────────────────────

func buildRatingBlock(data ReportData) []core.Row {
	title := "CALIFICACIÓN ESTIMADA"
	if data.IsOfficial {
		title = "CALIFICACIÓN OFICIAL"
	}

	rows := []core.Row{
		row.New(1).WithStyle(&props.Cell{
			BorderType:  border.Bottom,
			BorderColor: colorBorder,
		}),
		row.New(3),
		row.New(5).Add(
			col.New(12).Add(text.New(title, props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorAccent,
			})),
		),
	}

	if data.Grade == "no-data" {
		rows = append(rows, row.New(8).Add(
			col.New(12).Add(text.New("Sin datos suficientes para calcular la calificación.", props.Text{
				Size:  9,
				Color: colorSecondary,
				Top:   1,
			})),
		))
		return rows
	}

	rows = append(rows, row.New(12).Add(
		col.New(2).Add(text.New(data.Grade, props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Color: gradeColor(data.Grade),
			Top:   1,
		})),
		col.New(10).Add(text.New(
			fmt.Sprintf("Consumo anual: %s kWh/m²", data.ConsumptionKwhM2.String()),
			props.Text{Size: 9, Color: colorPrimary, Top: 3},
		)),
	).WithStyle(&props.Cell{BackgroundColor: colorTableHead}))

	if data.IsOfficial && data.CertificationDate != nil {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New("Fecha de certificación: "+*data.CertificationDate, props.Text{
				Size:  8,
				Color: colorSecondary,
				Top:   1,
			})),
		))
	}

	return rows
}

func gradeColor(grade string) *props.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return colorSecondary
}
