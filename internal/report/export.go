package report

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
	pdfFlagColor   = props.Color{Red: 180, Green: 40, Blue: 40}
)

// ExportMonthlyPDF renders the monthly report as an A4 PDF table and saves
// it to outputPath. Flagged rows are highlighted.
func ExportMonthlyPDF(rows []MonthlyRow, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Relatório de Acessos Mensais", props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("%d usuários com %d ou mais dias de acesso", CountFlagged(rows), flagThreshold), props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4) // spacer

	// Table header
	m.AddRow(8,
		text.NewCol(5, "Usuario", props.Text{Style: fontstyle.Bold, Size: 10, Color: &pdfHeaderColor}),
		text.NewCol(3, "Mes", props.Text{Style: fontstyle.Bold, Size: 10, Color: &pdfHeaderColor}),
		text.NewCol(2, "Acessos", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: &pdfHeaderColor}),
		text.NewCol(2, "Controle", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: &pdfHeaderColor}),
	)

	for _, r := range rows {
		flagProps := props.Text{Size: 9, Align: align.Right, Color: &pdfMutedColor}
		if r.Controle == "SIM" {
			flagProps = props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: &pdfFlagColor}
		}
		m.AddRow(6,
			text.NewCol(5, r.Usuario, props.Text{Size: 9}),
			text.NewCol(3, r.Mes, props.Text{Size: 9}),
			text.NewCol(2, strconv.Itoa(r.Acessos), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, r.Controle, flagProps),
		)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}
