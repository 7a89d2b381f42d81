package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Raphaelsan/csv/internal/pipeline"
	"github.com/Raphaelsan/csv/internal/report"
)

// runReportExport renders the monthly report as a PDF in the configured
// output directory, named after the generation date.
func runReportExport(cmd *cobra.Command, proc *pipeline.Processor, cfg pipeline.Config, now time.Time) error {
	rows, err := proc.MonthlyRows()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nenhum registro para exportar.")
		return nil
	}

	outputPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("relatorio-acessos-%s.pdf", now.Format("2006-01-02")))
	if err := report.ExportMonthlyPDF(rows, outputPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported report to %s\n", outputPath)
	return nil
}
