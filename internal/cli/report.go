package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Raphaelsan/csv/internal/pipeline"
)

var reportCmd = LeafCommand{
	Use:   "report",
	Short: "Rebuild the reports from the current ledger",
	StrFlags: []StringFlag{
		{Name: "data-dir", Usage: "directory holding the ledger and reports", Default: "data"},
		{Name: "export", Usage: "export format (pdf)"},
	},
	BoolFlags: []BoolFlag{
		{Name: "verbose", Usage: "print pipeline diagnostics"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		exportFlag, _ := cmd.Flags().GetString("export")
		verbose, _ := cmd.Flags().GetBool("verbose")
		return runReport(cmd, dataDir, exportFlag, verbose, time.Now)
	},
}.Build()

func runReport(cmd *cobra.Command, dataDir, exportFlag string, verbose bool, nowFn func() time.Time) error {
	w := cmd.OutOrStdout()
	cfg := pipeline.DefaultConfig(dataDir)
	proc := pipeline.New(cfg, newLogger(cmd.ErrOrStderr(), verbose))

	// PDF export path
	if exportFlag != "" {
		if exportFlag != "pdf" {
			return fmt.Errorf("unsupported export format %q (supported: pdf)", exportFlag)
		}
		return runReportExport(cmd, proc, cfg, nowFn())
	}

	res, err := proc.Reports()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", Primary("Relatórios atualizados."),
		Silent(fmt.Sprintf("(%d registros no consolidado)", res.Merged)))
	_, _ = fmt.Fprintf(w, "Total de clientes com 6 ou mais acessos no mês: %d\n", res.FlaggedUsers)
	for _, warn := range res.Warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", Warning("aviso:"), warn)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", Silent("Relatório mensal:"), cfg.MonthlyReportPath())
	_, _ = fmt.Fprintf(w, "%s %s\n", Silent("Relatório por dia da semana:"), cfg.WeekdayReportPath())
	_, _ = fmt.Fprintf(w, "%s %s\n", Silent("Último acesso por usuário:"), cfg.LastSeenReportPath())
	return nil
}
