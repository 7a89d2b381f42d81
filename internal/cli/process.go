package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Raphaelsan/csv/internal/pipeline"
)

var processCmd = LeafCommand{
	Use:   "process [file]",
	Short: "Merge a badge reader export into the ledger and rebuild the reports",
	Args:  cobra.MaximumNArgs(1),
	StrFlags: []StringFlag{
		{Name: "data-dir", Usage: "directory holding the ledger and reports", Default: "data"},
	},
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip the confirmation prompt"},
		{Name: "verbose", Usage: "print pipeline diagnostics"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		yes, _ := cmd.Flags().GetBool("yes")
		verbose, _ := cmd.Flags().GetBool("verbose")

		var file string
		if len(args) > 0 {
			file = args[0]
		}

		confirm := NewConfirmFunc()
		if yes {
			confirm = AlwaysYes()
		}

		return runProcess(cmd, dataDir, file, verbose, confirm)
	},
}.Build()

func runProcess(cmd *cobra.Command, dataDir, file string, verbose bool, confirm ConfirmFunc) error {
	w := cmd.OutOrStdout()
	cfg := pipeline.DefaultConfig(dataDir)

	if file == "" {
		picked, err := pickExportFile(cmd, cfg)
		if err != nil {
			return err
		}
		file = picked
	}

	ok, err := confirm(fmt.Sprintf("Processar %s?", filepath.Base(file)))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, Silent("cancelado"))
		return nil
	}

	proc := pipeline.New(cfg, newLogger(cmd.ErrOrStderr(), verbose))
	res, err := proc.Process(file)
	if err != nil {
		return err
	}

	printRunSummary(w, res)
	_, _ = fmt.Fprintf(w, "%s %s\n", Silent("Arquivo consolidado:"), cfg.LedgerPath)
	return nil
}

func printRunSummary(w io.Writer, res pipeline.Result) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Primary("Processamento concluído."),
		Silent(fmt.Sprintf("(%d registros lidos, %d duplicados ignorados)", res.Ingested, res.Duplicates)))
	_, _ = fmt.Fprintf(w, "%s %d\n", Silent("Registros no consolidado:"), res.Merged)
	_, _ = fmt.Fprintf(w, "Total de clientes com 6 ou mais acessos no mês: %d\n", res.FlaggedUsers)
	for _, warn := range res.Warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", Warning("aviso:"), warn)
	}
}
