package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "acessos",
	Short: "Consolidate badge reader exports and generate visit reports",
}

func init() {
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
