package cli

import (
	"github.com/spf13/cobra"

	"github.com/scanner111/scanner111/internal/types"
)

var fcxCmd = &cobra.Command{
	Use:   "fcx",
	Short: "Run file-integrity checks only (game files, paths, documents)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(types.KindFileIntegrity)
	},
}

func init() {
	rootCmd.AddCommand(fcxCmd)
}
