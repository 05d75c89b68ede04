package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scanner111/scanner111/internal/types"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Prompt-driven session for repeated scans",
	RunE: func(cmd *cobra.Command, args []string) error {
		disp := buildDisplay()
		reader := bufio.NewReader(os.Stdin)

		disp.Banner("scanner111 interactive", "Enter a crash log path, or 'quit' to exit.")

		for {
			fmt.Print("log-file> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == "quit" || line == "exit" {
				return nil
			}

			flagLogFile = line
			flagScanDir = ""
			if err := runScan(types.KindCrashLog); err != nil {
				disp.Error(err.Error())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
