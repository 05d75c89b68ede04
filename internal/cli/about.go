package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Print version and build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		disp := buildDisplay()
		disp.Banner("scanner111",
			"Version:  "+Version,
			"Go:       "+runtime.Version(),
			"Platform: "+runtime.GOOS+"/"+runtime.GOARCH,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}
