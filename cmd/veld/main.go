package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"veld/internal/logging"
	"veld/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "veld",
	Short: "Veld language compiler and build server",
	Long:  `Veld is a programming language toolchain with a Build Server Protocol frontend`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		switch mode, _ := cmd.Flags().GetString("color"); mode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		default:
			color.NoColor = !isTerminal(os.Stdout)
		}
	},
}

func main() {
	logging.Configure()

	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(bspCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
