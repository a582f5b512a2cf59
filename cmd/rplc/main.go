package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rplc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rplc",
	Short: "Packet layout compiler",
	Long:  `rplc compiles JSON packet layout definitions into C++ headers`,
}

func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 100
	}
	return n
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false
	}
	return q
}
