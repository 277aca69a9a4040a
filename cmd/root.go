package cmd

import (
	"github.com/connorodea/ClipsMachine/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// verbosityLevel is the command-line flag for setting the log level
	verbosityLevel string
)

var rootCmd = &cobra.Command{
	Use:   "clipsmachine",
	Short: "Automated YouTube clips generator and uploader",
	Long: `ClipsMachine turns one long-form video into a set of short,
independently publishable clips tracked through a durable manifest that the
clipping, enrichment and upload passes can safely revisit.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set the global log level based on the flag
		logLevel := utils.LogLevelFromString(verbosityLevel)
		utils.SetLogLevel(logLevel)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&verbosityLevel, "log-level", "l", "normal",
		"Set the logging verbosity level: quiet, normal, verbose, debug")
}
