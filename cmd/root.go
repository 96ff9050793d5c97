package cmd

import (
	"os"

	"github.com/jsphweid/pianoscribe/constants"
	"github.com/jsphweid/pianoscribe/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var log = zerolog.Nop()

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "pianoscribe",
	Short: "Quantizes piano performances into notateable rhythms",
	Long: `pianoscribe turns note onsets from MIDI files or WAV recordings into
rhythm values, either by clustering the gaps between notes (static mode) or by
tracking tempo and phase measure by measure (dynamic mode).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(logLevel, os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.GetLogLevel(), "debug, info, warn or error")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
