package cmd

import (
	"github.com/jsphweid/pianoscribe/sample"
	"github.com/spf13/cobra"
)

var (
	sampleOnsets string
	sampleTempo  float64
)

func init() {
	sampleCmd.Flags().StringVar(&sampleOnsets, "onsets", "", "comma separated onset times in seconds")
	sampleCmd.Flags().Float64Var(&sampleTempo, "tempo", 120, "tempo written into the file")
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample <out.mid>",
	Short: "Writes onsets to a MIDI file",
	Long:  `Writes an --onsets list to a MIDI file so a performance can be listened to or fed back into quantize`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := parseOnsetList(sampleOnsets)
		if err != nil {
			return err
		}
		return sample.WriteFile(args[0], notes, sampleTempo)
	},
}
