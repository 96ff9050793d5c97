package cmd

import (
	"fmt"

	"github.com/jsphweid/pianoscribe/chord"
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/quantize"
	"github.com/jsphweid/pianoscribe/util"
	"github.com/spf13/cobra"
)

var iFlags quantizeFlags

func init() {
	addQuantizeFlags(inspectCmd, &iFlags)
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid|file.wav>",
	Short: "Shows how a file is clustered",
	Long:  `Prints the gaps between onsets, the duration clusters and the unit picked from them`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := loadNotes(args[0], iFlags.tempo, iFlags.tolerance)
		if err != nil {
			return err
		}
		cfg, err := iFlags.config(notes)
		if err != nil {
			return err
		}
		q, err := quantize.New(cfg)
		if err != nil {
			return err
		}
		a, err := q.Analyze(model.NoteTimes(notes))
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "onsets: %v\n", len(notes))
		fmt.Fprintf(w, "deltas: %v\n", a.Deltas)
		fmt.Fprintf(w, "span: %.3fs\n", util.Sum(a.Deltas))
		for i, c := range a.Clusters {
			mark := ""
			if i == a.Largest {
				mark = " *"
			}
			fmt.Fprintf(w, "cluster %d: center %.4f, mean %.4f, size %d%s\n", i, c.Center, c.Mean(), c.Size(), mark)
		}
		fmt.Fprintf(w, "unit: %.4f\n", a.Unit)
		if cfg.ChordWindow > 0 {
			for i, c := range chord.Group(notes, cfg.ChordWindow) {
				fmt.Fprintf(w, "chord %d @ %.3fs: %v\n", i, c.Time, chord.CreateChordKey(c.Pitches))
			}
		}
		fmt.Fprintf(w, "rhythm values: %v\n", a.RhythmValues)
		return nil
	},
}
