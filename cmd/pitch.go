package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/pitch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pitchCmd)
}

var pitchCmd = &cobra.Command{
	Use:   "pitch <number|name>...",
	Short: "Converts between MIDI pitch numbers and note names",
	Long:  `Converts between MIDI pitch numbers and note names, e.g. 60 or C3 or bb0`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			res, err := lookupPitch(arg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\t%v\n", res.Pitch, res.Name)
		}
		return nil
	},
}

// lookupPitch accepts either a pitch number or a note name.
func lookupPitch(s string) (*model.PitchResponse, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		if p, err = pitch.Parse(s); err != nil {
			return nil, err
		}
	}
	n, err := pitch.ToName(p)
	if err != nil {
		return nil, err
	}
	return &model.PitchResponse{Pitch: p, Letter: n.Letter, Octave: n.Octave, Name: n.String()}, nil
}
