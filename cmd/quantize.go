package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/pianoscribe/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	qFlags     quantizeFlags
	onsetsArg  string
	asJSON     bool
	lilyPondTo string
)

func init() {
	addQuantizeFlags(quantizeCmd, &qFlags)
	quantizeCmd.Flags().StringVar(&onsetsArg, "onsets", "", "comma separated onset times in seconds instead of a file")
	quantizeCmd.Flags().BoolVar(&asJSON, "json", false, "print the full transcription as JSON")
	quantizeCmd.Flags().StringVar(&lilyPondTo, "lilypond", "", "write a LilyPond file here")
	rootCmd.AddCommand(quantizeCmd)
}

var quantizeCmd = &cobra.Command{
	Use:   "quantize [file.mid|file.wav]",
	Short: "Quantizes one performance",
	Long:  `Quantizes the onsets of a MIDI file, a WAV recording or an --onsets list`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, source, err := notesFromArgs(args, onsetsArg, &qFlags)
		if err != nil {
			return err
		}
		cfg, err := qFlags.config(notes)
		if err != nil {
			return err
		}
		t, err := transcribe(source, notes, cfg)
		if err != nil {
			return err
		}
		if lilyPondTo != "" {
			if err := os.WriteFile(lilyPondTo, []byte(t.LilyPond), 0666); err != nil {
				return errors.Wrapf(err, "could not write %v", lilyPondTo)
			}
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(t)
		}
		printTranscription(cmd.OutOrStdout(), t)
		return nil
	},
}

func notesFromArgs(args []string, list string, f *quantizeFlags) (model.Notes, string, error) {
	switch {
	case len(args) == 1 && list != "":
		return nil, "", errors.New("pass either a file or --onsets, not both")
	case len(args) == 1:
		notes, err := loadNotes(args[0], f.tempo, f.tolerance)
		return notes, args[0], err
	case list != "":
		notes, err := parseOnsetList(list)
		return notes, "onsets", err
	}
	return nil, "", errors.New("nothing to quantize: pass a file or --onsets")
}

func parseOnsetList(s string) (model.Notes, error) {
	var notes model.Notes
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		t, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad onset %q", field)
		}
		notes = append(notes, model.Note{Time: t})
	}
	return notes, nil
}

func printTranscription(w io.Writer, t *model.Transcription) {
	fmt.Fprintf(w, "mode: %v\n", t.Mode)
	fmt.Fprintf(w, "onsets: %v\n", t.NumOnsets)
	fmt.Fprintf(w, "rhythm values: %v\n", t.RhythmValues)
	if t.MeanTempo > 0 {
		fmt.Fprintf(w, "mean tempo: %.2f bpm\n", t.MeanTempo)
	}
	for _, m := range t.Measures {
		fmt.Fprintf(w, "measure %d @ %.1fs, %.2f bpm -> %.2f bpm: %v\n", m.Index, m.Start, m.Tempo, m.FittedTempo, m.Positions)
	}
}
