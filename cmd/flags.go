package cmd

import (
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/quantize"
	"github.com/spf13/cobra"
)

type quantizeFlags struct {
	mode          string
	clusters      int
	seed          int64
	terminator    int
	tempo         float64
	beats         int
	tolerance     int
	alpha         float64
	beta          float64
	gamma         float64
	minRefit      int
	chordWindow   float64
	pitchBoundary bool
	pitchWindow   float64
}

func addQuantizeFlags(cmd *cobra.Command, f *quantizeFlags) {
	d := quantize.DefaultConfig()
	fs := cmd.Flags()
	fs.StringVarP(&f.mode, "mode", "m", string(d.Mode), "static or dynamic")
	fs.IntVarP(&f.clusters, "clusters", "k", d.Clusters, "duration clusters (static)")
	fs.Int64Var(&f.seed, "seed", d.Seed, "clustering seed (static)")
	fs.IntVar(&f.terminator, "terminator", int(d.Terminator), "rhythm value of the last note")
	fs.Float64VarP(&f.tempo, "tempo", "t", d.TempoGuess, "initial tempo guess in bpm (dynamic)")
	fs.IntVarP(&f.beats, "beats", "b", d.BeatsPerMeasure, "beats per measure (dynamic)")
	fs.IntVar(&f.tolerance, "tolerance", d.Tolerance, "log2 of subdivisions per beat (dynamic)")
	fs.Float64Var(&f.alpha, "alpha", d.Alpha, "weight for matching onsets (dynamic)")
	fs.Float64Var(&f.beta, "beta", d.Beta, "penalty for tempo changes (dynamic)")
	fs.Float64Var(&f.gamma, "gamma", d.Gamma, "penalty for offset changes (dynamic)")
	fs.IntVar(&f.minRefit, "min-refit", d.MinRefitOnsets, "fewest onsets in a measure that trigger a tempo refit (dynamic)")
	fs.Float64Var(&f.chordWindow, "chord-window", d.ChordWindow, "merge onsets closer than this many seconds")
	fs.BoolVar(&f.pitchBoundary, "pitch-boundary", false, "place bar lines on the lowest nearby note (dynamic, MIDI only)")
	fs.Float64Var(&f.pitchWindow, "pitch-window", quantize.DefaultPitchWindow, "how many beats a bar line may move with --pitch-boundary")
}

// config builds a validated quantizer config. notes feed the pitch boundary
// and may be nil.
func (f *quantizeFlags) config(notes model.Notes) (quantize.Config, error) {
	mode, err := quantize.ParseMode(f.mode)
	if err != nil {
		return quantize.Config{}, err
	}
	cfg := quantize.Config{
		Mode:            mode,
		Clusters:        f.clusters,
		Seed:            f.seed,
		Terminator:      model.RhythmValue(f.terminator),
		TempoGuess:      f.tempo,
		BeatsPerMeasure: f.beats,
		Tolerance:       f.tolerance,
		Alpha:           f.alpha,
		Beta:            f.beta,
		Gamma:           f.gamma,
		MinRefitOnsets:  f.minRefit,
		ChordWindow:     f.chordWindow,
	}
	if f.pitchBoundary && len(notes) > 0 {
		cfg.Boundary = quantize.PitchBoundary(notes, f.pitchWindow)
	}
	return cfg, cfg.Validate()
}
