package cmd

import (
	"strconv"

	"github.com/jsphweid/pianoscribe/batch"
	"github.com/jsphweid/pianoscribe/constants"
	"github.com/jsphweid/pianoscribe/db"
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/quantize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	bFlags   quantizeFlags
	mediaDir string
	outDir   string
	clean    bool
)

func init() {
	addQuantizeFlags(batchCmd, &bFlags)
	batchCmd.Flags().StringVar(&mediaDir, "media", constants.GetMediaDir(), "directory of .mid and .wav files")
	batchCmd.Flags().StringVarP(&outDir, "out", "o", constants.GetOutDir(), "where the json results go")
	batchCmd.Flags().BoolVar(&clean, "clean", false, "empty the output directory first")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch [max files]",
	Short: "Quantizes a directory of performances",
	Long:  `Quantizes every MIDI and WAV file under the media directory into one json file each`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, "bad max files %q", args[0])
			}
			maxNum = n
		}
		if _, err := bFlags.config(nil); err != nil {
			return err
		}
		opts := batch.Options{MediaDir: mediaDir, OutDir: outDir, MaxNum: maxNum, Clean: clean}
		summary, err := runBatch(opts, bFlags.tempo, bFlags.tolerance, bFlags.config)
		if err != nil {
			return err
		}
		log.Info().Int("processed", summary.Processed).Int("skipped", len(summary.Skipped)).Msg("done")
		return nil
	},
}

// Batch runs the batch pipeline with one quantizer config for every file.
func Batch(opts batch.Options, cfg quantize.Config) (*batch.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return runBatch(opts, cfg.TempoGuess, cfg.Tolerance, func(model.Notes) (quantize.Config, error) {
		return cfg, nil
	})
}

// runBatch builds the config per file so the pitch boundary can see that
// file's notes.
func runBatch(opts batch.Options, tempo float64, tolerance int, configFor func(model.Notes) (quantize.Config, error)) (*batch.Summary, error) {
	p := &batch.Processor{
		Load: func(path string) (model.Notes, error) {
			return loadNotes(path, tempo, tolerance)
		},
		Transcribe: func(source string, notes model.Notes) (*model.Transcription, error) {
			cfg, err := configFor(notes)
			if err != nil {
				return nil, err
			}
			return transcribe(source, notes, cfg)
		},
		Log: log,
	}
	if endpoint := constants.GetMetadataEndpoint(); endpoint != "" {
		store, err := db.NewMetadataStore(endpoint, constants.GetMetadataTable())
		if err != nil {
			return nil, err
		}
		p.Metadata = store
	}
	return p.Run(opts)
}
