package batch

import (
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/pianoscribe/file"
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/util"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type MetadataSource interface {
	GetPieceMetadatas(filenames []string) (map[string]model.PieceMetadata, error)
}

type Processor struct {
	Load       func(path string) (model.Notes, error)
	Transcribe func(source string, notes model.Notes) (*model.Transcription, error)
	// optional
	Metadata MetadataSource
	Log      zerolog.Logger
	// how long progress must be quiet before it is logged
	ProgressInterval time.Duration
}

type Options struct {
	MediaDir string
	OutDir   string
	// 0 means every file
	MaxNum int
	// wipe OutDir before writing
	Clean bool
}

type Summary struct {
	Processed int      `json:"processed"`
	Skipped   []string `json:"skipped"`
	Outputs   []string `json:"outputs"`
}

func isMedia(path string) bool {
	return util.IsMidiPath(path) || util.IsWavPath(path)
}

// Run transcribes every media file under opts.MediaDir into one json file
// each. Files that cannot be read or quantized are skipped and listed in the
// summary.
func (p *Processor) Run(opts Options) (*Summary, error) {
	if opts.MediaDir == "" {
		return nil, errors.New("no media directory, set MEDIA_PATH or --media")
	}
	paths, err := util.GatherAllPaths(opts.MediaDir, opts.MaxNum, isMedia)
	if err != nil {
		return nil, err
	}
	if opts.Clean {
		err = util.RecreateOutputDir(opts.OutDir)
	} else {
		err = util.EnsureDir(opts.OutDir)
	}
	if err != nil {
		return nil, err
	}

	metadatas, err := p.lookupMetadata(opts.MediaDir, paths)
	if err != nil {
		return nil, err
	}

	interval := p.ProgressInterval
	if interval == 0 {
		interval = 250 * time.Millisecond
	}
	progress := debounce.New(interval)

	outNames := file.CreateOutputNameMap(opts.MediaDir, paths)
	res := &Summary{Skipped: []string{}, Outputs: []string{}}
	for i, path := range paths {
		done, total := i+1, len(paths)
		progress(func() {
			p.Log.Info().Msgf("Processed %v of %v files", done, total)
		})

		name := file.RelativeName(opts.MediaDir, path)
		t, err := p.process(path, name)
		if err != nil {
			p.Log.Warn().Err(err).Msgf("Skipping %v", name)
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if m, ok := metadatas[name]; ok {
			t.Metadata = &m
		}

		out := filepath.Join(opts.OutDir, outNames[path])
		if err := util.WriteJSON(out, t); err != nil {
			return res, err
		}
		res.Processed++
		res.Outputs = append(res.Outputs, out)
	}
	return res, nil
}

func (p *Processor) process(path, name string) (*model.Transcription, error) {
	notes, err := p.Load(path)
	if err != nil {
		return nil, err
	}
	return p.Transcribe(name, notes)
}

func (p *Processor) lookupMetadata(root string, paths []string) (map[string]model.PieceMetadata, error) {
	if p.Metadata == nil {
		return nil, nil
	}
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = file.RelativeName(root, path)
	}
	return p.Metadata.GetPieceMetadatas(names)
}
