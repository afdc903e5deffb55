package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gi-bielefeld/carp/pkg/errors"
	"github.com/gi-bielefeld/carp/pkg/pipeline"
)

// analysisFlags are shared by every command that runs the pipeline.
type analysisFlags struct {
	noCore  bool
	core    bool
	genomes []string
	noCache bool
	refresh bool
	verify  bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVar(&f.core, "core", false, "restrict genomes to markers present in all of them (config default)")
	fl.BoolVar(&f.noCore, "no-core", false, "use all markers")
	fl.StringSliceVar(&f.genomes, "genomes", nil, "only analyze these genomes (comma-separated)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
	fl.BoolVar(&f.verify, "verify", false, "re-check partition invariants after classification")
	cmd.MarkFlagsMutuallyExclusive("core", "no-core")
}

// options builds pipeline options for the UniMoG file at path.
func (f *analysisFlags) options(c *CLI, path string) (pipeline.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return pipeline.Options{}, fmt.Errorf("read %s: %w", path, err)
	}

	core := c.Config.Analysis.Core
	if f.core {
		core = true
	}
	if f.noCore {
		core = false
	}
	return pipeline.Options{
		Input:   data,
		Only:    f.genomes,
		Core:    core,
		Refresh: f.refresh,
		Verify:  f.verify,
		Logger:  c.Logger,
	}, nil
}
