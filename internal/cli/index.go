package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	cio "github.com/gi-bielefeld/carp/pkg/io"
	"github.com/gi-bielefeld/carp/pkg/pipeline"
)

// Output formats for index.
const (
	outputText = "text"
	outputJSON = "json"
	outputTSV  = "tsv"
)

type indexFlags struct {
	analysisFlags
	format      string
	partition   bool
	uncontested bool
	workers     int
	measure     string
}

// indexCommand creates the index command.
func (c *CLI) indexCommand() *cobra.Command {
	var f indexFlags
	cmd := &cobra.Command{
		Use:   "index <file.unimog>...",
		Short: "Compute the CARP index",
		Long: `Compute the CARP index of the genomes in each UniMoG file.

Several files are analyzed concurrently, each independently.

Output formats:
  text  index and graph statistics (default)
  json  full result, including the edge partition with --partition
  tsv   contested adjacencies, one "marker end<TAB>marker end" per line
        (uncontested ones with --uncontested)`,
		Example: `  carp index genomes.unimog
  carp index --no-core -f json genomes.unimog
  carp index -f tsv --uncontested genomes.unimog > uncontested.tsv
  carp index --write-measure index.txt genomes.unimog`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIndex(cmd, args, f)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.format, "format", "f", outputText, "output format: text, json, tsv")
	cmd.Flags().BoolVar(&f.partition, "partition", false, "include the edge partition in JSON output")
	cmd.Flags().BoolVar(&f.uncontested, "uncontested", false, "write uncontested adjacencies in TSV output")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "concurrent analyses (config default)")
	cmd.Flags().StringVar(&f.measure, "write-measure", "", `also write "CARP index: N" per input to this file`)
	return cmd
}

func (c *CLI) runIndex(cmd *cobra.Command, paths []string, f indexFlags) error {
	ctx := cmd.Context()
	switch f.format {
	case outputText, outputJSON, outputTSV:
	default:
		return fmt.Errorf("invalid format: %q (must be one of: text, json, tsv)", f.format)
	}

	opts := make([]pipeline.Options, len(paths))
	for i, path := range paths {
		o, err := f.options(c, path)
		if err != nil {
			return err
		}
		o.Partition = f.partition || f.format == outputTSV
		opts[i] = o
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	workers := f.workers
	if workers == 0 {
		workers = c.Config.Analysis.Workers
	}

	prog := newProgress(c.Logger)
	results, err := runner.AnalyzeBatch(ctx, opts, workers)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d file(s)", len(paths)))

	if f.measure != "" {
		if err := writeMeasureFile(f.measure, results); err != nil {
			return err
		}
	}

	switch f.format {
	case outputJSON:
		if len(results) == 1 {
			return cio.WriteJSON(c.out, results[0])
		}
		return cio.WriteJSON(c.out, results)
	case outputTSV:
		for _, res := range results {
			pairs := res.Partition.Contested
			if f.uncontested {
				pairs = res.Partition.Uncontested
			}
			if err := cio.WriteAdjacencies(c.out, pairs); err != nil {
				return err
			}
		}
		return nil
	}

	for i, res := range results {
		if len(results) > 1 {
			printInfo("%s", paths[i])
		}
		printKeyValue("CARP index", StyleNumber.Render(strconv.Itoa(res.Index)))
		printKeyValue("genomes", fmt.Sprintf("%d", len(res.Genomes)))
		if res.Stats.CoreMarkers > 0 {
			printKeyValue("core", fmt.Sprintf("%d markers", res.Stats.CoreMarkers))
		}
		printStats(res.Stats.Nodes, res.Stats.Edges, res.CacheHit)
	}
	return nil
}

func writeMeasureFile(path string, results []*pipeline.Result) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	for _, res := range results {
		if err := cio.WriteMeasure(out, res.Index); err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}
