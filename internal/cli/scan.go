package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gi-bielefeld/carp/pkg/carp"
	cio "github.com/gi-bielefeld/carp/pkg/io"
	"github.com/gi-bielefeld/carp/pkg/pipeline"
)

type scanFlags struct {
	analysisFlags
	format    string
	depth     int
	workers   int
	histogram string
	lower     float64
	upper     float64
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var f scanFlags
	cmd := &cobra.Command{
		Use:   "scan <file.unimog>",
		Short: "Score every marker by the conflict in its neighborhood",
		Long: `Score every marker by the local CARP index of its neighborhood: the
adjacencies reachable within --depth marker steps, counting an adjacency as
contested when it shares an extremity with another reachable adjacency.

--lower and --upper keep only markers whose score lies in that quantile band
of the score distribution. Whole score values are kept, so a band narrower
than one value may select nothing.

Output formats:
  tsv   "#marker<TAB>local_index" header, one marker per line (default)
  json  full result`,
		Example: `  carp scan genomes.unimog
  carp scan --depth 20 --histogram hist.tsv genomes.unimog
  carp scan --lower 0.99 genomes.unimog`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd, args[0], f)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.format, "format", "f", outputTSV, "output format: tsv, json")
	cmd.Flags().IntVarP(&f.depth, "depth", "d", -1, "neighborhood radius in markers (config default)")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "concurrent scanners (config default)")
	cmd.Flags().StringVar(&f.histogram, "histogram", "", "write the score histogram as TSV to this file")
	cmd.Flags().Float64Var(&f.lower, "lower", 0, "lower quantile of the band to report")
	cmd.Flags().Float64Var(&f.upper, "upper", 1, "upper quantile of the band to report")
	return cmd
}

func (c *CLI) runScan(cmd *cobra.Command, path string, f scanFlags) error {
	ctx := cmd.Context()
	switch f.format {
	case outputTSV, outputJSON:
	default:
		return fmt.Errorf("invalid format: %q (must be one of: tsv, json)", f.format)
	}
	if f.lower < 0 || f.upper > 1 || f.lower > f.upper {
		return fmt.Errorf("invalid quantile band [%g, %g): need 0 <= lower <= upper <= 1", f.lower, f.upper)
	}

	opts, err := f.options(c, path)
	if err != nil {
		return err
	}
	sopts := pipeline.ScanOptions{Depth: c.Config.Analysis.ScanDepth, Workers: c.Config.Analysis.Workers}
	if f.depth >= 0 {
		sopts.Depth = f.depth
	}
	if f.workers > 0 {
		sopts.Workers = f.workers
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Scanning neighborhoods...")
	spinner.Start()
	res, err := runner.Scan(ctx, opts, sopts)
	if err != nil {
		spinner.StopWithError("Scan failed")
		return err
	}
	spinner.Stop()

	if f.histogram != "" {
		if err := writeHistogramFile(f.histogram, res.Histogram); err != nil {
			return err
		}
		c.Logger.Debug("wrote histogram", "path", f.histogram, "bins", len(res.Histogram))
	}

	if f.lower > 0 || f.upper < 1 {
		res.Scores = carp.Percentile(res.Scores, f.lower, f.upper)
	}
	if f.format == outputJSON {
		return cio.WriteJSON(c.out, res)
	}
	return cio.WriteScores(c.out, res.Scores)
}

func writeHistogramFile(path string, bins []carp.Bin) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := cio.WriteHistogram(out, bins); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
