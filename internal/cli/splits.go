package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	cio "github.com/gi-bielefeld/carp/pkg/io"
)

const outputTable = "table"

type splitsFlags struct {
	analysisFlags
	format      string
	top         float64
	tree        bool
	residuals   bool
	interactive bool
}

// splitsCommand creates the splits command.
func (c *CLI) splitsCommand() *cobra.Command {
	var f splitsFlags
	cmd := &cobra.Command{
		Use:   "splits <file.unimog>",
		Short: "List genome bipartitions supported by uncontested adjacencies",
		Long: `List the splits of the genome set supported by uncontested, non-universal
adjacencies, ordered by support.

--tree keeps only splits compatible with every higher-supported split (a
greedy heuristic). --residuals adds, per split, the CARP index of each side
and the residual index(all) - index(side) - index(other side).

Output formats:
  table  styled table (default)
  tsv    support<TAB>genome<TAB>genome... per line
  json   full entries`,
		Example: `  carp splits --top 10 genomes.unimog
  carp splits --tree -f tsv genomes.unimog
  carp splits --residuals --interactive genomes.unimog`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSplits(cmd, args[0], f)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.format, "format", "f", outputTable, "output format: table, tsv, json")
	cmd.Flags().Float64Var(&f.top, "top", -1, "keep the N best splits, or a fraction if below 1 (config default)")
	cmd.Flags().BoolVar(&f.tree, "tree", false, "keep only mutually compatible splits")
	cmd.Flags().BoolVar(&f.residuals, "residuals", false, "compute residual CARP indices per split")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "browse splits interactively")
	return cmd
}

func (c *CLI) runSplits(cmd *cobra.Command, path string, f splitsFlags) error {
	ctx := cmd.Context()
	switch f.format {
	case outputTable, outputTSV, outputJSON:
	default:
		return fmt.Errorf("invalid format: %q (must be one of: table, tsv, json)", f.format)
	}

	opts, err := f.options(c, path)
	if err != nil {
		return err
	}
	opts.Splits = true
	opts.Tree = f.tree
	opts.Residuals = f.residuals || f.interactive
	opts.Top = c.Config.Analysis.Top
	if f.top >= 0 {
		opts.Top = f.top
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Counting split support...")
	spinner.Start()
	res, err := runner.Analyze(ctx, opts)
	if err != nil {
		spinner.StopWithError("Split analysis failed")
		return err
	}
	spinner.Stop()

	entries := res.Splits
	if f.tree {
		entries = res.Tree
	}

	if f.interactive {
		m := newSplitBrowser(res, f.tree)
		_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
		return err
	}

	switch f.format {
	case outputTSV:
		return cio.WriteSplits(c.out, entries)
	case outputJSON:
		return cio.WriteJSON(c.out, struct {
			RunID     string `json:"run_id"`
			Index     int    `json:"index"`
			Splits    any    `json:"splits"`
			Residuals any    `json:"residuals,omitempty"`
		}{res.RunID, res.Index, entries, res.Residuals})
	}

	if len(entries) == 0 {
		printInfo("No supported splits")
		return nil
	}
	fmt.Fprintln(c.out, renderSplitTable(entries, res.Residuals))
	printStats(res.Stats.Nodes, res.Stats.Edges, res.CacheHit)
	return nil
}
