package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gi-bielefeld/carp/pkg/pipeline"
)

type exportFlags struct {
	analysisFlags
	output string
	format string
	colors bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export <file.unimog>",
		Short: "Draw the breakpoint graph as DOT or SVG",
		Long: `Draw the breakpoint graph with contested adjacencies in red.

The format follows the output extension (.dot or .svg) unless --format is
given. Without --output the drawing is written to stdout.`,
		Example: `  carp export -o graph.svg genomes.unimog
  carp export -f dot --colors genomes.unimog | dot -Tpng > graph.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := f.options(c, args[0])
			if err != nil {
				return err
			}
			format := f.format
			if format == "" {
				format = formatFromPath(f.output)
			}

			runner, err := c.newRunner(ctx, f.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			out, hit, err := runner.Render(ctx, opts, pipeline.RenderOptions{Format: format, Colors: f.colors})
			if err != nil {
				return err
			}
			if f.output == "" {
				_, err := c.out.Write(out)
				return err
			}
			if err := os.WriteFile(f.output, out, 0644); err != nil {
				return fmt.Errorf("write %s: %w", f.output, err)
			}
			status := "rendered"
			if hit {
				status = "cached"
			}
			printSuccess("Exported %s graph (%s)", strings.ToUpper(format), status)
			printFile(f.output)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "dot or svg (default from extension, else svg)")
	cmd.Flags().BoolVar(&f.colors, "colors", false, "label edges with genome names")
	return cmd
}

func formatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".dot") || strings.EqualFold(filepath.Ext(path), ".gv") {
		return pipeline.FormatDOT
	}
	return pipeline.FormatSVG
}
