package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagmatch/pkg/dag/transform"
	"github.com/matzehuels/dagmatch/pkg/graph"
	"github.com/matzehuels/dagmatch/pkg/pipeline"
)

type transformOutput struct {
	Graph  graph.Graph      `json:"graph"`
	Result transform.Result `json:"result"`
}

func (c *CLI) transformCommand() *cobra.Command {
	var (
		opts   pipeline.TransformOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "transform FILE",
		Short: "Break cycles and remove transitive edges",
		Long: `Transform rewrites a graph and prints the result as JSON.

  --break-cycles  removes one back edge per cycle found by depth-first search
  --reduce        removes every edge u→v that another path from u to v implies

Reducing a cyclic graph requires --break-cycles. Edges that name missing
nodes are dropped. With --json the output also carries the counts of removed
edges.`,
		Example: `  dagmatch transform --break-cycles --reduce -o clean.json deps.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := readGraphArg(cmd, args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			out, res, err := runner.Transform(ctx, g, opts)
			if err != nil {
				return err
			}

			if output != "" {
				if err := graph.WriteGraphFile(out, output); err != nil {
					return err
				}
				printTransform(cmd.OutOrStdout(), res, len(out.Nodes), len(out.Edges))
				printFile(cmd.OutOrStdout(), output)
				return nil
			}

			if c.jsonOut {
				return writeJSON(cmd.OutOrStdout(), transformOutput{Graph: out, Result: res})
			}
			if err := graph.WriteGraph(out, cmd.OutOrStdout()); err != nil {
				return err
			}
			printTransform(cmd.ErrOrStderr(), res, len(out.Nodes), len(out.Edges))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.BreakCycles, "break-cycles", false, "remove back edges")
	cmd.Flags().BoolVar(&opts.Reduce, "reduce", false, "remove transitive edges")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the graph to a file instead of stdout")

	return cmd
}

func printTransform(w io.Writer, res transform.Result, nodes, edges int) {
	printSuccess(w, "Removed %d back edge(s) and %d transitive edge(s)",
		res.CyclesRemoved, res.TransitiveEdgesRemoved)
	printStats(w, nodes, edges)
}
