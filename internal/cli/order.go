package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagmatch/pkg/dag"
	"github.com/matzehuels/dagmatch/pkg/pipeline"
)

type orderOutput struct {
	Mode    pipeline.OrderMode `json:"mode"`
	Order   []string           `json:"order"`
	Partial bool               `json:"partial,omitempty"`
}

var orderTitles = map[pipeline.OrderMode]string{
	pipeline.OrderTopological: "Topological order",
	pipeline.OrderBFS:         "Breadth-first order",
	pipeline.OrderDFS:         "Depth-first post-order",
}

func (c *CLI) orderCommand() *cobra.Command {
	var (
		mode  string
		start []string
	)

	modes := make([]string, len(pipeline.OrderModes))
	for i, m := range pipeline.OrderModes {
		modes[i] = string(m)
	}

	cmd := &cobra.Command{
		Use:   "order FILE",
		Short: "Print the nodes of a graph in topological or traversal order",
		Long: `Order lists node IDs in one of three orders:

  topo  every edge's source before its target; nodes on cycles are left out
  bfs   breadth-first from the start nodes
  dfs   depth-first post-order from the start nodes (children before parents)

Traversals start from the roots unless --start names other nodes.`,
		Example: `  dagmatch order deps.json
  dagmatch order --mode bfs --start api,worker deps.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := pipeline.OrderOptions{Mode: pipeline.OrderMode(mode), Start: start}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			g, err := readGraphArg(cmd, args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			order, err := runner.Order(ctx, g, opts)
			if err != nil {
				return err
			}

			nodes := dag.FromGraph(g).NodeCount()
			res := orderOutput{
				Mode:    opts.Mode,
				Order:   order,
				Partial: opts.Mode == pipeline.OrderTopological && len(order) < nodes,
			}
			out := cmd.OutOrStdout()
			if c.jsonOut {
				return writeJSON(out, res)
			}

			fmt.Fprintln(out, styleTitle.Render(orderTitles[res.Mode]))
			printList(out, res.Order)
			if res.Partial {
				printWarning(out, "Graph has cycles: %d of %d nodes ordered", len(order), nodes)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(pipeline.OrderTopological), "order: "+strings.Join(modes, ", "))
	cmd.Flags().StringSliceVar(&start, "start", nil, "start nodes for bfs/dfs (default: roots)")
	_ = cmd.RegisterFlagCompletionFunc("mode", cobra.FixedCompletions(modes, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
