package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagmatch/pkg/dag/validate"
	apperrors "github.com/matzehuels/dagmatch/pkg/errors"
	"github.com/matzehuels/dagmatch/pkg/graph"
)

// errGraphInvalid makes `validate` exit non-zero after printing its report.
var errGraphInvalid = apperrors.New(apperrors.ErrCodeInvalidInput, "graph is invalid")

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a graph for cycles, orphans and dangling edges",
		Long: `Validate reports every cycle, every orphan node and every edge that names a
missing node. A graph is valid when it is acyclic and has no dangling edges;
orphans are reported but allowed.

Exits with status 1 when the graph is invalid. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
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

			res, err := runner.Validate(ctx, g)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOut {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				printValidation(out, g, res)
			}
			if !res.IsValid {
				return errGraphInvalid
			}
			return nil
		},
	}
}

func printValidation(w io.Writer, g graph.Graph, res validate.Result) {
	if res.IsValid {
		printSuccess(w, "Graph is valid")
	} else {
		printError(w, "Graph is invalid")
	}
	printStats(w, len(g.Nodes), len(g.Edges))

	if len(res.Cycles) > 0 {
		printWarning(w, "%d cycle(s)", len(res.Cycles))
		for _, cycle := range res.Cycles {
			printDetail(w, "%s", renderPath(cycle))
		}
	}
	if len(res.DanglingReferences) > 0 {
		printWarning(w, "%d dangling reference(s)", len(res.DanglingReferences))
		for _, d := range res.DanglingReferences {
			printDetail(w, "%s (missing %s)", d.Edge, d.Missing)
		}
	}
	if len(res.OrphanNodes) > 0 {
		printInfo(w, "Orphans: %s", strings.Join(res.OrphanNodes, ", "))
	}
}
