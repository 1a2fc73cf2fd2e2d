package cli

import (
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/dagmatch/pkg/errors"
	"github.com/matzehuels/dagmatch/pkg/pipeline"
)

// errNoMatch makes `match` exit non-zero when the pattern does not occur.
var errNoMatch = apperrors.New(apperrors.ErrCodeNotFound, "pattern not found in target")

func (c *CLI) matchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "match PATTERN TARGET",
		Short: "Find a pattern graph inside a target graph",
		Long: `Match searches TARGET for a subgraph with the same shape as PATTERN: every
pattern node is mapped to a distinct target node with an equal payload, and
every pattern edge to a target edge between the mapped nodes.

Pattern roots may have more children in the target and pattern leaves more
parents; interior pattern nodes must match their degrees exactly.

Prints the first mapping found and exits with status 1 when there is none.
Pattern and target sizes are bounded by [limits] in the config file.`,
		Example: `  dagmatch match diamond.json deps.json
  dagmatch match --json diamond.json deps.json | jq .mapping`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pattern, err := readGraphArg(cmd, args[0])
			if err != nil {
				return err
			}
			target, err := readGraphArg(cmd, args[1])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			var spin *spinner
			if !c.jsonOut && isTerminal(os.Stderr) {
				spin = startSpinner(ctx, cmd.ErrOrStderr(), "Searching")
			}
			res, err := runner.Match(ctx, pattern, target)
			spin.stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOut {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				printMatch(cmd, res)
			}
			if !res.Found {
				return errNoMatch
			}
			return nil
		},
	}
}

func printMatch(cmd *cobra.Command, res pipeline.MatchResult) {
	out := cmd.OutOrStdout()
	if !res.Found {
		printError(out, "No match")
	} else {
		printSuccess(out, "Pattern found")
		for _, p := range res.Mapping.Pairs() {
			printKeyValue(out, p.Pattern, arrow+" "+p.Target)
		}
	}
	printDetail(out, "%d checks · %d backtracks · depth %d",
		res.Stats.Checks, res.Stats.Backtracks, res.Stats.MaxDepth)
}
