package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagmatch/internal/config"
	"github.com/matzehuels/dagmatch/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cch, err := c.Config.OpenCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cch.Close()

			var count int
			switch cc := cch.(type) {
			case *cache.FileCache:
				if count, err = cc.Clear(); err != nil {
					return fmt.Errorf("clear %s: %w", cc.Dir(), err)
				}
				printSuccess(out, "Cleared %d cached entries", count)
				printDetail(out, "Directory: %s", cc.Dir())
			case *cache.RedisCache:
				if count, err = cc.Clear(cmd.Context()); err != nil {
					return err
				}
				printSuccess(out, "Cleared %d cached entries", count)
				printDetail(out, "Prefix: %s", c.Config.Cache.Prefix)
			default:
				printInfo(out, "Cache is disabled")
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached results are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch c.Config.Cache.Backend {
			case config.BackendRedis:
				fmt.Fprintf(out, "%s (prefix %q)\n", redactURL(c.Config.Cache.RedisURL), c.Config.Cache.Prefix)
			case config.BackendNone:
				printInfo(out, "Cache is disabled")
			default:
				dir, err := c.Config.CacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(out, dir)
			}
			return nil
		},
	}
}

// redactURL hides the password in a Redis URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
