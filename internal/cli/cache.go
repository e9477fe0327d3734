package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treedisplay/internal/config"
	"github.com/matzehuels/treedisplay/pkg/cache"
	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, where, err := c.clearCache(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("%s", where)
			return nil
		},
	}
}

// clearCache empties the configured backend and describes where it lives.
func (c *CLI) clearCache(ctx context.Context) (int, string, error) {
	ch, _, err := c.newCache(ctx, false)
	if err != nil {
		return 0, "", err
	}
	defer ch.Close()

	switch ch := ch.(type) {
	case *cache.FileCache:
		n, err := ch.Clear(ctx)
		return n, "Directory: " + ch.Dir(), err
	case *cache.RedisCache:
		n, err := ch.Clear(ctx, c.Config.Cache.Prefix)
		return n, fmt.Sprintf("Redis: %s/%d prefix %q", c.Config.Cache.RedisAddr, c.Config.Cache.RedisDB, c.Config.Cache.Prefix), err
	default:
		return 0, "", nil
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Backend != config.BackendFile {
				return apperrors.New(apperrors.ErrCodeUnsupported, "cache backend %q has no directory", c.Config.Cache.Backend)
			}
			dir, err := c.Config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
