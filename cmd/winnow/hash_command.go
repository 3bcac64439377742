package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"winnow/internal/deps"
	"winnow/internal/logging"
)

func newHashCommand(ctx *commandContext) *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "hash <file>",
		Short: "Print the normalized content hash of one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return exitWithCode(2, err)
			}
			if err := deps.Verify(cfg); err != nil {
				return exitWithCode(2, err)
			}

			store, closeStore, err := openCacheUnlessDisabled(cfg.CacheDBPath(), noCache)
			if err != nil {
				return exitWithCode(2, err)
			}
			defer closeStore()

			pipeline, err := ctx.newPipeline(store, logging.NewNop())
			if err != nil {
				return exitWithCode(2, err)
			}

			result := pipeline.Process(cmd.Context(), args[0])
			if !result.Outcome.Comparable() {
				return exitWithCode(2, fmt.Errorf("%s: %s %s",
					args[0], result.Outcome.Reason(), result.Outcome.Detail()))
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Outcome.Digest())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the hash cache")
	return cmd
}
