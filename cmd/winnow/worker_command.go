package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"winnow/internal/cache"
	"winnow/internal/logging"
	"winnow/internal/scanner"
)

// newWorkerCommand is the internal per-file entry point. External drivers can
// fan out one invocation per file; it shares the cache database and the skip
// log safely with concurrent siblings.
func newWorkerCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:    "worker <cache_db> <file>",
		Short:  "Hash one file (internal)",
		Hidden: true,
		Args:   cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return exitWithCode(2, err)
			}

			store, err := cache.Open(args[0], logging.NewNop())
			if err != nil {
				return exitWithCode(2, err)
			}
			defer store.Close()

			pipeline, err := ctx.newPipeline(store, logging.NewNop())
			if err != nil {
				return exitWithCode(2, err)
			}

			result := pipeline.Process(cmd.Context(), args[1])
			if !result.Outcome.Comparable() {
				if skipLog, logErr := scanner.OpenSkipLog(cfg.SkipLogPath()); logErr == nil {
					_ = skipLog.Record(result.Outcome.Reason(), result.File.Path, result.Outcome.Detail())
					_ = skipLog.Close()
				}
				return exitWithCode(2, fmt.Errorf("%s: %s %s",
					result.File.Path, result.Outcome.Reason(), result.Outcome.Detail()))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s|%s\n", result.Outcome.Digest(), result.File.Path)
			return nil
		},
	}
}
