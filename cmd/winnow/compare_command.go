package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"winnow/internal/deps"
	"winnow/internal/logging"
	"winnow/internal/normalize"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <fileA> <fileB>",
		Short: "Compare two files by normalized content hash",
		Long: `Compare two files by normalized content hash.

Exit status is 0 when the normalized content is identical, 1 when it
differs, and 2 when either file could not be normalized.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return exitWithCode(2, err)
			}
			if err := deps.Verify(cfg); err != nil {
				return exitWithCode(2, err)
			}

			pipeline, err := ctx.newPipeline(nil, logging.NewNop())
			if err != nil {
				return exitWithCode(2, err)
			}

			outcomes := make([]string, 2)
			for i, path := range args {
				result := pipeline.Process(cmd.Context(), path)
				if !result.Outcome.Comparable() {
					return exitWithCode(2, fmt.Errorf("%s: %s %s",
						path, result.Outcome.Reason(), result.Outcome.Detail()))
				}
				outcomes[i] = result.Outcome.Digest()
			}

			out := cmd.OutOrStdout()
			if outcomes[0] == outcomes[1] {
				fmt.Fprintln(out, "identical")
				return nil
			}
			fmt.Fprintln(out, "differ")
			return exitWithCode(1, nil)
		},
	}
}

func newComparePixelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "compare-pixels <fileA> <fileB>",
		Short: "Print the pixel-level difference between two raster files",
		Long: `Print the pixel-level difference between two raster files.

The metric is ImageMagick's absolute-error count: the number of pixels
that differ. Zero means pixel-identical regardless of metadata.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return exitWithCode(2, err)
			}

			distance, err := normalize.PixelDistance(cmd.Context(), cfg.Tools.Magick, args[0], args[1])
			if err != nil {
				return exitWithCode(2, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", distance)
			return nil
		},
	}
}
