package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"winnow/internal/action"
	"winnow/internal/cache"
	"winnow/internal/deps"
	"winnow/internal/group"
	"winnow/internal/logging"
	"winnow/internal/media"
	"winnow/internal/report"
	"winnow/internal/scanner"
)

func newFindDuplicatesCommand(ctx *commandContext) *cobra.Command {
	var (
		cacheDBFlag  string
		jobsFlag     int
		actionFlag   string
		trashDirFlag string
	)

	cmd := &cobra.Command{
		Use:   "find-duplicates <root>",
		Short: "Scan a directory tree and group files by normalized content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return exitWithCode(2, err)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return exitWithCode(2, err)
			}

			disposition, err := action.ParseDisposition(firstNonEmpty(actionFlag, cfg.Scan.Action))
			if err != nil {
				return exitWithCode(2, err)
			}
			if err := deps.Verify(cfg); err != nil {
				return exitWithCode(2, err)
			}

			candidates, err := media.Discover(args[0])
			if err != nil {
				return exitWithCode(2, err)
			}

			store, err := cache.Open(firstNonEmpty(cacheDBFlag, cfg.CacheDBPath()), logger)
			if err != nil {
				return exitWithCode(2, err)
			}
			defer store.Close()

			skipLog, err := scanner.OpenSkipLog(cfg.SkipLogPath())
			if err != nil {
				return exitWithCode(2, err)
			}
			defer skipLog.Close()

			pipeline, err := ctx.newPipeline(store, logger)
			if err != nil {
				return exitWithCode(2, err)
			}

			jobs := jobsFlag
			if jobs <= 0 {
				jobs = cfg.EffectiveJobs()
			}

			runID := uuid.NewString()
			scanLogger := logging.NewComponentLogger(logger, "scan").
				With(logging.String(logging.FieldRunID, runID))
			scanLogger.Info("scan started",
				logging.String("root", args[0]),
				logging.Int("candidates", len(candidates)),
				logging.Int("jobs", jobs),
				logging.String("action", string(disposition)))

			pool := &scanner.Pool{
				Jobs:     jobs,
				Pipeline: pipeline,
				SkipLog:  skipLog,
				Logger:   logger,
			}

			var bar *progressbar.ProgressBar
			if isatty.IsTerminal(os.Stdout.Fd()) {
				bar = progressbar.NewOptions(len(candidates),
					progressbar.OptionSetDescription("hashing"),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionClearOnFinish())
				pool.OnResult = func(scanner.Result) { _ = bar.Add(1) }
			}

			started := time.Now().UTC()
			results := pool.Run(cmd.Context(), candidates)
			if bar != nil {
				_ = bar.Finish()
			}

			builder := group.NewBuilder()
			builder.AddAll(results)
			groups := builder.Groups()

			executor := &action.Executor{
				Disposition: disposition,
				TrashDir:    firstNonEmpty(trashDirFlag, cfg.Paths.TrashDir),
				Logger:      logger,
			}
			actionSummary := executor.Apply(groups)

			scanReport := report.BuildReport(runID, args[0], started, time.Now().UTC(),
				len(results), scanner.CountSkips(results), groups)
			sink := report.NewSink(cfg.ReportDir(), logger)
			if err := sink.Write(scanReport); err != nil {
				return exitWithCode(2, err)
			}

			scanLogger.Info("scan finished",
				logging.Int("files", scanReport.FilesScanned),
				logging.Int("groups", scanReport.ActionableGroups),
				logging.Int64("reclaimable_bytes", scanReport.ReclaimableBytes),
				logging.Duration("elapsed", time.Since(started)))

			printSummary(cmd, scanReport, actionSummary, disposition, sink.ReportPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheDBFlag, "cache-db", "", "Hash cache database path")
	cmd.Flags().IntVar(&jobsFlag, "jobs", 0, "Concurrent workers (0 uses the configured default)")
	cmd.Flags().StringVar(&actionFlag, "action", "", "Disposition: report-only, hard-link, sym-link, or relocate")
	cmd.Flags().StringVar(&trashDirFlag, "trash-dir", "", "Destination directory for the relocate action")
	return cmd
}

func printSummary(cmd *cobra.Command, r report.ScanReport, actions action.Summary, disposition action.Disposition, reportPath string) {
	printer := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()

	t := table.NewWriter()
	t.SetOutputMirror(out)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	t.AppendRows([]table.Row{
		{"Files scanned", printer.Sprintf("%d", r.FilesScanned)},
		{"Files skipped", printer.Sprintf("%d", r.FilesSkipped)},
		{"Duplicate groups", printer.Sprintf("%d", r.ActionableGroups)},
		{"Reclaimable", humanize.IBytes(uint64(r.ReclaimableBytes))},
	})
	if disposition != action.ReportOnly {
		t.AppendRow(table.Row{"Duplicates collapsed", printer.Sprintf("%d", actions.Applied)})
		if actions.Failed > 0 {
			t.AppendRow(table.Row{"Action failures", printer.Sprintf("%d", actions.Failed)})
		}
	}
	t.Render()

	fmt.Fprintf(out, "Report: %s\n", reportPath)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
