// Command snapsort organizes files from a source directory into dated
// folders under a target directory, based on each file's creation time.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mbellhart/snapsort/internal/config"
	"github.com/mbellhart/snapsort/internal/event"
	"github.com/mbellhart/snapsort/internal/filter"
	"github.com/mbellhart/snapsort/internal/layout"
	"github.com/mbellhart/snapsort/internal/organize"
	"github.com/mbellhart/snapsort/internal/stats"
	"github.com/mbellhart/snapsort/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// exitError carries an exit code through cobra's error path.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

// Exit codes: 0 run completed (individual skips/failures allowed), 1 fatal
// abort mid-run, 2 configuration error before any file was touched.
const (
	exitFatal  = 1
	exitConfig = 2
)

//nolint:gocyclo,revive // cognitive-complexity: main CLI entry point wires flags, logging and the engine
func run() int {
	var (
		recursive    bool
		daily        bool
		noYear       bool
		copyFlag     bool
		endings      []string
		excludePat   string
		excludeRegex bool
		verbosity    int
		quiet        bool
		dryRun       bool
		verifyFlag   bool
		noProgress   bool
		logFile      string
		showVersion  bool
	)

	rootCmd := &cobra.Command{
		Use:   "snapsort [flags] <source> <target>",
		Short: "Sort files into dated folders by creation time",
		Long: `snapsort moves (or copies) files from a source directory into
YEAR/MONTH folders under a target directory, derived from each file's
creation time. Existing destination files are never overwritten.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "snapsort %s\n", version)
				return nil
			}

			source, target := args[0], args[1]

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults,
				&recursive, &daily, &noYear, &copyFlag, &verifyFlag, &endings)

			// Configure logging. One -v raises to info, two to debug.
			logLevel := slog.LevelWarn
			switch {
			case quiet:
				logLevel = slog.LevelError
			case verbosity == 1:
				logLevel = slog.LevelInfo
			case verbosity >= 2:
				logLevel = slog.LevelDebug
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return &exitError{code: exitConfig, err: fmt.Errorf("open log file: %w", lfErr)}
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			logger := slog.New(logHandler)
			slog.SetDefault(logger)

			// Configuration errors abort before any file is touched.
			info, err := os.Stat(source)
			if err != nil {
				return &exitError{code: exitConfig, err: fmt.Errorf("source: %w", err)}
			}
			if !info.IsDir() {
				return &exitError{code: exitConfig, err: fmt.Errorf("source %s is not a directory", source)}
			}

			rules, err := filter.New(filter.Config{
				Endings:        endings,
				Exclude:        excludePat,
				ExcludeIsRegex: excludeRegex,
			})
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}

			action := organize.Move
			if copyFlag {
				action = organize.Copy
			}
			scheme := layout.Scheme{Daily: daily, NoYear: noYear}

			if dryRun {
				logger.Info("dry run mode, no files will be touched")
			}
			logger.Debug("starting run",
				"source", source,
				"target", target,
				"recursive", recursive,
				"action", action.String(),
				"scheme", scheme.String(),
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			presenter := ui.NewPresenter(ui.Config{
				Writer:     os.Stdout,
				ErrWriter:  os.Stderr,
				Stats:      collector,
				IsTTY:      ui.IsTTY(os.Stderr.Fd()),
				Quiet:      quiet,
				Verbose:    verbosity > 0,
				NoProgress: noProgress,
			})

			// Presenter in background, engine in foreground.
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				if err := presenter.Run(events); err != nil {
					fmt.Fprintf(os.Stderr, "presenter: %v\n", err)
				}
			}()

			result := organize.Run(ctx, organize.Config{
				Source:    source,
				Target:    target,
				Recursive: recursive,
				Filter:    rules,
				Scheme:    scheme,
				Action:    action,
				DryRun:    dryRun,
				Verify:    verifyFlag,
				Events:    events,
				Stats:     collector,
				Logger:    logger,
			})
			stop()
			close(events)
			presenterWg.Wait()

			if !quiet {
				if summary := presenter.Summary(); summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
			}

			if result.Err != nil {
				logger.Error("run aborted", "error", result.Err)
				return &exitError{code: exitFatal, err: result.Err}
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "organize files in subdirectories too")
	rootCmd.Flags().BoolVarP(&daily, "daily", "d", false, "add a day folder below the month")
	rootCmd.Flags().StringSliceVarP(&endings, "endings", "e", nil, "file extensions to include (e.g. .jpg,.png); unset means all")
	rootCmd.Flags().StringVar(&excludePat, "exclude", "", "exclude files matching PATTERN (glob)")
	rootCmd.Flags().BoolVar(&excludeRegex, "exclude-regex", false, "treat --exclude as a regular expression")
	rootCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "copy files instead of moving them")
	rootCmd.Flags().BoolVar(&noYear, "no-year", false, "top-level YEAR-MONTH folders instead of nested YEAR/MONTH")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log detail (-v info, -vv debug)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would happen without touching files")
	rootCmd.Flags().BoolVar(&verifyFlag, "verify", false, "verify checksums after copy (BLAKE3)")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress display")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr)
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfig
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly
// set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	recursive, daily, noYear, copyFlag, verify *bool,
	endings *[]string,
) {
	if !cmd.Flags().Changed("recursive") && defaults.Recursive != nil {
		*recursive = *defaults.Recursive
	}
	if !cmd.Flags().Changed("daily") && defaults.Daily != nil {
		*daily = *defaults.Daily
	}
	if !cmd.Flags().Changed("no-year") && defaults.NoYear != nil {
		*noYear = *defaults.NoYear
	}
	if !cmd.Flags().Changed("copy") && defaults.Copy != nil {
		*copyFlag = *defaults.Copy
	}
	if !cmd.Flags().Changed("verify") && defaults.Verify != nil {
		*verify = *defaults.Verify
	}
	if !cmd.Flags().Changed("endings") && defaults.Endings != nil {
		*endings = *defaults.Endings
	}
}
