package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/photocopy/internal/config"
	"github.com/bamsammich/photocopy/internal/engine"
	"github.com/bamsammich/photocopy/internal/event"
	"github.com/bamsammich/photocopy/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// streams are the process's standard streams plus what is known about them.
type streams struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	isTTY       bool // stderr is a terminal
	interactive bool // stdin is a terminal, prompts may be asked
}

func osStreams() streams {
	return streams{
		in:          os.Stdin,
		out:         os.Stdout,
		errOut:      os.Stderr,
		isTTY:       ui.IsTTY(os.Stderr),
		interactive: ui.IsTTY(os.Stdin),
	}
}

// options holds the parsed command-line flags.
type options struct {
	monthsFile  string
	months      monthFlag
	tui         bool
	quiet       bool
	verbose     bool
	logFile     string
	verify      bool
	bwLimit     string
	report      bool
	retries     int
	noProgress  bool
	scanWorkers int
	dryRun      bool
	showVersion bool
}

func run() int {
	return execute(osStreams(), os.Args[1:])
}

// execute runs the root command with args and maps the result to an exit code.
func execute(s streams, args []string) int {
	rootCmd := newRootCmd(s)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(s.in)
	rootCmd.SetOut(s.out)
	rootCmd.SetErr(s.errOut)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return 2
	}
	return 0
}

func newRootCmd(s streams) *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "photocopy [flags] <source> <destination>",
		Short: "Copy photos into year/month folders by modification time",
		Long: `photocopy copies every file under <source> into
<destination>/<year>/<month label>/<name>, using each file's modification
time. Files whose destination already exists are left untouched. Failed
files can be retried in further passes.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(s.out, "photocopy %s\n", version)
				return nil
			}
			return runCopy(cmd, s, &opts, args[0], args[1])
		},
	}

	f := rootCmd.Flags()
	f.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	f.StringVar(&opts.monthsFile, "months", "",
		"month label override file (default: "+defaultMonthsFileName+" next to the executable)")
	f.Var(&opts.months, "month", "override one month label, e.g. Jun='06 June' (repeatable)")
	f.BoolVar(&opts.tui, "tui", false, "full-screen TUI (Bubble Tea) with retry key")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output, also list existing files")
	f.StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")
	f.BoolVar(&opts.verify, "verify", false, "verify checksums after copy (BLAKE3)")
	f.StringVar(&opts.bwLimit, "bwlimit", "", "bandwidth limit (e.g. 100M, 1G)")
	f.BoolVar(&opts.report, "report", false, "print the full report after each pass without asking")
	f.IntVar(&opts.retries, "retries", 0, "retry failed files up to N more passes without asking")
	f.BoolVar(&opts.noProgress, "no-progress", false, "disable progress display")
	f.IntVar(&opts.scanWorkers, "scan-workers", 0, "parallel directory readers (default: min(NumCPU, 8))")
	f.BoolVar(&opts.dryRun, "dry-run", false, "list where each file would go without copying")

	rootCmd.AddCommand(newDocsCmd())
	return rootCmd
}

func runCopy(cmd *cobra.Command, s streams, opts *options, src, dst string) error {
	cfg, cfgErr := config.Load()

	applyConfigDefaults(cmd, cfg.Defaults, opts)

	eventLog, closeLog, err := setupLogging(s.errOut, opts.verbose, opts.quiet, opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfgErr != nil {
		slog.Warn("failed to load config", "path", config.Path(), "error", cfgErr)
	}

	if opts.retries < 0 {
		return fmt.Errorf("invalid --retries %d: must not be negative", opts.retries)
	}

	var bwLimit int64
	if opts.bwLimit != "" {
		bwLimit, err = config.ParseSize(opts.bwLimit)
		if err != nil {
			return fmt.Errorf("invalid --bwlimit: %w", err)
		}
	}

	sources := monthSources{
		Config:       cfg.Months,
		File:         opts.monthsFile,
		FileExplicit: opts.monthsFile != "",
		Flags:        opts.months.overrides,
	}
	if sources.File == "" {
		sources.File = defaultMonthsFile()
	}
	table, err := buildMonthTable(sources)
	if err != nil {
		return fmt.Errorf("month labels: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Debug("scanning", "src", src, "dst", dst)
	eng, err := engine.New(ctx, engine.Config{
		Src:         src,
		Dst:         dst,
		Months:      table,
		ScanWorkers: opts.scanWorkers,
		Verify:      opts.verify,
		BWLimit:     bwLimit,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return &exitError{code: 1}
		}
		return err
	}
	defer eng.Close()

	if eventLog != nil {
		ui.LogEvent(eventLog, event.Event{Type: event.ScanComplete, Total: int64(eng.Total()), Pass: eng.Pass()})
	}

	if opts.dryRun {
		return printDryRun(s.out, eng)
	}

	sess := &session{
		eng:      eng,
		opts:     opts,
		streams:  s,
		eventLog: eventLog,
		prompter: ui.NewPrompter(s.in, s.errOut),
	}

	var cancelled bool
	if opts.tui && s.isTTY {
		cancelled = sess.runTUI(ctx, cfg.Theme)
	} else {
		if opts.tui {
			slog.Warn("--tui requires a terminal, falling back to inline output")
		}
		cancelled, err = sess.runInline(ctx)
		if err != nil {
			return err
		}
	}
	stop()

	if cancelled || eng.Failed() > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func printDryRun(w io.Writer, eng *engine.Engine) error {
	for _, it := range eng.All() {
		rel := eng.Relative(engine.Pair{Src: it.SrcPath, Dst: it.DstPath})
		if _, err := fmt.Fprintf(w, "%s > %s\n", rel.Src, rel.Dst); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Files to copy: %d\n", eng.Total())
	return err
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, opts *options) {
	if !cmd.Flags().Changed("tui") && defaults.TUI != nil {
		opts.tui = *defaults.TUI
	}
	if !cmd.Flags().Changed("verify") && defaults.Verify != nil {
		opts.verify = *defaults.Verify
	}
	if !cmd.Flags().Changed("bwlimit") && defaults.BWLimit != nil {
		opts.bwLimit = *defaults.BWLimit
	}
	if !cmd.Flags().Changed("months") && defaults.MonthsFile != nil {
		opts.monthsFile = *defaults.MonthsFile
	}
	if !cmd.Flags().Changed("report") && defaults.Report != nil {
		opts.report = *defaults.Report
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
