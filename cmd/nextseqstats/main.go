package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"nextseqstats/internal/config"
	"nextseqstats/internal/logging"
	"nextseqstats/internal/pipeline"
	"nextseqstats/internal/report"
	"nextseqstats/internal/version"
)

// Exit codes used with --strict-exit. Usage errors always exit 2.
const (
	exitOK          = 0
	exitPartial     = 1
	exitUsage       = 2
	exitNoInput     = 3
	exitBadInput    = 4
	exitOutput      = 5
	exitInterrupted = 130
)

func main() {
	os.Exit(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, args, stdout, stderr)
}

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type flags struct {
	configPath string
	envFile    string
	base       string
	tsv        string
	html       string
	verbose    string
	workers    int
	summary    bool
	stats      bool
	strictExit bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var f flags
	code := exitOK
	cmd := &cobra.Command{
		Use:   "nextseqstats --base <Folder>",
		Short: "Collect NextSeq run statistics into a table and an HTML report",
		Long: `Scan a folder of NextSeq run folders, read RunParameters.xml and
RunCompletionStatus.xml from each run, and write a tab separated table plus
an HTML page plotting the runs per month.`,
		Version:       version.Current(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), f)
			if err != nil {
				return err
			}
			code = execute(cmd.Context(), cfg, f.stats, stdout, stderr)
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	fl := cmd.Flags()
	fl.StringVar(&f.base, "base", "", "base directory holding the run folders")
	fl.StringVar(&f.tsv, "tsv", config.DefaultTSV, "TSV table output file")
	fl.StringVar(&f.html, "html", config.DefaultHTML, "HTML report output file")
	fl.StringVar(&f.verbose, "verbose", "info", "log level: "+strings.Join(logging.Levels, "|"))
	fl.StringVar(&f.configPath, "config", "", "YAML config file")
	fl.StringVar(&f.envFile, "env-file", ".env", "dotenv file with NEXTSEQ_* settings")
	fl.IntVar(&f.workers, "workers", 1, "run folders extracted concurrently (0 = one per CPU)")
	fl.BoolVar(&f.summary, "summary", false, "print a monthly summary table")
	fl.BoolVar(&f.stats, "stats", false, "print stage metrics as JSON")
	fl.BoolVar(&f.strictExit, "strict-exit", false, "exit non-zero on partial success and errors")

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return code
	}
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	}
	// Configuration files that cannot be read are reported like any other
	// batch failure.
	fmt.Fprintf(stdout, "Error: %v\n", err)
	if f.strictExit {
		return exitNoInput
	}
	return exitOK
}

// resolveConfig layers defaults, the YAML file, the dotenv file, the
// environment and finally explicitly set flags.
func resolveConfig(fs *pflag.FlagSet, f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(f.envFile); err != nil {
		return nil, err
	}
	if fs.Changed("base") {
		cfg.Base = f.base
	}
	if fs.Changed("tsv") {
		cfg.TSV = f.tsv
	}
	if fs.Changed("html") {
		cfg.HTML = f.html
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("summary") {
		cfg.Summary = f.summary
	}
	if fs.Changed("strict-exit") {
		cfg.StrictExit = f.strictExit
	}
	if err := cfg.Validate(); err != nil {
		return nil, usageError{err}
	}
	return cfg, nil
}

func execute(ctx context.Context, cfg *config.Config, stats bool, stdout, stderr io.Writer) int {
	log, err := logging.New(cfg.Verbose, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	defer func() { _ = log.Sync() }()

	res, err := pipeline.Run(ctx, pipeline.Options{
		Base:        cfg.Base,
		TablePath:   cfg.TSV,
		ReportPath:  cfg.HTML,
		Workers:     cfg.Workers,
		MaxXMLBytes: cfg.MaxXMLBytes,
		Logger:      log,
	})
	if err != nil {
		return failure(err, cfg.StrictExit, stdout, stderr)
	}

	if cfg.Summary {
		if err := report.WriteSummary(stdout, res.Months, len(res.Records)); err != nil {
			fmt.Fprintf(stderr, "summary: %v\n", err)
		}
	}
	if stats {
		printStats(stdout, res)
	}

	if !cfg.StrictExit {
		return exitOK
	}
	switch {
	case len(res.Records) == 0:
		return exitNoInput
	case res.Partial():
		return exitPartial
	}
	return exitOK
}

func failure(err error, strict bool, stdout, stderr io.Writer) int {
	kind := pipeline.KindOf(err)
	if kind == pipeline.KindInterrupted {
		fmt.Fprintln(stderr, "Keyboard interrupt...Goodbye")
		if strict {
			return exitInterrupted
		}
		return exitOK
	}
	fmt.Fprintf(stdout, "Error: %v\n", err)
	if !strict {
		return exitOK
	}
	switch kind {
	case pipeline.KindConfig:
		return exitNoInput
	case pipeline.KindOutput:
		return exitOutput
	default:
		return exitBadInput
	}
}

func printStats(w io.Writer, res pipeline.Result) {
	b, err := json.MarshalIndent(res.Metrics, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintln(w, string(b))
}
