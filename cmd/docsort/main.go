package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsort/internal/classify"
	"github.com/joseph-ayodele/docsort/internal/common"
	"github.com/joseph-ayodele/docsort/internal/extract"
	"github.com/joseph-ayodele/docsort/internal/ocr"
	"github.com/joseph-ayodele/docsort/internal/refdata"
	"github.com/joseph-ayodele/docsort/internal/ui"
)

// globalOptions are shared by every command.
type globalOptions struct {
	config   string
	logLevel string
	engine   string
	noColor  bool

	runner ocr.Runner // nil uses the real pdftotext
}

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(os.Stdout, os.Stderr, nil)
	if err := cmd.ExecuteContext(ctx); err != nil {
		ui.NewConsole(os.Stdout, false).Fatal(err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. A nil runner runs the real pdftotext.
func newRootCmd(stdout, stderr io.Writer, runner ocr.Runner) *cobra.Command {
	var (
		g    = globalOptions{runner: runner}
		opts sortOptions
	)
	cmd := &cobra.Command{
		Use:   "docsort",
		Short: "Rename legal-document PDFs after their type, issuer and case mark",
		Long: `docsort walks a directory tree and renames every PDF to
<doctype>_<issuer>_<mark>.pdf using text extracted from the document.
Documents that cannot be fully classified are renamed to FIX_ME<n>_... for
manual review.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.input == "" {
				return common.NewAppError(common.CodeInputPath, "required flag --input not set", nil)
			}
			return runSort(cmd.Context(), g, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.config, "config", "", "configuration file (default: config.json next to the executable)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&g.engine, "engine", "", "text extraction engine: pdftotext|native")
	pf.BoolVar(&g.noColor, "no-color", false, "disable colored output")

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "root directory of the documents (required)")
	f.StringVar(&opts.report, "report", "", "write an XLSX run report to this file")
	f.StringVar(&opts.journal, "journal", "", "record the run in a journal (SQLite path or postgres:// DSN)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "plan names without renaming any file")

	cmd.AddCommand(
		newInspectCmd(&g, stdout, stderr),
		newJournalCmd(&g, stdout, stderr),
	)
	return cmd
}

// app holds what every command builds from the configuration.
type app struct {
	cfg        *common.Config
	logger     *slog.Logger
	console    *ui.Console
	extractor  extract.TextExtractor
	classifier *classify.Classifier
}

// loadConfig reads the configuration and applies the global flags on top.
func loadConfig(g globalOptions) (*common.Config, error) {
	cfgPath := g.config
	if cfgPath == "" {
		var err error
		if cfgPath, err = common.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := common.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.engine != "" {
		cfg.OCR.Engine = g.engine
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, common.NewAppError(common.CodeConfig, fmt.Sprintf("invalid log level %q", level), err)
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
	return logger, nil
}

// bootstrap validates cfg, loads both reference tables and wires the
// extractor and the classifier. Every error it returns is fatal.
func bootstrap(cfg *common.Config, g globalOptions, stdout, stderr io.Writer) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return nil, err
	}
	logger.Info("configuration loaded", "config", cfg.Path, "engine", cfg.OCR.Engine)

	loader := refdata.NewLoader(logger)
	executors, err := loader.LoadExecutors(cfg.Sources.Executors)
	if err != nil {
		return nil, err
	}
	districts, err := loader.LoadDistricts(cfg.Sources.Districts)
	if err != nil {
		return nil, err
	}

	x := ocr.NewExtractor(ocr.Config{
		Engine:    cfg.OCR.Engine,
		Pdftotext: cfg.OCR.Pdftotext,
		Layout:    cfg.OCR.Layout,
	}, logger)
	if g.runner != nil {
		x.WithRunner(g.runner)
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		console:    ui.NewConsole(stdout, g.noColor),
		extractor:  extract.NewOCRAdapter(x, logger),
		classifier: classify.New(executors, districts, logger),
	}, nil
}
