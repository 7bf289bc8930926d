package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gouthamssc/jsoncol/internal/config"
	"github.com/gouthamssc/jsoncol/internal/converter"
	"github.com/gouthamssc/jsoncol/internal/errors"
	"github.com/gouthamssc/jsoncol/internal/output"
	"github.com/gouthamssc/jsoncol/internal/writer"
)

// CLI defines the command-line interface
var CLI struct {
	Input   string `arg:"" optional:"" help:"Path to input JSON or JSON Lines file." type:"path"`
	Output  string `arg:"" optional:"" help:"Path to the destination columnar file." type:"path"`
	Format  string `help:"Output format. Inferred from the output extension when set to auto." short:"f" enum:"auto,arrow,parquet" default:"auto"`
	Strict  bool   `help:"Abort on the first malformed JSON line instead of skipping it." short:"s"`
	Typed   bool   `help:"Infer one column type per field instead of stringifying values." short:"t"`
	Preview int    `help:"Print the first N rows of the converted table." short:"n"`
	Config  string `help:"Path to a config file. Searched for in parent directories when omitted." short:"c" type:"path"`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsoncol"),
		kong.Description("Convert JSON and JSON Lines files to columnar Arrow or Parquet files"),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsoncol version %s\n", Version)
		return
	}

	if CLI.Input == "" || CLI.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: both an input path and an output path are required")
		fmt.Fprintln(os.Stderr, "\nFor help, run: jsoncol --help")
		os.Exit(1)
	}

	logger, err := buildLogger(CLI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Error("conversion failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// run executes the main program logic
func run(logger *zap.Logger) error {
	// 1. Load config defaults and merge CLI flags over them
	cfg, err := loadConfig()
	if err != nil {
		return errors.NewInputError("failed to load config", err)
	}
	mergeCLI(cfg)

	// 2. Resolve the output format
	format, err := resolveFormat(cfg.Format, CLI.Output)
	if err != nil {
		return err
	}

	// 3. Fail early when the input file does not exist, before any parsing
	if _, err := os.Stat(CLI.Input); os.IsNotExist(err) {
		return errors.NewInputError(
			fmt.Sprintf("file '%s' not found", CLI.Input),
			errors.ErrFileNotFound,
		)
	}

	// 4. Run the pipeline
	conv := converter.New(logger, cfg)
	result, err := conv.Run(CLI.Input, CLI.Output, converter.Options{
		Strict: cfg.Strict,
		Typed:  cfg.Typed,
		Format: format,
	})
	if err != nil {
		return err
	}

	// 5. Optional preview of the converted table
	if cfg.Preview > 0 {
		output.WritePreview(os.Stdout, result.Table, cfg.Preview)
	}
	return nil
}

// loadConfig reads the config file named on the command line, or the nearest
// one found walking up from the working directory.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	return config.LoadConfig(path)
}

// mergeCLI overlays explicitly set CLI flags on the config defaults. Boolean
// flags only ever turn behavior on; the config file provides the off state.
func mergeCLI(cfg *config.Config) {
	if CLI.Format != "auto" {
		cfg.Format = CLI.Format
	}
	if CLI.Strict {
		cfg.Strict = true
	}
	if CLI.Typed {
		cfg.Typed = true
	}
	if CLI.Preview > 0 {
		cfg.Preview = CLI.Preview
	}
}

// resolveFormat maps the configured format name to a writer format, inferring
// from the output extension in auto mode.
func resolveFormat(name, outputPath string) (writer.Format, error) {
	if name == "" || name == "auto" {
		return writer.DetectFormat(outputPath), nil
	}
	return writer.ParseFormat(name)
}

// buildLogger creates the process logger. Log records go to standard output
// so that converted data files are the only other artifact of a run.
func buildLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
