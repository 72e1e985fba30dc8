// Package main provides the CLI entry point for the container encoder.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/ticevid/encoder/internal/config"
	"github.com/ticevid/encoder/internal/containerdef"
	"github.com/ticevid/encoder/internal/logging"
	"github.com/ticevid/encoder/internal/processing"
	"github.com/ticevid/encoder/internal/reporter"
	"github.com/ticevid/encoder/internal/util"
)

const (
	appName    = "ticevid-encoder"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "encode":
		if err := runEncode(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, appVersion)
	case "help", "--help", "-h":
		printUsage()
	default:
		// No subcommand: treat the arguments as an encode invocation.
		if err := runEncode(os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Printf(`%s - TI-CE video container encoder

Usage:
  %s <command> [options]
  %s <container.toml> <out.bin> [options]   (same as encode)

Commands:
  encode    Encode a container.toml into a device container file
  version   Print version information
  help      Show this help message

Run '%s encode --help' for encode command options.
`, appName, appName, appName, appName)
}

type encodeArgs struct {
	containerPath string
	outputPath    string
	logDir        string
	verbose       bool
	noLog         bool
	keepFrames    bool
	workers       int
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Encode a container definition into a device container file.

Usage:
  %s encode <container.toml> <out.bin> [options]

Options:
  -j, --workers <N>      Parallel frame-encode workers. Default: %d (NumCPU)
  -v, --verbose          Enable verbose output for troubleshooting
  --log-dir <PATH>       Log directory (defaults to ~/.local/state/ticevid-encoder/logs)
  --no-log               Disable log file creation
  --keep-frames          Keep extracted/encoded frame files after a successful run
`, appName, runtime.NumCPU())
	}

	var ea encodeArgs
	fs.IntVar(&ea.workers, "j", runtime.NumCPU(), "Parallel frame-encode workers")
	fs.IntVar(&ea.workers, "workers", runtime.NumCPU(), "Parallel frame-encode workers")
	fs.BoolVar(&ea.verbose, "v", false, "Enable verbose output")
	fs.BoolVar(&ea.verbose, "verbose", false, "Enable verbose output")
	fs.StringVar(&ea.logDir, "log-dir", "", "Log directory")
	fs.BoolVar(&ea.noLog, "no-log", false, "Disable log file creation")
	fs.BoolVar(&ea.keepFrames, "keep-frames", false, "Keep frame files after a successful run")

	if err := fs.Parse(args); err != nil {
		return err
	}

	positional := fs.Args()
	if len(positional) != 2 {
		fs.Usage()
		return fmt.Errorf("expected exactly 2 positional arguments, got %d", len(positional))
	}
	ea.containerPath = positional[0]
	ea.outputPath = positional[1]

	return executeEncode(ea)
}

func executeEncode(ea encodeArgs) error {
	containerPath, err := filepath.Abs(ea.containerPath)
	if err != nil {
		return fmt.Errorf("invalid container path: %w", err)
	}
	outputPath, err := filepath.Abs(ea.outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	if err := processing.CheckDependencies(); err != nil {
		return err
	}

	logDir := ea.logDir
	if logDir == "" {
		logDir = logging.DefaultLogDir()
	}

	logger, err := logging.Setup(logDir, ea.verbose, ea.noLog, os.Args)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if logger != nil {
		defer func() { _ = logger.Close() }()
	}

	if err := util.RaiseFileLimit(); err != nil && logger != nil {
		logger.Info("could not raise file descriptor limit: %v", err)
	}

	c, err := containerdef.Load(containerPath)
	if err != nil {
		return err
	}
	if logger != nil {
		logger.Info("Loaded container definition: %s (%d titles)", containerPath, len(c.Titles))
		titleInfo := make([]logging.TitleInfo, len(c.Titles))
		for i, t := range c.Titles {
			titleInfo[i] = logging.TitleInfo{Name: t.Name, FPS: t.FPS}
		}
		logger.Titles(titleInfo)
	}

	cfg := config.New(containerPath, outputPath)
	cfg.Workers = ea.workers
	cfg.Verbose = ea.verbose
	cfg.LogDir = logDir
	cfg.NoLog = ea.noLog
	cfg.KeepFrames = ea.keepFrames

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if logger != nil {
		logger.Info("Output path: %s", outputPath)
		logger.Info("Workers: %d, keep-frames: %v", cfg.Workers, cfg.KeepFrames)
	}

	termRep := reporter.NewTerminalReporterVerbose(ea.verbose)
	var rep reporter.Reporter = termRep
	if logger != nil {
		logRep := reporter.NewLogReporter(logger.Writer())
		rep = reporter.NewCompositeReporter(termRep, logRep)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := processing.ProcessContainer(ctx, cfg, c, rep)
	if err != nil {
		return err
	}
	if !result.IsValid() {
		return fmt.Errorf("container %s failed validation", outputPath)
	}
	return nil
}
