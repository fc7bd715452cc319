// Package main provides a command-line tool for decoding sequin object
// library cache files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/EchoTools/sequinFileTools/pkg/cache"
	"github.com/EchoTools/sequinFileTools/pkg/sequin"
)

var (
	mode           string
	inputPath      string
	outputPath     string
	objectName     string
	objectType     string
	snapshotFile   string
	assetPath      string
	refPrefix      string
	refSuffix      string
	sliceStart     string
	sliceEnd       string
	workers        int
	writeSnapshot  bool
	forceOverwrite bool
	verbose        bool
)

func init() {
	flag.StringVar(&mode, "mode", "", "Operation mode: decode, leaf, batch, verify, headers, hash, refs, extract, slice")
	flag.StringVar(&inputPath, "input", "", "Input file, or input directory for batch, headers and refs")
	flag.StringVar(&outputPath, "output", "", "Output file, or output directory for decode and batch")
	flag.StringVar(&objectName, "name", "", "Object name for leaf mode (default: input file name)")
	flag.StringVar(&objectType, "type", sequin.CodeLeaf.String(), "Object type code for leaf mode")
	flag.StringVar(&snapshotFile, "snapshot-file", "", "Stored snapshot for verify mode")
	flag.StringVar(&assetPath, "path", "", "Asset path for hash mode")
	flag.StringVar(&refPrefix, "prefix", "", "Reference prefix for refs mode (e.g., samples/)")
	flag.StringVar(&refSuffix, "suffix", "", "Reference suffix for refs mode (e.g., .wav)")
	flag.StringVar(&sliceStart, "start", "", "Start offset for slice mode (decimal or 0x hex)")
	flag.StringVar(&sliceEnd, "end", "", "End offset for slice mode (decimal or 0x hex)")
	flag.IntVar(&workers, "workers", 0, "Files decoded ahead in batch mode (default: 4 per CPU)")
	flag.BoolVar(&writeSnapshot, "snapshot", false, "Write zstd snapshots instead of record text")
	flag.BoolVar(&forceOverwrite, "force", false, "Allow non-empty output directory")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", styled(errorStyle, "Error:"), err)
		os.Exit(1)
	}
}

func run() error {
	if err := validateFlags(); err != nil {
		flag.Usage()
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()
	sequin.SetLogger(logger.Named("sequin"))
	cache.SetLogger(logger.Named("cache"))

	switch mode {
	case "decode":
		return runDecode()
	case "leaf":
		return runLeaf()
	case "batch":
		return runBatch(logger)
	case "verify":
		return runVerify()
	case "headers":
		return runHeaders()
	case "hash":
		return runHash()
	case "refs":
		return runRefs()
	case "extract":
		return runExtract()
	case "slice":
		return runSlice()
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func validateFlags() error {
	if mode == "" {
		return fmt.Errorf("mode is required")
	}

	switch mode {
	case "decode", "leaf", "headers":
		if inputPath == "" {
			return fmt.Errorf("%s mode requires -input", mode)
		}
	case "batch":
		if inputPath == "" || outputPath == "" {
			return fmt.Errorf("batch mode requires -input and -output")
		}
	case "verify":
		if inputPath == "" || snapshotFile == "" {
			return fmt.Errorf("verify mode requires -input and -snapshot-file")
		}
	case "hash":
		if assetPath == "" {
			return fmt.Errorf("hash mode requires -path")
		}
	case "refs":
		if inputPath == "" || refPrefix == "" || refSuffix == "" {
			return fmt.Errorf("refs mode requires -input, -prefix and -suffix")
		}
	case "extract":
		if inputPath == "" || outputPath == "" {
			return fmt.Errorf("extract mode requires -input and -output")
		}
	case "slice":
		if inputPath == "" || outputPath == "" || sliceStart == "" || sliceEnd == "" {
			return fmt.Errorf("slice mode requires -input, -output, -start and -end")
		}
	default:
		return fmt.Errorf("mode must be one of decode, leaf, batch, verify, headers, hash, refs, extract, slice")
	}

	return nil
}

func prepareOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if !forceOverwrite {
		empty, err := isDirEmpty(dir)
		if err != nil {
			return fmt.Errorf("check output directory: %w", err)
		}
		if !empty {
			return fmt.Errorf("output directory is not empty (use -force to override)")
		}
	}

	return nil
}

func isDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdir(1)
	return err == io.EOF, nil
}
