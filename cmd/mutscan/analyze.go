package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mutscan/mutscan/internal/fasta"
	"github.com/mutscan/mutscan/internal/mutation"
	"github.com/mutscan/mutscan/internal/report"
	"github.com/mutscan/mutscan/internal/trace"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		refPath    string
		inputDir   string
		outputPath string
		format     string
		trim       int
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Align AB1 reads against a reference and classify mutations",
		Example: `  mutscan analyze --ref ref.fasta --input traces/
  mutscan analyze --ref ref.fasta --input traces/ -o mutations.tsv
  mutscan analyze --ref ref.fasta --input traces/ -o mutations.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("trim") {
				trim = viper.GetInt("trim")
			}
			if !cmd.Flags().Changed("workers") {
				workers = viper.GetInt("workers")
			}
			if !cmd.Flags().Changed("format") {
				format = viper.GetString("format")
			}
			if format == "" {
				format = detectFormat(outputPath)
			}
			return runAnalyze(refPath, inputDir, outputPath, format, trim, workers)
		},
	}

	cmd.Flags().StringVar(&refPath, "ref", "", "Reference sequence file (FASTA)")
	cmd.Flags().StringVar(&inputDir, "input", "", "Directory containing AB1 trace files")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "mutations.xlsx", "Output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: xlsx, tsv, duckdb (default: from output extension)")
	cmd.Flags().IntVar(&trim, "trim", 50, "Number of leading bases to trim from each read")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel workers (0 = all CPUs)")
	cmd.MarkFlagRequired("ref")
	cmd.MarkFlagRequired("input")

	return cmd
}

// detectFormat maps an output file extension to a format name.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return "tsv"
	case ".duckdb", ".db":
		return "duckdb"
	default:
		return "xlsx"
	}
}

func runAnalyze(refPath, inputDir, outputPath, format string, trim, workers int) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// The reference is a required input; failing to load it is fatal
	// for the whole run, unlike per-sample errors.
	ref, err := fasta.ReadSingle(refPath)
	if err != nil {
		return fmt.Errorf("load reference: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(inputDir, "*.ab1"))
	if err != nil {
		return fmt.Errorf("scan input directory: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No AB1 files found in %s\n", inputDir)
		return nil
	}

	analyzer := mutation.NewAnalyzer(ref)
	analyzer.SetLogger(logger)

	items := make(chan mutation.WorkItem, len(files))
	go func() {
		defer close(items)
		seq := 0
		for _, path := range files {
			sample := sampleName(path)
			read, err := trace.Read(path, trim)
			if err != nil {
				logger.Warn("skipping unreadable trace",
					zap.String("sample", sample),
					zap.Error(err))
				continue
			}
			if read == "" {
				logger.Warn("read empty after trimming",
					zap.String("sample", sample))
				continue
			}
			items <- mutation.WorkItem{Seq: seq, Sample: sample, Read: read}
			seq++
		}
	}()

	var records []mutation.Record
	results := analyzer.ParallelAnalyze(items, workers)
	err = mutation.OrderedCollect(results, func(r mutation.WorkResult) error {
		if r.Err != nil {
			logger.Warn("failed to analyze sample",
				zap.String("sample", r.Sample),
				zap.Error(r.Err))
			return nil
		}
		records = append(records, r.Records...)
		return nil
	})
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No mutations found.")
		return nil
	}

	report.SortRecords(records)

	if err := writeRecords(records, outputPath, format); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Results written to %s (%d mutations, %d samples)\n",
		outputPath, len(records), countSamples(records))
	return nil
}

func writeRecords(records []mutation.Record, path, format string) error {
	switch format {
	case "xlsx":
		return report.WriteExcel(records, path)
	case "tsv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		return report.NewTabWriter(f).WriteAll(records)
	case "duckdb":
		w, err := report.NewDuckDBWriter(path)
		if err != nil {
			return err
		}
		defer w.Close()
		return w.WriteAll(records)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// sampleName derives the sample identifier from a trace filename,
// everything before the first dot.
func sampleName(path string) string {
	base := filepath.Base(path)
	if idx := strings.Index(base, "."); idx != -1 {
		return base[:idx]
	}
	return base
}

func countSamples(records []mutation.Record) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Sample] = struct{}{}
	}
	return len(seen)
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Encoding = "console"
	return cfg.Build()
}
