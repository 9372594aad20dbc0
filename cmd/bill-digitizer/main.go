package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/expensewise/bill-digitizer/constants"
	"github.com/expensewise/bill-digitizer/internal/async"
	"github.com/expensewise/bill-digitizer/internal/common"
	"github.com/expensewise/bill-digitizer/internal/export"
	"github.com/expensewise/bill-digitizer/internal/llm"
	"github.com/expensewise/bill-digitizer/internal/ocr"
	processor "github.com/expensewise/bill-digitizer/internal/pipeline"
	"github.com/expensewise/bill-digitizer/internal/pipeline/parsefields"
	"github.com/expensewise/bill-digitizer/internal/pipeline/textextract"
	repo "github.com/expensewise/bill-digitizer/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory to process bills from (required)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		fromStr = flag.String("from", "", "from date YYYY-MM-DD")
		toStr   = flag.String("to", "", "to date YYYY-MM-DD")
		workers = flag.Int("workers", 4, "number of concurrent workers")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "bills.xlsx")
	}

	var from, to *time.Time
	if *fromStr != "" {
		if parsed, err := time.Parse("2006-01-02", *fromStr); err != nil {
			printError("Error: invalid --from date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		} else {
			from = &parsed
		}
	}
	if *toStr != "" {
		if parsed, err := time.Parse("2006-01-02", *toStr); err != nil {
			printError("Error: invalid --to date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		} else {
			to = &parsed
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := repo.Open(ctx, repo.Config{
		Path:        cfg.Database.Path,
		BusyTimeout: cfg.Database.BusyTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(db, logger)

	jobsRepo := repo.NewExtractJobRepository(db, logger)
	recordsRepo := repo.NewBillRecordRepository(db, logger)

	recognizer := ocr.NewClient(ocr.ClientConfig{
		BaseURL: cfg.OCR.BaseURL,
		Timeout: cfg.OCR.Timeout,
	}, logger)
	extractor := ocr.NewExtractor(ocr.Config{
		ConfidenceFloor: cfg.OCR.ConfidenceFloor,
		MaxPages:        cfg.OCR.MaxPages,
	}, recognizer, logger)

	llmClient := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		PromptDir:   cfg.LLM.PromptDir,
	}, logger)
	logger.Info("LLM client initialized", "model", cfg.LLM.Model, "base_url", cfg.LLM.BaseURL)

	ocrStage := textextract.NewPipeline(jobsRepo, extractor, logger)
	parseStage := parsefields.NewPipeline(logger, parsefields.Config{
		PromptConfiguration: "process-bill",
		ValidateSchema:      true,
	}, jobsRepo, recordsRepo, llmClient)
	proc := processor.NewProcessor(logger, ocrStage, parseStage)

	// Collect supported documents
	var paths []string
	err = filepath.WalkDir(*dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if constants.MapExtToFormat(filepath.Ext(path)) != "" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	sort.Strings(paths)
	logger.Info("scan complete", "dir", *dir, "documents", len(paths))

	queue := async.NewProcessorQueue(proc, logger, async.WithWorkers(*workers))
	for _, p := range paths {
		_ = queue.Enqueue(ctx, async.Job{SourcePath: p, SubmittedAt: time.Now()})
	}
	queue.Shutdown(ctx)

	logger.Info("exporting to XLSX", "output", *out)
	exportService := export.NewService(recordsRepo, logger)
	xlsxBytes, err := exportService.ExportRecordsXLSX(ctx, from, to)
	if err != nil {
		logger.Error("failed to export records", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	records, err := recordsRepo.List(ctx, repo.ListFilter{})
	if err != nil {
		logger.Error("failed to list records", "error", err)
		os.Exit(1)
	}

	logger.Info("batch processing complete",
		"documents", len(paths),
		"records", len(records),
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Documents scanned: %d\n", len(paths))
	fmt.Printf("- Records extracted: %d\n", len(records))
	fmt.Printf("- Output: %s\n", *out)
}
