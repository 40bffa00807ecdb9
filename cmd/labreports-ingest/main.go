// labreports-ingest walks a directory of lab report PDFs and stores the
// extracted records, printing the same progress narrative the upload
// endpoint produces.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinisys/labreports/internal/activity"
	"github.com/clinisys/labreports/internal/ingest"
	"github.com/clinisys/labreports/internal/parse"
	"github.com/clinisys/labreports/internal/pdftext"
	"github.com/clinisys/labreports/internal/report"
	"github.com/clinisys/labreports/internal/store"
)

var (
	reportType   = flag.String("type", "", "Report type (cbc, xray, ecg, urinalysis, lipid, chem, medical); autodetected when empty")
	project      = flag.String("project", "", "Firestore project ID; uses an in-memory store when empty (dry run)")
	credentials  = flag.String("credentials", "", "Path to a service account credentials file")
	prefix       = flag.String("collection-prefix", "", "Prefix added to every store collection name")
	operator     = flag.String("operator", "system", "Operator name attributed to activity log entries")
	maxFileSize  = flag.Int64("max-file-size", 20*1024*1024, "Maximum PDF size in bytes")
	parseTimeout = flag.Duration("parse-timeout", 60*time.Second, "Timeout for parsing a single report")
	outputFormat = flag.String("format", "text", "Output format: text, json")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: directory or PDF path required\n\n")
		printUsage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(root string) error {
	ctx := context.Background()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	files, err := collectPDFs(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PDF files found under %s", root)
	}

	parser := parse.NewService(*maxFileSize)

	desc, err := resolveDescriptor(parser, files)
	if err != nil {
		return err
	}

	st, err := newStore(ctx, log)
	if err != nil {
		return err
	}

	act := activity.NewLogger(st, *operator, log)
	ingestor := ingest.New(parser, st, act, *parseTimeout, log)

	var progress ingest.Progress
	if *outputFormat == "text" {
		progress = func(msg string) { fmt.Println(msg) }
	}

	result, err := ingestor.IngestBatch(ctx, files, desc, progress)
	if err != nil {
		return err
	}

	return outputResult(result, desc)
}

// collectPDFs gathers every valid .pdf under root, or root itself if it
// is a single file. Structurally broken PDFs are dropped during the scan
// so the batch narrative only covers readable reports.
func collectPDFs(root string) ([]ingest.File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}

	validator := pdftext.NewValidator(*maxFileSize)

	var paths []string
	if info.IsDir() {
		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
				return nil
			}
			if !validator.IsValidPDF(path) {
				fmt.Fprintf(os.Stderr, "Skipping invalid PDF: %s\n", path)
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
	} else {
		if err := validator.ValidateFile(root); err != nil {
			return nil, err
		}
		paths = []string{root}
	}

	files := make([]ingest.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, ingest.File{
			Name:        filepath.Base(path),
			ContentType: pdftext.MIMEPDF,
			Data:        data,
		})
	}
	return files, nil
}

// resolveDescriptor uses the -type flag when given, otherwise detects
// the type from the first file's text.
func resolveDescriptor(parser *parse.Service, files []ingest.File) (report.Descriptor, error) {
	if *reportType != "" {
		t, err := report.ParseType(*reportType)
		if err != nil {
			return report.Descriptor{}, err
		}
		desc, _ := report.DescriptorFor(t)
		return desc, nil
	}

	t, err := parser.DetectType(files[0].Data)
	if err != nil {
		return report.Descriptor{}, fmt.Errorf("could not detect report type from %s; pass -type: %w", files[0].Name, err)
	}
	fmt.Fprintf(os.Stderr, "Detected report type: %s\n", t)
	desc, _ := report.DescriptorFor(t)
	return desc, nil
}

func newStore(ctx context.Context, log zerolog.Logger) (store.Store, error) {
	if *project == "" {
		log.Warn().Msg("no -project given, records go to an in-memory store")
		return store.NewMemory(), nil
	}
	return store.NewFirestore(ctx, *project, *credentials, *prefix)
}

func outputResult(result *ingest.BatchResult, desc report.Descriptor) error {
	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "text":
		fmt.Printf("\n%d of %d files stored in %s\n", result.Uploaded, result.Total, desc.Collection)
		for _, o := range result.Outcomes {
			line := fmt.Sprintf("  %-10s %s", o.Status, o.File)
			if o.Reason != "" {
				line += " (" + o.Reason + ")"
			}
			fmt.Println(line)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", *outputFormat)
	}
}

func printHelp() {
	fmt.Println("labreports-ingest - batch import lab report PDFs into the record store")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}

func printUsage() {
	fmt.Println("Usage: labreports-ingest [options] <pdf-file-or-directory>")
}
