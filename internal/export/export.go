package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chrisdamba/weaning/internal/cloudwriter"
	"github.com/chrisdamba/weaning/internal/logger"
	"github.com/schollz/progressbar/v3"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatParquet  Format = "parquet"
	FormatPostgres Format = "postgres"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatParquet, FormatPostgres:
		return f, nil
	case "jsonl", "ndjson":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

type Option func(*Exporter)

// WithCloud sends file exports to bucket through factory instead of disk.
func WithCloud(factory cloudwriter.CloudWriterFactory, bucket string) Option {
	return func(e *Exporter) {
		e.factory = factory
		e.bucket = bucket
	}
}

// WithProgress draws a progress bar on w.
func WithProgress(w io.Writer) Option {
	return func(e *Exporter) { e.progress = w }
}

// WithPostgres sets the connection string used by the postgres format.
func WithPostgres(dsn string) Option {
	return func(e *Exporter) { e.dsn = dsn }
}

type Exporter struct {
	format   Format
	factory  cloudwriter.CloudWriterFactory
	bucket   string
	dsn      string
	progress io.Writer
	log      *logger.Logger
}

func New(format Format, log *logger.Logger, opts ...Option) *Exporter {
	e := &Exporter{format: format, log: log}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export writes rows to target, a file path or object key (or table name
// for postgres), and returns how many rows were written.
func (e *Exporter) Export(ctx context.Context, rows []MealRow, target string) (int, error) {
	bar := e.newBar(len(rows))
	defer bar.Finish()
	tick := func() { _ = bar.Add(1) }

	if e.format == FormatPostgres {
		out, err := NewPostgresOutput(e.dsn)
		if err != nil {
			return 0, err
		}
		defer out.Close()
		if err := out.ReplaceMeals(ctx, target, rows, tick); err != nil {
			return 0, err
		}
		e.log.Info("exported %d meals to table %s", len(rows), target)
		return len(rows), nil
	}

	var err error
	switch e.format {
	case FormatParquet:
		var fw source.ParquetFile
		fw, err = e.parquetFile(target)
		if err != nil {
			return 0, err
		}
		err = writeParquet(fw, rows, tick)
		if cerr := fw.Close(); err == nil && cerr != nil {
			err = cerr
		}
	case FormatJSON, FormatCSV:
		var w io.WriteCloser
		w, err = e.open(target)
		if err != nil {
			return 0, err
		}
		if e.format == FormatJSON {
			err = writeJSON(w, rows, tick)
		} else {
			err = writeCSV(w, rows, tick)
		}
		if cerr := w.Close(); err == nil && cerr != nil {
			err = cerr
		}
	default:
		return 0, fmt.Errorf("unsupported export format %q", e.format)
	}
	if err != nil {
		return 0, err
	}
	e.log.Info("exported %d meals to %s", len(rows), e.describe(target))
	return len(rows), nil
}

func (e *Exporter) describe(target string) string {
	if e.factory != nil {
		return "s3://" + e.bucket + "/" + target
	}
	return target
}

func (e *Exporter) newBar(n int) *progressbar.ProgressBar {
	w := e.progress
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("exporting meals"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (e *Exporter) open(target string) (io.WriteCloser, error) {
	if e.factory != nil {
		cw, err := e.factory.NewWriter(e.bucket, target)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return cw, nil
	}
	f, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", target, err)
	}
	return f, nil
}

func (e *Exporter) parquetFile(target string) (source.ParquetFile, error) {
	if e.factory != nil {
		cw, err := e.factory.NewWriter(e.bucket, target)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return NewCloudParquetFile(cw), nil
	}
	fw, err := local.NewLocalFileWriter(target)
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, nil
}

func writeJSON(w io.Writer, rows []MealRow, tick func()) error {
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to write meal %s: %w", row.ID, err)
		}
		tick()
	}
	return nil
}

func writeCSV(w io.Writer, rows []MealRow, tick func()) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return fmt.Errorf("failed to write meal %s: %w", row.ID, err)
		}
		tick()
	}
	cw.Flush()
	return cw.Error()
}
