package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"nextseqstats/internal/ingest"
	"nextseqstats/internal/metrics"
	"nextseqstats/internal/report"
	"nextseqstats/internal/runtime"
	"nextseqstats/pkg/api"
)

// Options configures one batch.
type Options struct {
	Base       string
	TablePath  string
	ReportPath string
	// Workers is the number of folders extracted concurrently. Zero means
	// GOMAXPROCS.
	Workers     int
	MaxXMLBytes int64
	Logger      *zap.Logger
}

// Collection is the sorted set of records found under a base directory.
type Collection struct {
	Records []api.Record         `json:"records"`
	Scan    ingest.Scan          `json:"scan"`
	Metrics metrics.StageMetrics `json:"metrics"`
}

type Result struct {
	Records []api.Record         `json:"records"`
	Skipped []ingest.Skipped     `json:"skipped"`
	Months  []report.Month       `json:"months"`
	Metrics metrics.StageMetrics `json:"metrics"`
}

// Partial reports whether some entries of the base directory were skipped.
func (r Result) Partial() bool { return len(r.Skipped) > 0 }

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Collect locates the run folders under opt.Base, extracts every one of them
// and returns the records sorted by date. A single failing folder fails the
// batch.
func Collect(ctx context.Context, opt Options) (Collection, error) {
	log := opt.logger()
	var m metrics.StageMetrics

	start := time.Now()
	scan, err := ingest.Locate(opt.Base, log)
	if err != nil {
		return Collection{}, newError(KindConfig, opt.Base, err)
	}
	m.LocateMS = time.Since(start).Milliseconds()
	m.EntriesSeen = scan.Entries
	m.FoldersSkipped = len(scan.Skipped)

	start = time.Now()
	var counter runtime.ByteCounter
	records, err := extractAll(ctx, scan.Runs, runtime.Workers(opt.Workers), opt.MaxXMLBytes, log, &counter)
	if err != nil {
		return Collection{}, newError(KindInput, failedPath(scan.Base, err), err)
	}
	m.ExtractMS = time.Since(start).Milliseconds()
	m.XMLBytesRead = counter.Total

	start = time.Now()
	records = SortRecords(records)
	m.SortMS = time.Since(start).Milliseconds()
	m.RunsParsed = len(records)

	return Collection{Records: records, Scan: scan, Metrics: m}, nil
}

func failedPath(base string, err error) string {
	var me *ingest.MetadataError
	if errors.As(err, &me) {
		return filepath.Join(base, me.Folder)
	}
	return base
}

// Run collects the records under opt.Base and writes the table and the HTML
// report. Nothing is written when collection fails.
func Run(ctx context.Context, opt Options) (Result, error) {
	log := opt.logger()
	col, err := Collect(ctx, opt)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Records: col.Records,
		Skipped: col.Scan.Skipped,
		Months:  report.Monthly(col.Records),
		Metrics: col.Metrics,
	}
	if err := ctx.Err(); err != nil {
		return res, newError(KindInterrupted, "", err)
	}

	start := time.Now()
	if err := report.WriteTable(opt.TablePath, col.Records, log); err != nil {
		return res, newError(KindOutput, opt.TablePath, err)
	}
	res.Metrics.TableMS = time.Since(start).Milliseconds()

	start = time.Now()
	if err := report.WriteReport(opt.ReportPath, col.Records, log); err != nil {
		return res, newError(KindOutput, opt.ReportPath, err)
	}
	res.Metrics.ReportMS = time.Since(start).Milliseconds()

	log.Info(fmt.Sprintf("Runs parsed: %d", len(col.Records)))
	log.Debug("stage metrics",
		zap.Int64("locate_ms", res.Metrics.LocateMS),
		zap.Int64("extract_ms", res.Metrics.ExtractMS),
		zap.Int64("sort_ms", res.Metrics.SortMS),
		zap.Int64("table_ms", res.Metrics.TableMS),
		zap.Int64("report_ms", res.Metrics.ReportMS),
		zap.Int("entries_seen", res.Metrics.EntriesSeen),
		zap.Int("folders_skipped", res.Metrics.FoldersSkipped),
		zap.Int64("xml_bytes_read", res.Metrics.XMLBytesRead),
	)
	return res, nil
}
