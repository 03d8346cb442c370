package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"nextseqstats/internal/version"
	"nextseqstats/pkg/api"
)

const reportTitle = "NextSeq 500 run stats"

// numericColumns are the column indexes offered on the scatter plot axes.
var numericColumns = []int{2, 3, 4, 5, 6, 10, 11, 12}

// label is the tooltip text for one run. Free text comes from the
// instrument operator and is sanitised before it reaches innerHTML.
type label struct {
	Date       string `json:"date"`
	Experiment string `json:"experiment"`
	Library    string `json:"library"`
	BaseSpace  string `json:"basespace"`
}

type reportData struct {
	Title          string
	Version        string
	RunCount       int
	MonthCount     int
	Columns        template.JS
	Rows           template.JS
	Labels         template.JS
	Months         template.JS
	NumericColumns template.JS
}

var (
	tmplOnce   sync.Once
	tmplReport *template.Template
	sanitizer  = bluemonday.StrictPolicy()
)

func getReportTemplate() *template.Template {
	tmplOnce.Do(func() {
		tmplReport = template.Must(template.New("report").Parse(reportTemplate))
	})
	return tmplReport
}

func jsValue(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// Rows returns every record as a positional array in column order.
func Rows(records []api.Record) [][]any {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return rows
}

func labels(records []api.Record) []label {
	out := make([]label, 0, len(records))
	for _, r := range records {
		out = append(out, label{
			Date:       sanitizer.Sanitize(r.Date),
			Experiment: sanitizer.Sanitize(r.ExperimentName),
			Library:    sanitizer.Sanitize(r.LibraryID),
			BaseSpace:  sanitizer.Sanitize(r.BaseSpaceRunID),
		})
	}
	return out
}

// RenderReport produces the self-contained HTML page for records, which
// must already be in display order.
func RenderReport(records []api.Record) ([]byte, error) {
	months := Monthly(records)
	data := reportData{
		Title:      reportTitle,
		Version:    version.Current(),
		RunCount:   len(records),
		MonthCount: len(months),
	}
	var err error
	for _, f := range []struct {
		dst *template.JS
		v   any
	}{
		{&data.Columns, api.Columns},
		{&data.Rows, Rows(records)},
		{&data.Labels, labels(records)},
		{&data.Months, months},
		{&data.NumericColumns, numericColumns},
	} {
		if *f.dst, err = jsValue(f.v); err != nil {
			return nil, fmt.Errorf("encode report data: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := getReportTemplate().Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteReport renders the HTML page and writes it to path.
func WriteReport(path string, records []api.Record, log *zap.Logger) error {
	log = nopIfNil(log)
	page, err := RenderReport(records)
	if err != nil {
		return err
	}
	if err := writeOutput(path, page, log); err != nil {
		return err
	}
	log.Info("Html plot file: " + path)
	return nil
}
