package api

import (
	"math"
	"strconv"
	"strings"
)

// Columns are the canonical column names, in output order.
var Columns = []string{
	"Date",
	"RunID",
	"RunNumber",
	"Read1",
	"Read2",
	"Index1Read",
	"Index2Read",
	"BaseSpaceRunId",
	"ExperimentName",
	"LibraryID",
	"ClusterDensity",
	"ClustersPassingFilter",
	"EstimatedYield",
	"CompletionStatus",
}

// Record is the metadata extracted from one run folder. Records are built
// once by the extractor and never modified afterwards.
type Record struct {
	Date                  string  `json:"date"`
	RunID                 string  `json:"run_id"`
	RunNumber             int     `json:"run_number"`
	Read1Length           int     `json:"read1_length"`
	Read2Length           int     `json:"read2_length"`
	Index1Length          int     `json:"index1_length"`
	Index2Length          int     `json:"index2_length"`
	BaseSpaceRunID        string  `json:"basespace_run_id"`
	ExperimentName        string  `json:"experiment_name"`
	LibraryID             string  `json:"library_id"`
	ClusterDensity        float64 `json:"cluster_density"`
	ClustersPassingFilter float64 `json:"clusters_passing_filter"`
	EstimatedYield        float64 `json:"estimated_yield"`
	CompletionStatus      string  `json:"completion_status"`
}

// Row returns the fields in column order with their native types, for
// embedding as a positional JSON array.
func (r Record) Row() []any {
	return []any{
		r.Date,
		r.RunID,
		r.RunNumber,
		r.Read1Length,
		r.Read2Length,
		r.Index1Length,
		r.Index2Length,
		r.BaseSpaceRunID,
		r.ExperimentName,
		r.LibraryID,
		r.ClusterDensity,
		r.ClustersPassingFilter,
		r.EstimatedYield,
		r.CompletionStatus,
	}
}

// TableFields returns the plain-text form of every field in column order.
func (r Record) TableFields() []string {
	return []string{
		r.Date,
		r.RunID,
		strconv.Itoa(r.RunNumber),
		strconv.Itoa(r.Read1Length),
		strconv.Itoa(r.Read2Length),
		strconv.Itoa(r.Index1Length),
		strconv.Itoa(r.Index2Length),
		r.BaseSpaceRunID,
		r.ExperimentName,
		r.LibraryID,
		FormatFloat(r.ClusterDensity),
		FormatFloat(r.ClustersPassingFilter),
		FormatFloat(r.EstimatedYield),
		r.CompletionStatus,
	}
}

// FormatFloat renders f in shortest round-trip form and always keeps a
// decimal point or exponent, so 75 prints as "75.0". Magnitudes below 1e-4
// or at least 1e16 use exponent notation.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
