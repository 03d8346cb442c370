package ingest

import (
	"math"
	"strconv"
	"strings"

	"nextseqstats/pkg/api"
)

// Lookup paths inside RunParameters.xml.
const (
	pathRunID          = "RunID"
	pathRunStartDate   = "RunStartDate"
	pathBaseSpaceRunID = "BaseSpaceRunId"
	pathRunNumber      = "RunNumber"
	pathLibraryID      = "LibraryID"
	pathExperiment     = "ExperimentName"
	pathRead1          = ".//Setup/Read1"
	pathRead2          = ".//Setup/Read2"
	pathIndex1         = ".//Setup/Index1Read"
	pathIndex2         = ".//Setup/Index2Read"
)

// Lookup paths inside RunCompletionStatus.xml.
const (
	pathClusterDensity   = "ClusterDensity"
	pathClustersPF       = "ClustersPassingFilter"
	pathEstimatedYield   = "EstimatedYield"
	pathCompletionStatus = "CompletionStatus"
)

// fieldReader pulls typed values out of one parsed document and remembers
// the first failure, so callers can read every field and check once.
type fieldReader struct {
	folder string
	file   string
	root   *xmlNode
	err    error
}

func (r *fieldReader) fail(path string, err error) {
	if r.err == nil {
		r.err = &MetadataError{Folder: r.folder, File: r.file, Element: path, Err: err}
	}
}

func (r *fieldReader) textAt(path string) string {
	if r.err != nil {
		return ""
	}
	n := r.root.find(path)
	if n == nil {
		r.fail(path, ErrMissingElement)
		return ""
	}
	return n.Content
}

func (r *fieldReader) intAt(path string) int {
	s := r.textAt(path)
	if r.err != nil {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		r.fail(path, ErrBadNumber)
		return 0
	}
	return v
}

func (r *fieldReader) floatAt(path string) float64 {
	s := r.textAt(path)
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		r.fail(path, ErrBadNumber)
		return 0
	}
	return v
}

func newFieldReader(folder, file string, raw []byte) (*fieldReader, error) {
	root, err := parseTree(raw)
	if err != nil {
		return nil, &MetadataError{Folder: folder, File: file, Err: err}
	}
	return &fieldReader{folder: folder, file: file, root: root}, nil
}

func parseRunParameters(folder string, raw []byte, res *Result) error {
	r, err := newFieldReader(folder, RunParametersFile, raw)
	if err != nil {
		return err
	}
	rec := &res.Record
	rec.Date = r.textAt(pathRunStartDate)
	rec.RunID = r.textAt(pathRunID)
	rec.RunNumber = r.intAt(pathRunNumber)
	rec.Read1Length = r.intAt(pathRead1)
	rec.Read2Length = r.intAt(pathRead2)
	rec.Index1Length = r.intAt(pathIndex1)
	rec.Index2Length = r.intAt(pathIndex2)
	rec.BaseSpaceRunID = r.textAt(pathBaseSpaceRunID)
	experiment := r.textAt(pathExperiment)
	library := r.textAt(pathLibraryID)
	if r.err != nil {
		return r.err
	}
	rec.ExperimentName = ToASCII(experiment)
	rec.LibraryID = ToASCII(library)
	if rec.ExperimentName != experiment {
		res.Warnings = append(res.Warnings, "non-ASCII characters dropped from "+pathExperiment)
	}
	if rec.LibraryID != library {
		res.Warnings = append(res.Warnings, "non-ASCII characters dropped from "+pathLibraryID)
	}
	return nil
}

func parseCompletionStatus(folder string, raw []byte, rec *api.Record) error {
	r, err := newFieldReader(folder, CompletionStatusFile, raw)
	if err != nil {
		return err
	}
	rec.ClusterDensity = r.floatAt(pathClusterDensity)
	rec.ClustersPassingFilter = r.floatAt(pathClustersPF)
	rec.EstimatedYield = r.floatAt(pathEstimatedYield)
	rec.CompletionStatus = r.textAt(pathCompletionStatus)
	return r.err
}
