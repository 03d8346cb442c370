// Package fixture writes synthetic run folders for tests.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type Params struct {
	RunID          string
	Date           string
	RunNumber      string
	Read1          string
	Read2          string
	Index1         string
	Index2         string
	BaseSpaceRunID string
	ExperimentName string
	LibraryID      string
	// Omit lists element names to leave out of the document.
	Omit []string
}

type Status struct {
	ClusterDensity        string
	ClustersPassingFilter string
	EstimatedYield        string
	CompletionStatus      string
	Omit                  []string
}

// DefaultParams returns a complete RunParameters document description for a
// run started on date.
func DefaultParams(date string) Params {
	return Params{
		RunID:          date + "_NB501234_0042_AHXXXXXXXX",
		Date:           date,
		RunNumber:      "42",
		Read1:          "75",
		Read2:          "75",
		Index1:         "8",
		Index2:         "8",
		BaseSpaceRunID: "98765432",
		ExperimentName: "Experiment " + date,
		LibraryID:      "LIB-" + date,
	}
}

func DefaultStatus() Status {
	return Status{
		ClusterDensity:        "215.25",
		ClustersPassingFilter: "88.5",
		EstimatedYield:        "12.5",
		CompletionStatus:      "CompletedAsPlanned",
	}
}

func omitted(omit []string, name string) bool {
	for _, o := range omit {
		if o == name {
			return true
		}
	}
	return false
}

func element(b *strings.Builder, omit []string, indent, name, value string) {
	if omitted(omit, name) {
		return
	}
	fmt.Fprintf(b, "%s<%s>%s</%s>\n", indent, name, value, name)
}

func RunParametersXML(p Params) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n")
	b.WriteString("<RunParameters xmlns:xsd=\"http://www.w3.org/2001/XMLSchema\" xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\">\n")
	if !omitted(p.Omit, "Setup") {
		b.WriteString("  <Setup>\n")
		b.WriteString("    <SupportMultipleSurfacesInUI>true</SupportMultipleSurfacesInUI>\n")
		element(&b, p.Omit, "    ", "Read1", p.Read1)
		element(&b, p.Omit, "    ", "Read2", p.Read2)
		element(&b, p.Omit, "    ", "Index1Read", p.Index1)
		element(&b, p.Omit, "    ", "Index2Read", p.Index2)
		b.WriteString("  </Setup>\n")
	}
	element(&b, p.Omit, "  ", "RunID", p.RunID)
	element(&b, p.Omit, "  ", "InstrumentID", "NB501234")
	element(&b, p.Omit, "  ", "RunNumber", p.RunNumber)
	element(&b, p.Omit, "  ", "RunStartDate", p.Date)
	element(&b, p.Omit, "  ", "BaseSpaceRunId", p.BaseSpaceRunID)
	element(&b, p.Omit, "  ", "ExperimentName", p.ExperimentName)
	element(&b, p.Omit, "  ", "LibraryID", p.LibraryID)
	b.WriteString("</RunParameters>\n")
	return b.String()
}

func CompletionStatusXML(s Status) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<RunCompletionStatus xmlns:xsd=\"http://www.w3.org/2001/XMLSchema\" xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\">\n")
	element(&b, s.Omit, "  ", "CompletionStatus", s.CompletionStatus)
	element(&b, s.Omit, "  ", "RunId", "ignored")
	element(&b, s.Omit, "  ", "ClusterDensity", s.ClusterDensity)
	element(&b, s.Omit, "  ", "ClustersPassingFilter", s.ClustersPassingFilter)
	element(&b, s.Omit, "  ", "EstimatedYield", s.EstimatedYield)
	b.WriteString("</RunCompletionStatus>\n")
	return b.String()
}

// WriteRun creates base/name with both metadata documents and returns the
// folder path.
func WriteRun(tb testing.TB, base, name string, p Params, s Status) string {
	tb.Helper()
	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", dir, err)
	}
	WriteFile(tb, filepath.Join(dir, "RunParameters.xml"), RunParametersXML(p))
	WriteFile(tb, filepath.Join(dir, "RunCompletionStatus.xml"), CompletionStatusXML(s))
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(tb testing.TB, path, content string) {
	tb.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}
