package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"nextseqstats/pkg/api"
)

func record(date string, yield float64) api.Record {
	return api.Record{
		Date:                  date,
		RunID:                 date + "_NB501234_0001_A",
		RunNumber:             1,
		Read1Length:           75,
		Read2Length:           75,
		Index1Length:          8,
		Index2Length:          8,
		BaseSpaceRunID:        "4242",
		ExperimentName:        "exp " + date,
		LibraryID:             "lib " + date,
		ClusterDensity:        200,
		ClustersPassingFilter: 90,
		EstimatedYield:        yield,
		CompletionStatus:      "CompletedAsPlanned",
	}
}

func TestEncodeTableRoundTrip(t *testing.T) {
	records := []api.Record{record("191231", 10), record("200101", 12.5)}
	records[1].ExperimentName = `quoted "name", with comma`

	var buf bytes.Buffer
	require.NoError(t, EncodeTable(&buf, records))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, api.Columns, strings.Split(lines[0], "\t"))
	for i, r := range records {
		assert.Equal(t, r.TableFields(), strings.Split(lines[i+1], "\t"))
	}
	assert.Contains(t, lines[2], "\t12.5\t")
}

func TestEncodeTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTable(&buf, nil))
	assert.Equal(t, strings.Join(api.Columns, "\t")+"\n", buf.String())
}

func TestWriteTableOverwriteWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.txt")
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	require.NoError(t, WriteTable(path, []api.Record{record("200101", 1)}, log))
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("TSV data file: "+path).Len())

	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, WriteTable(path, nil, log))
	assert.Equal(t, 1, logs.FilterMessage("Over-writing file: "+path).Len())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(api.Columns, "\t")+"\n", string(b))
}

func TestWriteTableUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "runs.txt")
	assert.Error(t, WriteTable(path, nil, nil))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2001", MonthKey("200101"))
	assert.Equal(t, "202001", MonthKey("20200131"))
	assert.Equal(t, "2020-01-", MonthKey("2020-01-31"))
	assert.Equal(t, "1/31/2020 ", MonthKey("1/31/2020 "))
	assert.Equal(t, "7", MonthKey("7"))
	assert.Equal(t, "", MonthKey(""))
}

func TestMonthly(t *testing.T) {
	a := record("200101", 10)
	a.ClusterDensity = 100
	b := record("200115", 20)
	b.ClusterDensity = 300
	b.Read1Length = 150
	zero := record("200120", 0)
	neg := record("191201", -1)
	c := record("191215", 5)

	months := Monthly([]api.Record{a, zero, b, neg, c})
	require.Len(t, months, 2)

	assert.Equal(t, "1912", months[0].Key)
	assert.Equal(t, 1, months[0].Runs)
	assert.Equal(t, 5.0, months[0].AvgEstimatedYield)

	jan := months[1]
	assert.Equal(t, "2001", jan.Key)
	assert.Equal(t, 2, jan.Runs)
	assert.Equal(t, 200.0, jan.AvgClusterDensity)
	assert.Equal(t, 90.0, jan.AvgClustersPassingFilter)
	assert.Equal(t, 15.0, jan.AvgEstimatedYield)
	assert.Equal(t, []int{75, 150}, jan.Read1)
	assert.Equal(t, []float64{10, 20}, jan.Yields)
}

func TestMonthlyEmpty(t *testing.T) {
	assert.Empty(t, Monthly(nil))
	assert.Empty(t, Monthly([]api.Record{record("200101", 0)}))
}

// scriptText returns the text of the first <script> element with the given id.
func scriptText(t *testing.T, page []byte, id string) string {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(page))
	require.NoError(t, err)
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == id && n.FirstChild != nil {
					found = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func TestRenderReportEmbedsRows(t *testing.T) {
	records := []api.Record{record("191231", 10), record("200101", 12.5)}
	records[1].ExperimentName = "<b>bold</b> & </script>"

	page, err := RenderReport(records)
	require.NoError(t, err)

	raw := scriptText(t, page, "rundata")
	require.NotEmpty(t, raw)
	var rows [][]any
	require.NoError(t, json.Unmarshal([]byte(raw), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "191231", rows[0][0])
	assert.Equal(t, float64(75), rows[0][3])
	assert.Equal(t, 12.5, rows[1][12])
	assert.Equal(t, records[1].ExperimentName, rows[1][8], "rows are embedded verbatim")

	s := string(page)
	assert.Equal(t, 1, strings.Count(s, "</script>\n<script type=\"text/javascript\">"), "embedded data must not close the script early")
	assert.Contains(t, s, "<title>NextSeq 500 run stats</title>")
	assert.NotContains(t, s, "<b>bold</b>")
}

func TestRenderReportSanitisesLabels(t *testing.T) {
	r := record("200101", 3)
	r.LibraryID = `<img src=x onerror=alert(1)>lib`
	got := labels([]api.Record{r})
	require.Len(t, got, 1)
	assert.Equal(t, "lib", got[0].Library)
}

func TestRenderReportEmpty(t *testing.T) {
	page, err := RenderReport(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", scriptText(t, page, "rundata"))
	assert.Contains(t, string(page), "var months = [];")
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.html")
	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, WriteReport(path, []api.Record{record("200101", 1)}, zap.New(core)))
	require.NoError(t, WriteReport(path, []api.Record{record("200101", 1)}, zap.New(core)))
	assert.Equal(t, 1, logs.FilterMessage("Over-writing file: "+path).Len())
	assert.Equal(t, 2, logs.FilterMessage("Html plot file: "+path).Len())
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestWriteSummary(t *testing.T) {
	months := Monthly([]api.Record{record("200101", 1234.5), record("200201", 10), record("200301", 0)})
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, months, 3))

	out := buf.String()
	for _, want := range []string{"Month", "Avg yield", "2001", "2002", "1,234.5"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "2 of 3 runs aggregated over 2 months")
}

func TestSummaryRows(t *testing.T) {
	rows := SummaryRows([]Month{{Key: "2001", Runs: 2, AvgClusterDensity: 215.25, AvgClustersPassingFilter: 88, AvgEstimatedYield: 1500000}})
	assert.Equal(t, [][]string{{"2001", "2", "215.25", "88", "1,500,000"}}, rows)
}
