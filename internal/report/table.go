package report

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"go.uber.org/zap"

	"nextseqstats/pkg/api"
)

// EncodeTable writes the header row and one tab-separated line per record.
// Fields are joined as-is, without quoting.
func EncodeTable(w io.Writer, records []api.Record) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(api.Columns, "\t") + "\n"); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := bw.WriteString(strings.Join(r.TableFields(), "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTable writes the TSV summary to path.
func WriteTable(path string, records []api.Record, log *zap.Logger) error {
	log = nopIfNil(log)
	var buf bytes.Buffer
	if err := EncodeTable(&buf, records); err != nil {
		return err
	}
	if err := writeOutput(path, buf.Bytes(), log); err != nil {
		return err
	}
	log.Info("TSV data file: " + path)
	return nil
}
