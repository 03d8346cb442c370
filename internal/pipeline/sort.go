package pipeline

import (
	"sort"

	"nextseqstats/pkg/api"
)

// SortRecords returns a copy of records in ascending Date order. Records
// with equal dates keep their relative order.
func SortRecords(records []api.Record) []api.Record {
	out := make([]api.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
