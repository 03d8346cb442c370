package report

import (
	"sort"

	"nextseqstats/pkg/api"
)

// Month aggregates the runs sharing a year-month key.
type Month struct {
	Key                      string    `json:"date"`
	Runs                     int       `json:"count"`
	AvgClusterDensity        float64   `json:"cd"`
	AvgClustersPassingFilter float64   `json:"cpf"`
	AvgEstimatedYield        float64   `json:"ey"`
	Read1                    []int     `json:"run1"`
	Read2                    []int     `json:"run2"`
	Yields                   []float64 `json:"yields"`
}

// MonthKey strips the trailing day digits from a run date, so "200101"
// becomes "2001". Dates that do not end in two digits are returned as is.
func MonthKey(date string) string {
	n := len(date)
	if n >= 2 && isDigit(date[n-1]) && isDigit(date[n-2]) {
		return date[:n-2]
	}
	return date
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Monthly groups records by MonthKey, keeping only runs with a strictly
// positive estimated yield, and returns the groups in ascending key order.
func Monthly(records []api.Record) []Month {
	type acc struct {
		m           Month
		cd, cpf, ey float64
	}
	groups := map[string]*acc{}
	for _, r := range records {
		if !(r.EstimatedYield > 0) {
			continue
		}
		key := MonthKey(r.Date)
		g, ok := groups[key]
		if !ok {
			g = &acc{m: Month{Key: key}}
			groups[key] = g
		}
		g.m.Runs++
		g.cd += r.ClusterDensity
		g.cpf += r.ClustersPassingFilter
		g.ey += r.EstimatedYield
		g.m.Read1 = append(g.m.Read1, r.Read1Length)
		g.m.Read2 = append(g.m.Read2, r.Read2Length)
		g.m.Yields = append(g.m.Yields, r.EstimatedYield)
	}

	out := make([]Month, 0, len(groups))
	for _, g := range groups {
		n := float64(g.m.Runs)
		g.m.AvgClusterDensity = g.cd / n
		g.m.AvgClustersPassingFilter = g.cpf / n
		g.m.AvgEstimatedYield = g.ey / n
		out = append(out, g.m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
