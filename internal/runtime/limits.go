package runtime

import (
	"os"
	goruntime "runtime"
	"strconv"
)

const DefaultMaxXMLBytes int64 = 8 * 1024 * 1024

// Workers normalises a requested extraction worker count. Zero means one
// worker per usable CPU; negative values fall back to sequential extraction.
func Workers(requested int) int {
	if requested == 0 {
		return goruntime.GOMAXPROCS(0)
	}
	if requested < 0 {
		return 1
	}
	return requested
}

// MaxXMLBytes is the per-file read cap for run metadata documents. It honours
// NEXTSEQ_MAX_XML_BYTES when that holds a positive integer.
func MaxXMLBytes() int64 {
	v := os.Getenv("NEXTSEQ_MAX_XML_BYTES")
	if v == "" {
		return DefaultMaxXMLBytes
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return DefaultMaxXMLBytes
	}
	return n
}

// ByteCounter tallies bytes read across a batch.
type ByteCounter struct {
	Total int64
	Files int
}

func (c *ByteCounter) Add(n int) {
	if n <= 0 {
		return
	}
	c.Total += int64(n)
	c.Files++
}
