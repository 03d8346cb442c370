package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"nextseqstats/internal/runtime"
	"nextseqstats/pkg/api"
)

type Result struct {
	Record    api.Record
	BytesRead int
	Warnings  []string
}

// ReadFileLimited reads path, failing when it holds more than limit bytes.
// A non-positive limit uses the runtime default.
func ReadFileLimited(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = runtime.MaxXMLBytes()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lr := &io.LimitedReader{R: f, N: limit + 1}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%s: %w (%d bytes); set NEXTSEQ_MAX_XML_BYTES to override", path, ErrTooLarge, limit)
	}
	return b, nil
}

// ExtractRun parses both metadata documents of one run folder into a Record.
// Any missing element, unparsable number or malformed document fails the
// whole folder.
func ExtractRun(ctx context.Context, dir string, maxBytes int64) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}
	folder := filepath.Base(dir)
	var res Result

	paramsRaw, err := ReadFileLimited(filepath.Join(dir, RunParametersFile), maxBytes)
	if err != nil {
		return Result{}, &MetadataError{Folder: folder, File: RunParametersFile, Err: err}
	}
	res.BytesRead += len(paramsRaw)
	if err := parseRunParameters(folder, paramsRaw, &res); err != nil {
		return Result{}, err
	}

	statusRaw, err := ReadFileLimited(filepath.Join(dir, CompletionStatusFile), maxBytes)
	if err != nil {
		return Result{}, &MetadataError{Folder: folder, File: CompletionStatusFile, Err: err}
	}
	res.BytesRead += len(statusRaw)
	if err := parseCompletionStatus(folder, statusRaw, &res.Record); err != nil {
		return Result{}, err
	}
	return res, nil
}
