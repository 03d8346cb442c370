package ingest

import (
	"os"
	"path/filepath"
	"regexp"
)

const (
	RunParametersFile    = "RunParameters.xml"
	CompletionStatusFile = "RunCompletionStatus.xml"
)

var runFolderName = regexp.MustCompile(`(?i)^\d+_.*$`)

// LooksLikeRunFolder reports whether name has the numeric run prefix,
// e.g. "200101_NB501234_0042_AHXXXXXXXX".
func LooksLikeRunFolder(name string) bool {
	return runFolderName.MatchString(name)
}

// HasRunMetadata reports whether dir is a directory holding both metadata
// documents.
func HasRunMetadata(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	for _, name := range []string{RunParametersFile, CompletionStatusFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}
