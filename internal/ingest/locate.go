package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

type SkipReason string

const (
	SkipNamePattern  SkipReason = "name_pattern"
	SkipMissingFiles SkipReason = "missing_files"
)

type Skipped struct {
	Name   string     `json:"name"`
	Reason SkipReason `json:"reason"`
}

// Scan is the outcome of listing a base directory.
type Scan struct {
	Base    string    `json:"base"`
	Runs    []string  `json:"runs"`
	Skipped []Skipped `json:"skipped"`
	Entries int       `json:"entries"`
}

// Locate lists the immediate entries of base and keeps the run folders that
// carry both metadata documents. Every other entry is logged as a warning
// and recorded in Scan.Skipped.
func Locate(base string, log *zap.Logger) (Scan, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return Scan{}, fmt.Errorf("%s: %w", base, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return Scan{}, fmt.Errorf("%s is not a folder: %w", abs, ErrNotADirectory)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return Scan{}, fmt.Errorf("list %s: %w", abs, err)
	}

	scan := Scan{Base: abs, Runs: []string{}, Skipped: []Skipped{}, Entries: len(entries)}
	for _, e := range entries {
		name := e.Name()
		dir := filepath.Join(abs, name)
		if !LooksLikeRunFolder(name) {
			log.Warn("Does not look like a run folder " + name)
			scan.Skipped = append(scan.Skipped, Skipped{Name: name, Reason: SkipNamePattern})
			continue
		}
		if !HasRunMetadata(dir) {
			log.Warn("Cannot access " + name)
			scan.Skipped = append(scan.Skipped, Skipped{Name: name, Reason: SkipMissingFiles})
			continue
		}
		log.Debug("Run folder : " + name)
		scan.Runs = append(scan.Runs, dir)
	}
	return scan, nil
}
