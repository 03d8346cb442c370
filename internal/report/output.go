package report

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// writeOutput writes data to path, replacing any existing file. An existing
// destination is reported as a warning.
func writeOutput(path string, data []byte, log *zap.Logger) error {
	if _, err := os.Stat(path); err == nil {
		log.Warn("Over-writing file: " + path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
