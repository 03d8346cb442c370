package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"nextseqstats/internal/fixture"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestLocateNotADirectory(t *testing.T) {
	tmp := t.TempDir()
	_, err := Locate(filepath.Join(tmp, "missing"), nil)
	require.ErrorIs(t, err, ErrNotADirectory)

	file := filepath.Join(tmp, "plain.txt")
	fixture.WriteFile(t, file, "x")
	_, err = Locate(file, nil)
	require.ErrorIs(t, err, ErrNotADirectory)
}

func TestLocateFiltersEntries(t *testing.T) {
	base := t.TempDir()
	good := fixture.WriteRun(t, base, "200101_X", fixture.DefaultParams("200101"), fixture.DefaultStatus())
	upper := fixture.WriteRun(t, base, "191231_NB501234_0001_A", fixture.DefaultParams("191231"), fixture.DefaultStatus())
	fixture.WriteRun(t, base, "abc_run", fixture.DefaultParams("200103"), fixture.DefaultStatus())

	// name matches but RunCompletionStatus.xml is missing
	partial := filepath.Join(base, "200102_Y")
	require.NoError(t, os.MkdirAll(partial, 0o755))
	fixture.WriteFile(t, filepath.Join(partial, RunParametersFile), fixture.RunParametersXML(fixture.DefaultParams("200102")))

	// a plain file with a run-like name
	fixture.WriteFile(t, filepath.Join(base, "200104_file"), "not a folder")

	log, logs := observedLogger()
	scan, err := Locate(base, log)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{good, upper}, scan.Runs)
	assert.Equal(t, 5, scan.Entries)
	assert.ElementsMatch(t, []Skipped{
		{Name: "abc_run", Reason: SkipNamePattern},
		{Name: "200102_Y", Reason: SkipMissingFiles},
		{Name: "200104_file", Reason: SkipMissingFiles},
	}, scan.Skipped)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel)
	assert.Equal(t, 3, warnings.Len())
	assert.Equal(t, 1, warnings.FilterMessageSnippet("Does not look like a run folder abc_run").Len())
	assert.Equal(t, 1, warnings.FilterMessageSnippet("Cannot access 200102_Y").Len())
}

func TestLocateEmptyBase(t *testing.T) {
	scan, err := Locate(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, scan.Runs)
	assert.Empty(t, scan.Skipped)
}

func TestLooksLikeRunFolder(t *testing.T) {
	tests := map[string]bool{
		"200101_X":                       true,
		"170301_NB501234_0042_AHXXXXXXX": true,
		"1_":                             true,
		"abc_run":                        false,
		"200101":                         false,
		"_200101":                        false,
		"20a0101_X":                      false,
	}
	for name, want := range tests {
		assert.Equal(t, want, LooksLikeRunFolder(name), name)
	}
}
