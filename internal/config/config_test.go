package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "nextseq_run_info.txt", cfg.TSV)
	assert.Equal(t, "nextseq_run_info.html", cfg.HTML)
	assert.Equal(t, "info", cfg.Verbose)
	assert.Equal(t, 1, cfg.Workers)
	assert.Error(t, cfg.Validate(), "base is required")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nextseq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: /illumina\nworkers: 4\nverbose: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/illumina", cfg.Base)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "debug", cfg.Verbose)
	assert.Equal(t, DefaultTSV, cfg.TSV, "unset keys keep defaults")
	require.NoError(t, cfg.Validate())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Base = "/runs"
	cfg.Summary = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Run("dotenv file fills settings", func(t *testing.T) {
		clearEnv(t)
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("NEXTSEQ_BASE=/from/file\nNEXTSEQ_WORKERS=3\n"), 0644))

		cfg := DefaultConfig()
		require.NoError(t, cfg.ApplyEnv(envFile))
		assert.Equal(t, "/from/file", cfg.Base)
		assert.Equal(t, 3, cfg.Workers)
		_, set := os.LookupEnv("NEXTSEQ_BASE")
		assert.False(t, set, "process environment must not be modified")
	})

	t.Run("process environment wins over dotenv", func(t *testing.T) {
		clearEnv(t)
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("NEXTSEQ_BASE=/from/file\n"), 0644))
		t.Setenv("NEXTSEQ_BASE", "/from/env")
		t.Setenv("NEXTSEQ_HTML", "report.html")

		cfg := DefaultConfig()
		require.NoError(t, cfg.ApplyEnv(envFile))
		assert.Equal(t, "/from/env", cfg.Base)
		assert.Equal(t, "report.html", cfg.HTML)
	})

	t.Run("missing dotenv file is ignored", func(t *testing.T) {
		clearEnv(t)
		cfg := DefaultConfig()
		require.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "none.env")))
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("bad number", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("NEXTSEQ_WORKERS", "many")
		cfg := DefaultConfig()
		assert.Error(t, cfg.ApplyEnv(""))
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Base = "/runs"
	require.NoError(t, cfg.Validate())

	cfg.Verbose = "loud"
	assert.Error(t, cfg.Validate())

	cfg.Verbose = "quiet"
	cfg.Workers = -1
	assert.Error(t, cfg.Validate())
}
