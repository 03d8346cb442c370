package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"nextseqstats/internal/logging"
	"nextseqstats/internal/runtime"
)

const (
	DefaultTSV  = "nextseq_run_info.txt"
	DefaultHTML = "nextseq_run_info.html"
)

// Config holds every setting of a batch run.
type Config struct {
	// Base directory holding the run folders.
	Base string `yaml:"base"`
	TSV  string `yaml:"tsv"`
	HTML string `yaml:"html"`

	// Verbose is one of debug, info, warning, error, quiet.
	Verbose string `yaml:"verbose"`

	// Workers is the extraction concurrency; 0 means one per CPU.
	Workers     int   `yaml:"workers"`
	MaxXMLBytes int64 `yaml:"max_xml_bytes"`

	Summary    bool `yaml:"summary"`
	StrictExit bool `yaml:"strict_exit"`
}

func DefaultConfig() *Config {
	return &Config{
		TSV:         DefaultTSV,
		HTML:        DefaultHTML,
		Verbose:     "info",
		Workers:     1,
		MaxXMLBytes: runtime.DefaultMaxXMLBytes,
	}
}

// Load reads a YAML config file over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv overlays NEXTSEQ_* settings, first from the dotenv file (if it
// exists) and then from the process environment, which wins. The process
// environment is never modified.
func (c *Config) ApplyEnv(envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read env file: %w", err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}
	return c.applyVars(vars)
}

var envKeys = []string{
	"NEXTSEQ_BASE",
	"NEXTSEQ_TSV",
	"NEXTSEQ_HTML",
	"NEXTSEQ_VERBOSE",
	"NEXTSEQ_WORKERS",
	"NEXTSEQ_MAX_XML_BYTES",
}

func (c *Config) applyVars(vars map[string]string) error {
	if v := vars["NEXTSEQ_BASE"]; v != "" {
		c.Base = v
	}
	if v := vars["NEXTSEQ_TSV"]; v != "" {
		c.TSV = v
	}
	if v := vars["NEXTSEQ_HTML"]; v != "" {
		c.HTML = v
	}
	if v := vars["NEXTSEQ_VERBOSE"]; v != "" {
		c.Verbose = v
	}
	if v := vars["NEXTSEQ_WORKERS"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NEXTSEQ_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := vars["NEXTSEQ_MAX_XML_BYTES"]; v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("NEXTSEQ_MAX_XML_BYTES: %w", err)
		}
		c.MaxXMLBytes = n
	}
	return nil
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Base) == "" {
		return fmt.Errorf("base folder not configured (use --base or NEXTSEQ_BASE)")
	}
	if _, err := logging.ParseLevel(c.Verbose); err != nil {
		return err
	}
	if c.TSV == "" || c.HTML == "" {
		return fmt.Errorf("output paths must not be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	if c.MaxXMLBytes <= 0 {
		return fmt.Errorf("invalid max_xml_bytes: %d", c.MaxXMLBytes)
	}
	return nil
}
