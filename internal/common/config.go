package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/docsort/constants"
)

// DefaultConfigName is looked up next to the executable.
const DefaultConfigName = "config.json"

// Config holds all application configuration
type Config struct {
	Path     string // file the configuration was read from
	Sources  SourcesConfig
	OCR      OCRConfig
	Journal  JournalConfig
	Report   ReportConfig
	LogLevel string
}

// SourcesConfig points at the two reference tables.
type SourcesConfig struct {
	Executors string `json:"executors"`
	Districts string `json:"districts"`
}

// OCRConfig selects and tunes the text extractor.
type OCRConfig struct {
	Engine    string `json:"engine"`
	Pdftotext string `json:"pdftotext"`
	Layout    bool   `json:"layout"`
}

// JournalConfig holds the optional run journal DSN (SQLite path or postgres URL).
type JournalConfig struct {
	DSN string `json:"dsn"`
}

// ReportConfig holds the optional XLSX report path.
type ReportConfig struct {
	Path string `json:"path"`
}

type fileConfig struct {
	Sources  SourcesConfig `json:"sources"`
	OCR      OCRConfig     `json:"ocr"`
	Journal  JournalConfig `json:"journal"`
	Report   ReportConfig  `json:"report"`
	LogLevel string        `json:"log_level"`
}

const configSchema = `{
  "type": "object",
  "required": ["sources"],
  "properties": {
    "sources": {
      "type": "object",
      "required": ["executors", "districts"],
      "properties": {
        "executors": {"type": "string", "minLength": 1},
        "districts": {"type": "string", "minLength": 1}
      }
    },
    "ocr": {
      "type": "object",
      "properties": {
        "engine": {"enum": ["", "pdftotext", "native"]},
        "pdftotext": {"type": "string"},
        "layout": {"type": "boolean"}
      }
    },
    "journal": {"type": "object", "properties": {"dsn": {"type": "string"}}},
    "report": {"type": "object", "properties": {"path": {"type": "string"}}},
    "log_level": {"enum": ["", "debug", "info", "warn", "error"]}
  }
}`

// DefaultConfigPath returns config.json in the directory of the running binary.
func DefaultConfigPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", NewAppError(CodeConfig, "could not locate the executable", err)
	}
	return filepath.Join(filepath.Dir(exe), DefaultConfigName), nil
}

// LoadConfig reads the JSON configuration at path, validates it against the
// embedded schema, applies environment overrides and resolves relative source
// paths against the directory holding the configuration file.
func LoadConfig(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewAppError(CodeConfig, "resolve config path", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, NewAppError(CodeConfig,
			fmt.Sprintf("could not read the configuration file %q; the program directory must contain a %q file", abs, DefaultConfigName), err)
	}
	if err := validateConfigJSON(data); err != nil {
		return nil, NewAppError(CodeConfig, "invalid configuration file "+abs, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, NewAppError(CodeConfig, "decode configuration file "+abs, err)
	}

	cfg := &Config{
		Path: abs,
		Sources: SourcesConfig{
			Executors: getEnv("DOCSORT_EXECUTORS", fc.Sources.Executors),
			Districts: getEnv("DOCSORT_DISTRICTS", fc.Sources.Districts),
		},
		OCR: OCRConfig{
			Engine:    getEnv("DOCSORT_OCR_ENGINE", fc.OCR.Engine),
			Pdftotext: getEnv("DOCSORT_PDFTOTEXT", fc.OCR.Pdftotext),
			Layout:    getEnvAsBool("DOCSORT_OCR_LAYOUT", fc.OCR.Layout),
		},
		Journal:  JournalConfig{DSN: getEnv("DOCSORT_JOURNAL_DSN", fc.Journal.DSN)},
		Report:   ReportConfig{Path: getEnv("DOCSORT_REPORT_PATH", fc.Report.Path)},
		LogLevel: getEnv("DOCSORT_LOG_LEVEL", fc.LogLevel),
	}
	if cfg.OCR.Engine == "" {
		cfg.OCR.Engine = constants.EnginePdftotext
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	base := filepath.Dir(abs)
	cfg.Sources.Executors = resolveAgainst(base, cfg.Sources.Executors)
	cfg.Sources.Districts = resolveAgainst(base, cfg.Sources.Districts)
	return cfg, nil
}

func validateConfigJSON(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", strings.NewReader(configSchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}

func resolveAgainst(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks that every referenced source exists before any traversal.
func (c *Config) Validate() error {
	sources := []struct{ name, path string }{
		{"executors", c.Sources.Executors},
		{"districts", c.Sources.Districts},
	}
	for _, src := range sources {
		st, err := os.Stat(src.path)
		if err != nil {
			return NewAppError(CodeConfig, fmt.Sprintf("source %q (%s) is not available", src.name, src.path), err)
		}
		if !st.Mode().IsRegular() {
			return NewAppError(CodeConfig, fmt.Sprintf("source %q (%s) is not a regular file", src.name, src.path), nil)
		}
	}
	switch c.OCR.Engine {
	case constants.EnginePdftotext, constants.EngineNative:
	default:
		return NewAppError(CodeConfig, fmt.Sprintf("unknown ocr engine %q", c.OCR.Engine), nil)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
