package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DateLayout is the layout accepted for REFERENCE_DATE and the --as-of flag.
const DateLayout = "2006-01-02"

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string
	LogDir              string
	ExportDir           string
	ColumnWidth         float64
	EnableMermaidCharts bool

	// ColumnAliases maps a renamed export header (after normalization) to its canonical name.
	ColumnAliases map[string]string

	// ReferenceDate pins "today" for urgency and timeline rules. Zero means the wall clock.
	ReferenceDate time.Time
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	exportDir := getEnv("EXPORT_DIR", filepath.Join(dataPath, "exports"))

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", exportDir).Msg("Failed to create export directory")
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		LogDir:              logDir,
		ExportDir:           exportDir,
		ColumnWidth:         getEnvFloat("EXPORT_COLUMN_WIDTH", 20),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", true),
	}

	if path := os.Getenv("COLUMN_ALIASES_FILE"); path != "" {
		aliases, err := LoadAliases(path)
		if err != nil {
			return nil, err
		}
		cfg.ColumnAliases = aliases
		log.Debug().Str("path", path).Int("aliases", len(aliases)).Msg("Loaded column aliases")
	}

	if raw := os.Getenv("REFERENCE_DATE"); raw != "" {
		ref, err := ParseReferenceDate(raw)
		if err != nil {
			return nil, err
		}
		cfg.ReferenceDate = ref
	}

	return cfg, nil
}

// Now returns the pinned reference date, or the current wall-clock time.
func (c *AppConfig) Now() time.Time {
	if c != nil && !c.ReferenceDate.IsZero() {
		return c.ReferenceDate
	}
	return time.Now()
}

// ParseReferenceDate parses a YYYY-MM-DD date as a UTC calendar day.
func ParseReferenceDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q (want %s): %w", raw, DateLayout, err)
	}
	return t, nil
}

// LoadAliases reads a YAML mapping of alias header -> canonical header.
//
//	"Deal Stage": "Calculated Deal Stage"
//	"Homesites": "Deal Homesite Total"
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read column aliases %q: %w", path, err)
	}

	aliases := make(map[string]string)
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("failed to parse column aliases %q: %w", path, err)
	}
	return aliases, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
