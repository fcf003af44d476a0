package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/caliper/internal/logging"
	"github.com/five82/caliper/internal/measurement"
	"github.com/five82/caliper/internal/numeric"
)

// Config holds the defaults applied to measurements built by caliper.
type Config struct {
	Policy     string
	Arithmetic string
	Precision  int
	Decimals   int // -1 leaves measurements unrounded
	Theme      string
	LogLevel   string
	LogFormat  string
}

const (
	defaultConfigPath = "~/.config/caliper/config.toml"
	defaultPolicy     = "rss"
	defaultArithmetic = "decimal"
	defaultTheme      = "Nightfox"
	defaultLogLevel   = "warn"
	defaultLogFormat  = logging.FormatConsole

	maxPrecision = 200
	maxDecimals  = 30
)

// Environment variables that override file values.
const (
	EnvPolicy     = "CALIPER_POLICY"
	EnvArithmetic = "CALIPER_ARITHMETIC"
	EnvPrecision  = "CALIPER_PRECISION"
	EnvDecimals   = "CALIPER_DECIMALS"
	EnvTheme      = "CALIPER_THEME"
	EnvLogLevel   = "CALIPER_LOG_LEVEL"
	EnvLogFormat  = "CALIPER_LOG_FORMAT"
)

// FieldError reports an invalid configuration value.
type FieldError struct {
	Field   string
	Value   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config %s=%q: %s", e.Field, e.Value, e.Message)
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Policy:     defaultPolicy,
		Arithmetic: defaultArithmetic,
		Precision:  int(numeric.DefaultPlaces),
		Decimals:   -1,
		Theme:      defaultTheme,
		LogLevel:   defaultLogLevel,
		LogFormat:  defaultLogFormat,
	}
}

// Load reads the config file at path (or the default location), applies
// .env files and CALIPER_* environment overrides, and validates the result.
// A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := cfg.readFile(resolved); err != nil {
		return Config{}, err
	}

	loadDotEnv(filepath.Dir(resolved))
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Policy     string `toml:"policy"`
		Arithmetic string `toml:"arithmetic"`
		Precision  *int   `toml:"precision"`
		Decimals   *int   `toml:"decimals"`
		Theme      string `toml:"theme"`
		LogLevel   string `toml:"log_level"`
		LogFormat  string `toml:"log_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	c.Policy = orDefault(raw.Policy, c.Policy)
	c.Arithmetic = orDefault(raw.Arithmetic, c.Arithmetic)
	c.Theme = orDefault(raw.Theme, c.Theme)
	c.LogLevel = orDefault(raw.LogLevel, c.LogLevel)
	c.LogFormat = orDefault(raw.LogFormat, c.LogFormat)
	if raw.Precision != nil {
		c.Precision = *raw.Precision
	}
	if raw.Decimals != nil {
		c.Decimals = *raw.Decimals
	}
	return nil
}

// loadDotEnv loads .env from the working directory and from dir. Existing
// environment variables win; missing files are ignored.
func loadDotEnv(dir string) {
	_ = godotenv.Load()
	if dir != "" {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}
}

func (c *Config) applyEnv() error {
	c.Policy = getEnv(EnvPolicy, c.Policy)
	c.Arithmetic = getEnv(EnvArithmetic, c.Arithmetic)
	c.Theme = getEnv(EnvTheme, c.Theme)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.LogFormat = getEnv(EnvLogFormat, c.LogFormat)

	var err error
	if c.Precision, err = getEnvAsInt(EnvPrecision, c.Precision); err != nil {
		return err
	}
	if c.Decimals, err = getEnvAsInt(EnvDecimals, c.Decimals); err != nil {
		return err
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if _, err := measurement.ParsePolicy(c.Policy); err != nil {
		return &FieldError{Field: "policy", Value: c.Policy, Message: "want rss or conservative"}
	}
	if _, err := numeric.ParseMode(c.Arithmetic); err != nil {
		return &FieldError{Field: "arithmetic", Value: c.Arithmetic, Message: "want decimal or float"}
	}
	if c.Precision < 1 || c.Precision > maxPrecision {
		return &FieldError{Field: "precision", Value: strconv.Itoa(c.Precision), Message: fmt.Sprintf("must be between 1 and %d", maxPrecision)}
	}
	if c.Decimals < -1 || c.Decimals > maxDecimals {
		return &FieldError{Field: "decimals", Value: strconv.Itoa(c.Decimals), Message: fmt.Sprintf("must be -1 or between 0 and %d", maxDecimals)}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return &FieldError{Field: "log_level", Value: c.LogLevel, Message: "want debug, info, warn, error or disabled"}
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return &FieldError{Field: "log_format", Value: c.LogFormat, Message: "want console or json"}
	}
	return nil
}

// ArithmeticStrategy returns the configured numeric strategy.
func (c Config) ArithmeticStrategy() numeric.Arithmetic {
	mode, err := numeric.ParseMode(c.Arithmetic)
	if err != nil {
		mode = numeric.ModeDecimal
	}
	return numeric.New(mode, int32(c.Precision))
}

// MeasurementOptions returns options applying the configured policy,
// arithmetic and rounding.
func (c Config) MeasurementOptions() []measurement.Option {
	policy, err := measurement.ParsePolicy(c.Policy)
	if err != nil {
		policy = measurement.RootSumSquare
	}
	return []measurement.Option{
		measurement.WithPolicy(policy),
		measurement.WithArithmetic(c.ArithmeticStrategy()),
		measurement.WithDecimals(c.Decimals),
	}
}

// LoggingConfig returns the logger settings.
func (c Config) LoggingConfig() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: strings.ToLower(c.LogFormat)}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, &FieldError{Field: key, Value: value, Message: "not an integer"}
	}
	return n, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
