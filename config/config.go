// Package config loads hashing and redaction settings with viper and builds
// the matching components.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// config file (format picked from its extension), and environment variables
// prefixed with PII_, e.g. PII_HASHING_BCRYPT_COST=14 or
// PII_REDACTION_FIELDS=email,ssn.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/hasbyte1/go-personal-data/hashing"
	"github.com/hasbyte1/go-personal-data/redact"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PII"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// DefaultFields returns the personal-data fields masked when none are
// configured. Each call returns a fresh slice.
func DefaultFields() []string {
	return []string{"name", "email", "phone", "ssn", "password"}
}

// Config is the full set of settings for the hasher and the redacting logger.
type Config struct {
	Hashing   HashingConfig   `mapstructure:"hashing"`
	Redaction RedactionConfig `mapstructure:"redaction"`
	Log       LogConfig       `mapstructure:"log"`
}

// HashingConfig selects and tunes the password hasher.
type HashingConfig struct {
	// Driver is "bcrypt" or "argon2id".
	Driver        string `mapstructure:"driver"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
	Argon2Memory  uint32 `mapstructure:"argon2_memory"`
	Argon2Time    uint32 `mapstructure:"argon2_time"`
	Argon2Threads uint8  `mapstructure:"argon2_threads"`
}

// RedactionConfig lists the masked fields and how values are delimited.
type RedactionConfig struct {
	Fields    []string `mapstructure:"fields"`
	Token     string   `mapstructure:"token"`
	Separator string   `mapstructure:"separator"`
}

// LogConfig names the logger and sets its minimum level.
type LogConfig struct {
	Name  string `mapstructure:"name"`
	Level string `mapstructure:"level"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("hashing.driver", string(hashing.DriverBcrypt))
	v.SetDefault("hashing.bcrypt_cost", hashing.DefaultBcryptCost)
	v.SetDefault("hashing.argon2_memory", hashing.DefaultArgon2Memory)
	v.SetDefault("hashing.argon2_time", hashing.DefaultArgon2Time)
	v.SetDefault("hashing.argon2_threads", hashing.DefaultArgon2Threads)
	v.SetDefault("redaction.fields", DefaultFields())
	v.SetDefault("redaction.token", redact.Redaction)
	v.SetDefault("redaction.separator", redact.Separator)
	v.SetDefault("log.name", "user_data")
	v.SetDefault("log.level", "info")
	return v
}

// Load reads the file at path, if path is not empty, then applies
// environment overrides and defaults. The result is validated.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return decode(v)
}

// LoadFromBytes is Load for an in-memory document. configType is any format
// viper understands, e.g. "yaml", "json" or "toml".
func LoadFromBytes(configType string, data []byte) (*Config, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, fmt.Errorf("%w: config type is required", ErrInvalidConfig)
	}
	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", configType, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that both components can be built from c.
func (c *Config) Validate() error {
	if _, err := c.NewHasher(); err != nil {
		return fmt.Errorf("%w: hashing: %v", ErrInvalidConfig, err)
	}
	if _, err := c.NewFormatter(); err != nil {
		return fmt.Errorf("%w: redaction: %v", ErrInvalidConfig, err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// parseLevel accepts zerolog's level names as well as the names rendered
// in formatted lines ("WARNING", "CRITICAL").
func parseLevel(s string) (zerolog.Level, error) {
	if l, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil {
		return l, nil
	}
	l, ok := redact.ParseLevel(s)
	if !ok {
		return zerolog.NoLevel, fmt.Errorf("unknown level %q", s)
	}
	switch l {
	case redact.DebugLevel:
		return zerolog.DebugLevel, nil
	case redact.WarnLevel:
		return zerolog.WarnLevel, nil
	case redact.ErrorLevel:
		return zerolog.ErrorLevel, nil
	case redact.FatalLevel:
		return zerolog.FatalLevel, nil
	default:
		return zerolog.InfoLevel, nil
	}
}

// NewHasher builds the configured password hasher.
func (c *Config) NewHasher() (hashing.Hasher, error) {
	switch hashing.DriverName(strings.ToLower(c.Hashing.Driver)) {
	case hashing.DriverBcrypt:
		return hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: c.Hashing.BcryptCost})
	case hashing.DriverArgon2id:
		opts := hashing.DefaultArgon2Options()
		opts.Memory = c.Hashing.Argon2Memory
		opts.Time = c.Hashing.Argon2Time
		opts.Threads = c.Hashing.Argon2Threads
		return hashing.NewArgon2idHasher(opts)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", hashing.ErrInvalidOption, c.Hashing.Driver)
	}
}

// NewFormatter builds the redacting formatter for the configured fields.
func (c *Config) NewFormatter() (*redact.RedactingFormatter, error) {
	return redact.NewRedactingFormatter(c.Redaction.Fields,
		redact.WithRedaction(c.Redaction.Token),
		redact.WithSeparator(c.Redaction.Separator),
	)
}

// NewLogger builds a redacting zerolog logger writing to out.
func (c *Config) NewLogger(out io.Writer) (zerolog.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: log level: %v", ErrInvalidConfig, err)
	}
	logger, err := redact.NewLogger(c.Log.Name, c.Redaction.Fields, out,
		redact.WithRedaction(c.Redaction.Token),
		redact.WithSeparator(c.Redaction.Separator),
	)
	if err != nil {
		return zerolog.Nop(), err
	}
	return logger.Level(level), nil
}
