package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config holds the numerical safeguards of the caplet pricer and logging settings.
type Config struct {
	// StrikeFloor replaces a zero strike so that log(F/K) stays finite.
	StrikeFloor float64 `mapstructure:"strike_floor"`

	// VolFloor replaces a zero Black volatility.
	VolFloor float64 `mapstructure:"vol_floor"`

	// DaysInYear converts the day difference between valuation and fixing into
	// the option expiry used by the Black formulas.
	DaysInYear float64 `mapstructure:"days_in_year"`

	// DefaultNotional applies when a cap/floor is constructed without a notional.
	DefaultNotional float64 `mapstructure:"default_notional"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "console" or "json"
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	StrikeFloor:     1e-10,
	VolFloor:        1e-10,
	DaysInYear:      365.242,
	DefaultNotional: 1_000_000,
	LogLevel:        "info",
	LogFormat:       "console",
}

var (
	mu  sync.RWMutex
	cfg = DefaultConfig
)

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Validate rejects values that would break the pricer.
func (c Config) Validate() error {
	if !(c.StrikeFloor > 0) {
		return fmt.Errorf("strike_floor must be positive, got %g", c.StrikeFloor)
	}
	if !(c.VolFloor > 0) {
		return fmt.Errorf("vol_floor must be positive, got %g", c.VolFloor)
	}
	if !(c.DaysInYear > 0) {
		return fmt.Errorf("days_in_year must be positive, got %g", c.DaysInYear)
	}
	if !(c.DefaultNotional > 0) {
		return fmt.Errorf("default_notional must be positive, got %g", c.DefaultNotional)
	}
	return nil
}

// Load reads configuration from defaults, an optional YAML file and the environment.
//
// Environment variables use the CAPFLOOR_ prefix (e.g. CAPFLOOR_DAYS_IN_YEAR) and
// override file values. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CAPFLOOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("Load: reading %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("Load: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("strike_floor", DefaultConfig.StrikeFloor)
	v.SetDefault("vol_floor", DefaultConfig.VolFloor)
	v.SetDefault("days_in_year", DefaultConfig.DaysInYear)
	v.SetDefault("default_notional", DefaultConfig.DefaultNotional)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("log_format", DefaultConfig.LogFormat)
}
