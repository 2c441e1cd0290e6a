// Package config is the explicit option record of one dreamstats run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/colorfulnotion/dreamstats/extract"
	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/colorfulnotion/dreamstats/suites"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
)

const (
	DefaultPivot    = "AVG_IPC"
	DefaultBaseline = "best"
	DefaultLogLevel = "info"

	envPrefix = "DREAMSTATS_"
)

type Config struct {
	Dirs []string `json:"dirs"`

	// Pivot is the metric tabulated per configuration. Type, when set,
	// selects one configuration and tabulates all its metrics instead.
	Pivot string `json:"pivot"`
	Type  string `json:"type,omitempty"`

	Baseline     string   `json:"baseline"`
	NoSlowdown   bool     `json:"noslowdown"`
	Mean         bool     `json:"mean"`
	Geomean      bool     `json:"gmean"`
	GeomeanSuite bool     `json:"gmean_suite"`
	DropNA       bool     `json:"dropna"`
	Cols         []string `json:"cols,omitempty"`
	IgnoreCols   []string `json:"ignorecols,omitempty"`
	Suite        string   `json:"suite,omitempty"`
	SuiteOrder   []string `json:"suite_order"`

	Extract extract.Options `json:"extract"`

	Out   string `json:"out,omitempty"`
	Meta  string `json:"meta,omitempty"`
	Cache string `json:"cache,omitempty"`

	LogLevel string `json:"loglevel"`
	LogJSON  bool   `json:"logjson"`
	Debug    string `json:"debug,omitempty"`
}

func Defaults() Config {
	return Config{
		Pivot:      DefaultPivot,
		Baseline:   DefaultBaseline,
		SuiteOrder: suites.DefaultOrder(),
		Extract:    extract.DefaultOptions(),
		LogLevel:   DefaultLogLevel,
	}
}

// LoadEnv reads the given dotenv files (or ./.env when present) into the
// process environment, then applies DREAMSTATS_* variables to c. Variables
// already set in the environment win over dotenv files.
func LoadEnv(c *Config, files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return fmt.Errorf("load %v: %w", files, err)
		}
	}
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = splitList(v)
		}
	}
	var err error
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = errors.Join(err, fmt.Errorf("%s%s=%q: %w", envPrefix, name, v, perr))
				return
			}
			*dst = b
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = errors.Join(err, fmt.Errorf("%s%s=%q: %w", envPrefix, name, v, perr))
				return
			}
			*dst = f
		}
	}

	str("PIVOT", &c.Pivot)
	str("BASELINE", &c.Baseline)
	str("CACHE", &c.Cache)
	str("LOG_LEVEL", &c.LogLevel)
	str("DEBUG", &c.Debug)
	list("SUITE_ORDER", &c.SuiteOrder)
	list("EXCLUDE", &c.Extract.Exclude)
	boolean("LOG_JSON", &c.LogJSON)
	boolean("ROW_ACTIVATIONS", &c.Extract.RowActivations)
	float("MPKI_THRESHOLD", &c.Extract.MPKIThreshold)
	float("APKI_THRESHOLD", &c.Extract.APKIThreshold)
	return err
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate rejects option combinations the pipeline cannot honor.
func (c *Config) Validate() error {
	if len(c.Dirs) == 0 {
		return statserrors.ErrWNoInput
	}
	if c.Mean && c.Geomean {
		return statserrors.ErrCConflictingSummary
	}
	if c.Extract.MPKIThreshold < 0 || c.Extract.APKIThreshold < 0 {
		return fmt.Errorf("mpki=%g apki=%g: %w", c.Extract.MPKIThreshold, c.Extract.APKIThreshold, statserrors.ErrCInvalidThreshold)
	}
	if c.Suite != "" && !suites.IsSuite(c.Suite) {
		return fmt.Errorf("suite %q: %w", c.Suite, statserrors.ErrCUnknownSuite)
	}
	for _, s := range c.SuiteOrder {
		if !suites.IsSuite(s) {
			return fmt.Errorf("suite order entry %q: %w", s, statserrors.ErrCUnknownSuite)
		}
	}
	if c.Type == "" && c.Pivot == "" {
		return errors.New("either a pivot metric or a configuration type is required")
	}
	return nil
}

// Slowdown reports whether values are normalized against a baseline.
func (c *Config) Slowdown() bool { return !c.NoSlowdown && c.Baseline != "" }

// String returns the Config as a formatted JSON string
func (c *Config) String() string {
	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error marshaling JSON: %v", err)
	}
	return string(jsonData)
}
