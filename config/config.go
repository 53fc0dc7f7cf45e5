package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/adbreak/breakgen/core/model"
)

// EnvPrefix marks environment variables that override file values.
// BREAKGEN_OUTPUT__DIR overrides output.dir.
const EnvPrefix = "BREAKGEN_"

// requiredKeys must be present in every configuration file.
var requiredKeys = []string{
	"name",
	"schedule_start_time",
	"schedule_end_time",
	"break_count",
	"break_duration",
	"commercial_count",
	"commercial_duration",
	"commercial_minimum_play",
	"commercial_maximum_play",
	"price_range",
	"reach_range",
	"budget_chance",
	"reach_chance",
	"penalty",
	"competitors_count",
}

// Config holds the generator configuration. Candidate sets are sampled
// uniformly with replacement.
type Config struct {
	Name  string `json:"name"`
	Scale string `json:"scale"`
	// Seed makes a run reproducible. A nil seed is derived from the clock.
	Seed *int64 `json:"seed"`

	ScheduleStartTime string `json:"schedule_start_time"`
	ScheduleEndTime   string `json:"schedule_end_time"`

	BreakCount    []int `json:"break_count"`
	BreakDuration []int `json:"break_duration"`

	CommercialCount       []int `json:"commercial_count"`
	CommercialDuration    []int `json:"commercial_duration"`
	CommercialMinimumPlay []int `json:"commercial_minimum_play"`
	CommercialMaximumPlay []int `json:"commercial_maximum_play"`
	Penalty               []int `json:"penalty"`

	PriceRange   []int `json:"price_range"`
	ReachRange   []int `json:"reach_range"`
	BudgetChance []int `json:"budget_chance"`
	ReachChance  []int `json:"reach_chance"`

	CompetitorsCount int `json:"competitors_count"`

	Output  OutputConfig  `json:"output"`
	Logging LoggingConfig `json:"logging"`
	Metrics MetricsConfig `json:"metrics"`
}

// Load reads a JSON or YAML configuration file, applies BREAKGEN_ environment
// overrides, fills defaults and validates the result. Every problem found is
// reported in one joined error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = jsonParser()
	default:
		return nil, &Error{Key: "path", Err: fmt.Errorf("%w: unsupported config format %q", ErrInvalidValue, ext)}
	}
	if _, err := os.Stat(path); err != nil {
		return nil, &Error{Key: "path", Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, &Error{Key: "path", Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
	}
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var errs []error
	for _, key := range requiredKeys {
		if !k.Exists(key) {
			errs = append(errs, &Error{Key: key, Err: ErrMissingKey})
		}
	}
	errs = append(errs, checkIntegers(k)...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, &Error{Key: "config", Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills optional sections.
func (c *Config) SetDefaults() {
	c.Output.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every field and returns all problems joined together.
func (c Config) Validate() error {
	var errs []error
	add := func(key string, err error) {
		if err != nil {
			errs = append(errs, &Error{Key: key, Err: err})
		}
	}

	if strings.TrimSpace(c.Name) == "" {
		add("name", fmt.Errorf("%w: must not be empty", ErrInvalidValue))
	}
	start, serr := model.ParseTimestamp(c.ScheduleStartTime)
	add("schedule_start_time", invalid(serr))
	end, eerr := model.ParseTimestamp(c.ScheduleEndTime)
	add("schedule_end_time", invalid(eerr))
	if serr == nil && eerr == nil && !end.After(start.Time) {
		add("schedule_end_time", fmt.Errorf("%w: must be after schedule_start_time", ErrInvalidValue))
	}

	add("break_count", candidates(c.BreakCount, 0))
	add("break_duration", candidates(c.BreakDuration, 1))
	add("commercial_count", candidates(c.CommercialCount, 0))
	add("commercial_duration", candidates(c.CommercialDuration, 1))
	add("commercial_minimum_play", candidates(c.CommercialMinimumPlay, 0))
	add("commercial_maximum_play", candidates(c.CommercialMaximumPlay, 0))
	add("penalty", candidates(c.Penalty, 0))
	add("price_range", candidates(c.PriceRange, 1))
	add("reach_range", candidates(c.ReachRange, 1))
	add("budget_chance", candidates(c.BudgetChance, 0))
	add("reach_chance", candidates(c.ReachChance, 0))
	if c.CompetitorsCount < 0 {
		add("competitors_count", fmt.Errorf("%w: must be >= 0", ErrInvalidValue))
	}

	add("output", c.Output.Validate())
	add("logging", c.Logging.Validate())
	return errors.Join(errs...)
}

// Horizon returns the parsed planning window.
func (c Config) Horizon() (model.Horizon, error) {
	start, err := model.ParseTimestamp(c.ScheduleStartTime)
	if err != nil {
		return model.Horizon{}, &Error{Key: "schedule_start_time", Err: invalid(err)}
	}
	end, err := model.ParseTimestamp(c.ScheduleEndTime)
	if err != nil {
		return model.Horizon{}, &Error{Key: "schedule_end_time", Err: invalid(err)}
	}
	return model.Horizon{Start: start, End: end}, nil
}

// ScaleLabel is the scale used in output file names: the configured label or
// the horizon length in hours.
func (c Config) ScaleLabel() string {
	if c.Scale != "" {
		return c.Scale
	}
	h, err := c.Horizon()
	if err != nil {
		return "0"
	}
	return fmt.Sprintf("%d", h.Hours())
}

func candidates(set []int, min int) error {
	if len(set) == 0 {
		return fmt.Errorf("%w: candidate set is empty", ErrInvalidValue)
	}
	for i, v := range set {
		if v < min {
			return fmt.Errorf("%w: candidate %d is %d, must be >= %d", ErrInvalidValue, i, v, min)
		}
	}
	return nil
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidValue, err)
}
