// Package config provides the configuration loader for pagefresh.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the file.
const (
	EnvAPIKey       = "PAGEFRESH_API_KEY"
	EnvEndpoint     = "PAGEFRESH_PROVIDER_ENDPOINT"
	EnvSharedSecret = "PAGEFRESH_SHARED_SECRET"
	EnvRedisURL     = "PAGEFRESH_REDIS_URL"
	EnvDatabaseURL  = "PAGEFRESH_DATABASE_URL"
)

// ScheduleParser parses serve schedules. It accepts a leading seconds field
// and descriptors such as @daily.
var ScheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	Getenv func(string) string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Getenv: os.Getenv}
}

// Load reads the configuration at path, applies environment overrides and
// validates the result. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	baseDir := "."

	if path != "" {
		baseDir = filepath.Dir(path)

		var file File
		err := readAndUnmarshalYAML(path, &file)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			l.Logger.Warn(fmt.Sprintf("%s not found, using defaults", path))
		case err != nil:
			return nil, zerr.With(err, "path", path)
		default:
			if err := apply(&cfg, &file); err != nil {
				return nil, zerr.With(err, "path", path)
			}
		}
	}

	l.applyEnv(&cfg)
	resolvePaths(&cfg, baseDir)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func apply(cfg *domain.Config, f *File) error {
	setString(&cfg.Provider.Endpoint, f.Provider.Endpoint)
	setString(&cfg.Provider.Model, f.Provider.Model)
	setString(&cfg.Provider.APIKey, f.Provider.APIKey)
	setString(&cfg.Provider.APIKeyHeader, f.Provider.APIKeyHeader)

	setInt(&cfg.Run.MaxTasksPerRun, f.Run.MaxTasksPerRun)
	setInt(&cfg.Enumeration.TopLocations, f.Enumeration.TopLocations)
	setInt(&cfg.Enumeration.TopIndustriesForCombos, f.Enumeration.TopIndustriesForCombos)
	setInt(&cfg.Enumeration.CombosPerIndustry, f.Enumeration.CombosPerIndustry)
	setInt(&cfg.Enumeration.CitiesPerCountry, f.Enumeration.CitiesPerCountry)

	setString(&cfg.Catalog.IndustriesPath, f.Catalog.Industries)
	setString(&cfg.Catalog.LocationsPath, f.Catalog.Locations)

	setString(&cfg.Store.Driver, f.Store.Driver)
	setString(&cfg.Store.Path, f.Store.Path)
	setString(&cfg.Store.RedisURL, f.Store.RedisURL)
	setString(&cfg.Store.PostgresDSN, f.Store.PostgresDSN)
	setString(&cfg.Store.Table, f.Store.Table)

	setString(&cfg.Server.Addr, f.Server.Addr)
	setString(&cfg.Server.SharedSecret, f.Server.SharedSecret)
	setString(&cfg.Server.Schedule, f.Server.Schedule)
	setString(&cfg.Server.Timezone, f.Server.Timezone)

	durations := []struct {
		field string
		raw   string
		dst   *time.Duration
	}{
		{"provider.timeout", f.Provider.Timeout, &cfg.Provider.Timeout},
		{"run.interCallDelay", f.Run.InterCallDelay, &cfg.Run.InterCallDelay},
		{"run.freshnessThreshold", f.Run.FreshnessThreshold, &cfg.Run.FreshnessThreshold},
		{"run.storeTTL", f.Run.StoreTTL, &cfg.Run.StoreTTL},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", d.field)
		}
		*d.dst = v
	}
	return nil
}

func (l *Loader) applyEnv(cfg *domain.Config) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	setString(&cfg.Provider.APIKey, getenv(EnvAPIKey))
	setString(&cfg.Provider.Endpoint, getenv(EnvEndpoint))
	setString(&cfg.Server.SharedSecret, getenv(EnvSharedSecret))
	setString(&cfg.Store.RedisURL, getenv(EnvRedisURL))
	setString(&cfg.Store.PostgresDSN, getenv(EnvDatabaseURL))
}

// resolvePaths makes relative catalog and store paths relative to baseDir.
func resolvePaths(cfg *domain.Config, baseDir string) {
	for _, p := range []*string{&cfg.Catalog.IndustriesPath, &cfg.Catalog.LocationsPath, &cfg.Store.Path} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}

// Validate rejects out-of-range values.
func Validate(cfg *domain.Config) error {
	switch {
	case cfg.Run.MaxTasksPerRun < 0:
		return invalid("run.maxTasksPerRun", cfg.Run.MaxTasksPerRun)
	case cfg.Run.InterCallDelay < 0:
		return invalid("run.interCallDelay", cfg.Run.InterCallDelay)
	case cfg.Run.FreshnessThreshold <= 0:
		return invalid("run.freshnessThreshold", cfg.Run.FreshnessThreshold)
	case cfg.Run.StoreTTL < 0:
		return invalid("run.storeTTL", cfg.Run.StoreTTL)
	case cfg.Provider.Timeout <= 0:
		return invalid("provider.timeout", cfg.Provider.Timeout)
	case cfg.Enumeration.TopLocations < 0,
		cfg.Enumeration.TopIndustriesForCombos < 0,
		cfg.Enumeration.CombosPerIndustry < 0,
		cfg.Enumeration.CitiesPerCountry < 0:
		return invalid("enumeration", cfg.Enumeration)
	}

	switch cfg.Store.Driver {
	case domain.StoreDriverFile, domain.StoreDriverMemory:
	case domain.StoreDriverRedis:
		if cfg.Store.RedisURL == "" {
			return invalid("store.redisURL", "")
		}
	case domain.StoreDriverPostgres:
		if cfg.Store.PostgresDSN == "" {
			return invalid("store.postgresDSN", "")
		}
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownStoreDriver, fmt.Sprintf("driver %q", cfg.Store.Driver)), "driver", cfg.Store.Driver)
	}

	if _, err := ScheduleParser.Parse(cfg.Server.Schedule); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", "server.schedule")
	}
	if _, err := time.LoadLocation(cfg.Server.Timezone); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", "server.timezone")
	}
	return nil
}

func invalid(field string, value any) error {
	msg := fmt.Sprintf("%s = %v", field, value)
	if value == "" {
		msg = field + " is required"
	}
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidConfig, msg), "field", field), "value", value)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
