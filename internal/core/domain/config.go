package domain

import "time"

// Store drivers understood by the store node.
const (
	StoreDriverFile     = "file"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Default pipeline settings.
const (
	DefaultMaxTasksPerRun         = 40
	DefaultInterCallDelay         = 1500 * time.Millisecond
	DefaultFreshnessThreshold     = 3 * 24 * time.Hour
	DefaultStoreTTL               = 30 * 24 * time.Hour
	DefaultTopLocations           = 20
	DefaultTopIndustriesForCombos = 5
	DefaultCombosPerIndustry      = 5
	DefaultCitiesPerCountry       = 3
	DefaultProviderModel          = "content-large"
	DefaultProviderAPIKeyHeader   = "X-API-Key"
	DefaultProviderTimeout        = 60 * time.Second
	DefaultServerAddr             = ":8080"
	DefaultSchedule               = "0 0 3 * * *"
)

// ProviderConfig configures the generative-content provider client.
type ProviderConfig struct {
	Endpoint     string
	Model        string
	APIKey       string
	APIKeyHeader string
	Timeout      time.Duration
}

// RunConfig holds the per-run budget.
type RunConfig struct {
	MaxTasksPerRun     int
	InterCallDelay     time.Duration
	FreshnessThreshold time.Duration
	StoreTTL           time.Duration
}

// EnumerationConfig bounds the tiers produced by the task enumerator.
type EnumerationConfig struct {
	TopLocations           int
	TopIndustriesForCombos int
	CombosPerIndustry      int
	CitiesPerCountry       int
}

// CatalogConfig points at the catalog files.
type CatalogConfig struct {
	IndustriesPath string
	LocationsPath  string
}

// StoreConfig selects and configures the content store.
type StoreConfig struct {
	Driver      string
	Path        string
	RedisURL    string
	PostgresDSN string
	Table       string
}

// ServerConfig configures the long-running serve mode.
type ServerConfig struct {
	Addr         string
	SharedSecret string
	Schedule     string
	Timezone     string
}

// Config is the full application configuration.
type Config struct {
	Provider    ProviderConfig
	Run         RunConfig
	Enumeration EnumerationConfig
	Catalog     CatalogConfig
	Store       StoreConfig
	Server      ServerConfig
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			Model:        DefaultProviderModel,
			APIKeyHeader: DefaultProviderAPIKeyHeader,
			Timeout:      DefaultProviderTimeout,
		},
		Run: RunConfig{
			MaxTasksPerRun:     DefaultMaxTasksPerRun,
			InterCallDelay:     DefaultInterCallDelay,
			FreshnessThreshold: DefaultFreshnessThreshold,
			StoreTTL:           DefaultStoreTTL,
		},
		Enumeration: EnumerationConfig{
			TopLocations:           DefaultTopLocations,
			TopIndustriesForCombos: DefaultTopIndustriesForCombos,
			CombosPerIndustry:      DefaultCombosPerIndustry,
			CitiesPerCountry:       DefaultCitiesPerCountry,
		},
		Catalog: CatalogConfig{
			IndustriesPath: DefaultIndustriesFile,
			LocationsPath:  DefaultLocationsFile,
		},
		Store: StoreConfig{
			Driver: StoreDriverFile,
			Path:   DefaultStorePath(),
			Table:  DefaultPostgresTable,
		},
		Server: ServerConfig{
			Addr:     DefaultServerAddr,
			Schedule: DefaultSchedule,
			Timezone: "UTC",
		},
	}
}
