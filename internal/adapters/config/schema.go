package config

// File represents the structure of the pagefresh.yaml configuration file.
// Durations are strings accepted by time.ParseDuration.
type File struct {
	Provider    ProviderDTO    `yaml:"provider"`
	Run         RunDTO         `yaml:"run"`
	Enumeration EnumerationDTO `yaml:"enumeration"`
	Catalog     CatalogDTO     `yaml:"catalog"`
	Store       StoreDTO       `yaml:"store"`
	Server      ServerDTO      `yaml:"server"`
}

// ProviderDTO configures the content provider.
type ProviderDTO struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	APIKeyHeader string `yaml:"apiKeyHeader"`
	Timeout      string `yaml:"timeout"`
}

// RunDTO configures the per-run budget.
type RunDTO struct {
	MaxTasksPerRun     *int   `yaml:"maxTasksPerRun"`
	InterCallDelay     string `yaml:"interCallDelay"`
	FreshnessThreshold string `yaml:"freshnessThreshold"`
	StoreTTL           string `yaml:"storeTTL"`
}

// EnumerationDTO bounds the enumerated tiers.
type EnumerationDTO struct {
	TopLocations           *int `yaml:"topLocations"`
	TopIndustriesForCombos *int `yaml:"topIndustriesForCombos"`
	CombosPerIndustry      *int `yaml:"combosPerIndustry"`
	CitiesPerCountry       *int `yaml:"citiesPerCountry"`
}

// CatalogDTO points at the catalog files, relative to the config file.
type CatalogDTO struct {
	Industries string `yaml:"industries"`
	Locations  string `yaml:"locations"`
}

// StoreDTO selects the content store.
type StoreDTO struct {
	Driver      string `yaml:"driver"`
	Path        string `yaml:"path"`
	RedisURL    string `yaml:"redisURL"`
	PostgresDSN string `yaml:"postgresDSN"`
	Table       string `yaml:"table"`
}

// ServerDTO configures serve mode.
type ServerDTO struct {
	Addr         string `yaml:"addr"`
	SharedSecret string `yaml:"sharedSecret"`
	Schedule     string `yaml:"schedule"`
	Timezone     string `yaml:"timezone"`
}
