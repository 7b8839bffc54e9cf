// Package catalog loads the industry and location catalogs from YAML files.
package catalog

import (
	"fmt"
	"os"

	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.CatalogLoader.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads both catalogs. Entries missing their identifying fields are
// dropped with a warning; file order is preserved.
func (l *Loader) Load(industriesPath, locationsPath string) (*domain.Catalog, error) {
	var industries []domain.Industry
	if err := readYAML(industriesPath, &industries); err != nil {
		return nil, err
	}

	var countries []domain.CountryLocations
	if err := readYAML(locationsPath, &countries); err != nil {
		return nil, err
	}

	cat := &domain.Catalog{
		Industries: make([]domain.Industry, 0, len(industries)),
		Countries:  make([]domain.CountryLocations, 0, len(countries)),
	}

	seen := make(map[string]bool, len(industries))
	for i, ind := range industries {
		switch {
		case ind.Slug == "":
			l.Logger.Warn(fmt.Sprintf("%s: industry #%d has no slug, skipping", industriesPath, i+1))
			continue
		case seen[ind.Slug]:
			l.Logger.Warn(fmt.Sprintf("%s: duplicate industry %q, skipping", industriesPath, ind.Slug))
			continue
		}
		seen[ind.Slug] = true
		cat.Industries = append(cat.Industries, ind)
	}

	for i, c := range countries {
		if c.Country == "" {
			l.Logger.Warn(fmt.Sprintf("%s: entry #%d has no country, skipping", locationsPath, i+1))
			continue
		}
		cities := make([]string, 0, len(c.Cities))
		for _, city := range c.Cities {
			if city != "" {
				cities = append(cities, city)
			}
		}
		cat.Countries = append(cat.Countries, domain.CountryLocations{Country: c.Country, Cities: cities})
	}

	return cat, nil
}

func readYAML[T any](path string, target *T) error {
	// #nosec G304 -- path comes from configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCatalogReadFailed.Error()), "path", path)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCatalogParseFailed.Error()), "path", path)
	}
	return nil
}
