package domain

// CountryLocations groups the cities of one country in priority order.
type CountryLocations struct {
	Country string   `yaml:"country"`
	Cities  []string `yaml:"cities"`
}

// Catalog is the read-only input the task enumerator draws from.
type Catalog struct {
	Industries []Industry
	Countries  []CountryLocations
}

// FlattenLocations returns the cities of every country in catalog order,
// keeping at most perCountry cities from each country. A perCountry of zero
// or less keeps every city.
func (c Catalog) FlattenLocations(perCountry int) []Location {
	var out []Location
	for _, group := range c.Countries {
		cities := group.Cities
		if perCountry > 0 && len(cities) > perCountry {
			cities = cities[:perCountry]
		}
		for _, city := range cities {
			out = append(out, Location{City: city, Country: group.Country})
		}
	}
	return out
}

// FindIndustry returns the industry with the given slug.
func (c Catalog) FindIndustry(slug string) (Industry, bool) {
	for _, ind := range c.Industries {
		if ind.Slug == slug {
			return ind, true
		}
	}
	return Industry{}, false
}
