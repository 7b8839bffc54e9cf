// Package planner builds the priority-ordered list of refresh tasks.
package planner

import (
	"go.trai.ch/pagefresh/internal/core/domain"
)

// Enumerate returns every candidate task for a run in priority order.
//
// Tier 1 is one industry task per catalog entry. Tier 2 is the first
// TopLocations cities after flattening the countries, keeping only
// CitiesPerCountry cities from each (zero keeps them all). Tier 3 pairs the first
// TopIndustriesForCombos industries with the first CombosPerIndustry
// Tier 2 locations, industry-major.
//
// Duplicate keys are not removed here; a later duplicate is skipped by the
// freshness gate once the earlier one has been written.
func Enumerate(catalog domain.Catalog, limits domain.EnumerationConfig) []domain.Task {
	industries := catalog.Industries
	locations := head(catalog.FlattenLocations(limits.CitiesPerCountry), limits.TopLocations)
	comboIndustries := head(industries, limits.TopIndustriesForCombos)
	comboLocations := head(locations, limits.CombosPerIndustry)

	tasks := make([]domain.Task, 0, len(industries)+len(locations)+len(comboIndustries)*len(comboLocations))

	for _, ind := range industries {
		tasks = append(tasks, domain.NewIndustryTask(ind))
	}

	for _, loc := range locations {
		tasks = append(tasks, domain.NewLocationTask(loc))
	}

	for _, ind := range comboIndustries {
		for _, loc := range comboLocations {
			tasks = append(tasks, domain.NewComboTask(ind, loc))
		}
	}

	return tasks
}

// head returns at most n leading elements. Negative n yields nothing.
func head[T any](s []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if n > len(s) {
		return s
	}
	return s[:n]
}
