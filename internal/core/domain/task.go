package domain

import (
	"fmt"
	"net/url"
	"strings"

	"go.trai.ch/zerr"
)

// TaskKind identifies which catalog dimension a Task refers to.
type TaskKind string

const (
	// KindIndustry is a page for a single industry (catalog A).
	KindIndustry TaskKind = "industry"
	// KindLocation is a page for a single city (catalog B).
	KindLocation TaskKind = "location"
	// KindCombo is a page for an industry in a city (A x B).
	KindCombo TaskKind = "combo"
)

// CacheKeyPrefix prefixes every key written by the pipeline.
const CacheKeyPrefix = "seo"

// Industry is a catalog A entry.
type Industry struct {
	Slug   string `yaml:"slug" json:"slug"`
	Name   string `yaml:"name" json:"name"`
	Plural string `yaml:"plural" json:"plural"`
}

// Location is a single city in catalog B.
type Location struct {
	City    string `yaml:"city" json:"city"`
	Country string `yaml:"country" json:"country"`
}

// Task is one unit of content-refresh work. Tasks are values and are never
// mutated after construction.
type Task struct {
	Kind     TaskKind `json:"kind"`
	Industry Industry `json:"industry,omitzero"`
	Location Location `json:"location,omitzero"`
}

// NewIndustryTask returns a task for a single industry page.
func NewIndustryTask(ind Industry) Task {
	return Task{Kind: KindIndustry, Industry: ind}
}

// NewLocationTask returns a task for a single location page.
func NewLocationTask(loc Location) Task {
	return Task{Kind: KindLocation, Location: loc}
}

// NewComboTask returns a task for an industry-in-location page.
func NewComboTask(ind Industry, loc Location) Task {
	return Task{Kind: KindCombo, Industry: ind, Location: loc}
}

// Validate reports whether the task carries the identifying fields its kind needs.
func (t Task) Validate() error {
	switch t.Kind {
	case KindIndustry:
		if t.Industry.Slug == "" {
			return zerr.Wrap(ErrInvalidTask, "industry slug is required")
		}
	case KindLocation:
		if t.Location.City == "" || t.Location.Country == "" {
			return zerr.Wrap(ErrInvalidTask, "city and country are required")
		}
	case KindCombo:
		if t.Industry.Slug == "" || t.Location.City == "" || t.Location.Country == "" {
			return zerr.Wrap(ErrInvalidTask, "industry slug, city and country are required")
		}
	default:
		return zerr.With(zerr.Wrap(ErrInvalidTask, fmt.Sprintf("unknown kind %q", t.Kind)), "kind", string(t.Kind))
	}
	return nil
}

// CacheKey returns the store address of the task's content.
//
// The key depends only on the kind and the identifying fields (industry slug,
// city and country). Each field is query-escaped, so a ':' inside a name can
// never be confused with the separator.
func (t Task) CacheKey() string {
	parts := []string{CacheKeyPrefix, string(t.Kind)}
	switch t.Kind {
	case KindIndustry:
		parts = append(parts, escapeKeyPart(t.Industry.Slug))
	case KindLocation:
		parts = append(parts, escapeKeyPart(t.Location.Country), escapeKeyPart(t.Location.City))
	case KindCombo:
		parts = append(parts,
			escapeKeyPart(t.Industry.Slug),
			escapeKeyPart(t.Location.Country),
			escapeKeyPart(t.Location.City),
		)
	}
	return strings.Join(parts, ":")
}

// String returns a human-readable description of the task.
func (t Task) String() string {
	switch t.Kind {
	case KindIndustry:
		return t.Industry.displayPlural()
	case KindLocation:
		return t.Location.City + ", " + t.Location.Country
	case KindCombo:
		return t.Industry.displayPlural() + " in " + t.Location.City + ", " + t.Location.Country
	default:
		return string(t.Kind)
	}
}

func (i Industry) displayPlural() string {
	if i.Plural != "" {
		return i.Plural
	}
	if i.Name != "" {
		return i.Name
	}
	return i.Slug
}

func escapeKeyPart(s string) string {
	return url.QueryEscape(s)
}
