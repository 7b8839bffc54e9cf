package domain

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

// TaskRequest names a single page by its identifying fields, as supplied by
// a manual trigger.
type TaskRequest struct {
	Kind    TaskKind `json:"kind"`
	Slug    string   `json:"slug,omitempty"`
	City    string   `json:"city,omitempty"`
	Country string   `json:"country,omitempty"`
}

// Resolve builds the Task the request names. Industry fields are taken from
// the catalog so that manual and scheduled runs describe the page the same
// way. Every error matches ErrInvalidRequest.
func (r TaskRequest) Resolve(catalog Catalog) (Task, error) {
	loc := Location{City: r.City, Country: r.Country}

	var task Task
	switch r.Kind {
	case KindIndustry, KindCombo:
		ind, ok := catalog.FindIndustry(r.Slug)
		if !ok {
			return Task{}, errors.Join(ErrInvalidRequest, zerr.With(zerr.Wrap(ErrIndustryNotFound, fmt.Sprintf("slug %q", r.Slug)), "slug", r.Slug))
		}
		if r.Kind == KindIndustry {
			task = NewIndustryTask(ind)
		} else {
			task = NewComboTask(ind, loc)
		}
	case KindLocation:
		task = NewLocationTask(loc)
	default:
		task = Task{Kind: r.Kind}
	}

	if err := task.Validate(); err != nil {
		return Task{}, errors.Join(ErrInvalidRequest, err)
	}
	return task, nil
}
