package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pagefresh/internal/core/domain"
)

var (
	plumbers = domain.Industry{Slug: "plumbers", Name: "Plumber", Plural: "Plumbers"}
	berlin   = domain.Location{City: "Berlin", Country: "Germany"}
)

func TestTask_CacheKey(t *testing.T) {
	tests := []struct {
		name string
		task domain.Task
		want string
	}{
		{
			name: "industry",
			task: domain.NewIndustryTask(plumbers),
			want: "seo:industry:plumbers",
		},
		{
			name: "location",
			task: domain.NewLocationTask(berlin),
			want: "seo:location:Germany:Berlin",
		},
		{
			name: "combo",
			task: domain.NewComboTask(plumbers, berlin),
			want: "seo:combo:plumbers:Germany:Berlin",
		},
		{
			name: "escapes separators and spaces",
			task: domain.NewLocationTask(domain.Location{City: "St. John's", Country: "Antigua:Barbuda"}),
			want: "seo:location:Antigua%3ABarbuda:St.+John%27s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.CacheKey())
			assert.Equal(t, tt.task.CacheKey(), tt.task.CacheKey(), "key must be stable")
		})
	}
}

func TestTask_CacheKey_IgnoresDisplayNames(t *testing.T) {
	a := domain.NewIndustryTask(plumbers)
	b := domain.NewIndustryTask(domain.Industry{Slug: "plumbers", Name: "Plumbing", Plural: "Plumbing pros"})
	assert.Equal(t, a.CacheKey(), b.CacheKey())
}

func TestTask_CacheKey_NoCollisions(t *testing.T) {
	tasks := []domain.Task{
		domain.NewIndustryTask(plumbers),
		domain.NewLocationTask(berlin),
		domain.NewComboTask(plumbers, berlin),
		// A city containing the separator must not alias a different split.
		domain.NewLocationTask(domain.Location{City: "B:C", Country: "A"}),
		domain.NewLocationTask(domain.Location{City: "C", Country: "A:B"}),
		domain.NewComboTask(domain.Industry{Slug: "a:b"}, domain.Location{City: "d", Country: "c"}),
		domain.NewComboTask(domain.Industry{Slug: "a"}, domain.Location{City: "d", Country: "b:c"}),
		domain.NewLocationTask(domain.Location{City: "plumbers", Country: "industry"}),
	}

	seen := make(map[string]domain.Task)
	for _, task := range tasks {
		key := task.CacheKey()
		if prev, ok := seen[key]; ok {
			t.Fatalf("key %q shared by %v and %v", key, prev, task)
		}
		seen[key] = task
	}
}

func TestTask_Validate(t *testing.T) {
	require.NoError(t, domain.NewIndustryTask(plumbers).Validate())
	require.NoError(t, domain.NewLocationTask(berlin).Validate())
	require.NoError(t, domain.NewComboTask(plumbers, berlin).Validate())

	err := domain.NewIndustryTask(domain.Industry{}).Validate()
	require.ErrorIs(t, err, domain.ErrInvalidTask)
	assert.ErrorContains(t, err, "industry slug is required")

	err = domain.NewComboTask(plumbers, domain.Location{City: "Berlin"}).Validate()
	require.ErrorIs(t, err, domain.ErrInvalidTask)
	assert.ErrorContains(t, err, "city and country are required")

	err = domain.Task{Kind: "blog"}.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidTask)
	assert.ErrorContains(t, err, `unknown kind "blog"`)
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "Plumbers", domain.NewIndustryTask(plumbers).String())
	assert.Equal(t, "Berlin, Germany", domain.NewLocationTask(berlin).String())
	assert.Equal(t, "Plumbers in Berlin, Germany", domain.NewComboTask(plumbers, berlin).String())
	assert.Equal(t, "roofers", domain.NewIndustryTask(domain.Industry{Slug: "roofers"}).String())
}

func TestCacheRecord_RoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := domain.NewCacheRecord(domain.GeneratedContent{
		Title: "Plumbers in Berlin",
		FAQ:   []domain.FAQ{{Question: "How much?", Answer: "It depends."}},
	}, at)

	encoded, err := rec.Encode()
	require.NoError(t, err)

	decoded, err := domain.DecodeCacheRecord(encoded)
	require.NoError(t, err)
	assert.Equal(t, at, decoded.GeneratedAt)
	assert.Equal(t, "Plumbers in Berlin", decoded.Content.Title)
	assert.Equal(t, 36*time.Hour, decoded.Age(at.Add(36*time.Hour)))
}

func TestDecodeCacheRecord_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "{ invalid"},
		{name: "missing timestamp", value: `{"content":{"title":"x"}}`},
		{name: "bad timestamp", value: `{"content":{"title":"x"},"generatedAt":"yesterday"}`},
		{name: "empty", value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.DecodeCacheRecord(tt.value)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrRecordMalformed.Error())
		})
	}
}

func TestDecodeCacheRecord_MissingTimestampNamesField(t *testing.T) {
	_, err := domain.DecodeCacheRecord(`{"content":{"title":"x"}}`)

	require.ErrorIs(t, err, domain.ErrRecordMalformed)
	assert.ErrorContains(t, err, "missing generatedAt")
}

func TestCatalog_FlattenLocations(t *testing.T) {
	c := domain.Catalog{
		Countries: []domain.CountryLocations{
			{Country: "Germany", Cities: []string{"Berlin", "Hamburg", "Munich", "Cologne"}},
			{Country: "France", Cities: []string{"Paris"}},
		},
	}

	got := c.FlattenLocations(2)
	assert.Equal(t, []domain.Location{
		{City: "Berlin", Country: "Germany"},
		{City: "Hamburg", Country: "Germany"},
		{City: "Paris", Country: "France"},
	}, got)

	assert.Len(t, c.FlattenLocations(0), 5)
}

func TestCatalog_FindIndustry(t *testing.T) {
	c := domain.Catalog{Industries: []domain.Industry{plumbers}}

	got, ok := c.FindIndustry("plumbers")
	require.True(t, ok)
	assert.Equal(t, plumbers, got)

	_, ok = c.FindIndustry("roofers")
	assert.False(t, ok)
}

func TestReport_Add(t *testing.T) {
	r := domain.NewReport("run-1", time.Now())
	r.Add(domain.RunResult{TaskKey: "a", Outcome: domain.OutcomeSucceeded})
	r.Add(domain.RunResult{TaskKey: "b", Outcome: domain.OutcomeSkipped})
	r.Add(domain.RunResult{TaskKey: "c", Outcome: domain.OutcomeFailed, Reason: "boom"})
	r.Add(domain.RunResult{TaskKey: "d", Outcome: domain.OutcomeSucceeded})

	assert.Equal(t, 2, r.Succeeded)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 4, r.Processed())

	clone := r.Clone()
	clone.Results[0].TaskKey = "changed"
	assert.Equal(t, "a", r.Results[0].TaskKey)
}

func TestTaskRequest_Resolve(t *testing.T) {
	catalog := domain.Catalog{
		Industries: []domain.Industry{{Slug: "plumbers", Name: "Plumber", Plural: "Plumbers"}},
	}

	tests := []struct {
		name    string
		req     domain.TaskRequest
		want    domain.Task
		wantErr bool
	}{
		{
			name: "industry from catalog",
			req:  domain.TaskRequest{Kind: domain.KindIndustry, Slug: "plumbers"},
			want: domain.NewIndustryTask(catalog.Industries[0]),
		},
		{
			name: "location",
			req:  domain.TaskRequest{Kind: domain.KindLocation, City: "Berlin", Country: "Germany"},
			want: domain.NewLocationTask(domain.Location{City: "Berlin", Country: "Germany"}),
		},
		{
			name: "combo",
			req:  domain.TaskRequest{Kind: domain.KindCombo, Slug: "plumbers", City: "Berlin", Country: "Germany"},
			want: domain.NewComboTask(catalog.Industries[0], domain.Location{City: "Berlin", Country: "Germany"}),
		},
		{name: "unknown industry", req: domain.TaskRequest{Kind: domain.KindIndustry, Slug: "bakers"}, wantErr: true},
		{name: "combo missing city", req: domain.TaskRequest{Kind: domain.KindCombo, Slug: "plumbers", Country: "Germany"}, wantErr: true},
		{name: "unknown kind", req: domain.TaskRequest{Kind: "region"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Resolve(catalog)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
