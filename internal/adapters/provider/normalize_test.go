package provider_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pagefresh/internal/adapters/provider"
	"go.trai.ch/pagefresh/internal/core/domain"
)

func TestNormalize(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		wantTitle  string
		wantErr    error
		wantDetail string
	}{
		{
			name:      "plain content field",
			body:      `{"content": "{\"title\": \"Plumbers in Berlin\"}"}`,
			wantTitle: "Plumbers in Berlin",
		},
		{
			name:      "json fence",
			body:      `{"text": "` + "```json\\n{\\\"title\\\": \\\"Fenced\\\"}\\n```" + `"}`,
			wantTitle: "Fenced",
		},
		{
			name:      "bare fence",
			body:      `{"output": "` + "```\\n{\\\"title\\\": \\\"Bare\\\"}\\n```" + `"}`,
			wantTitle: "Bare",
		},
		{
			name:      "first non-empty field wins",
			body:      `{"generated_text": "{\"title\": \"Last\"}", "content": "  ", "response": "{\"title\": \"Response\"}"}`,
			wantTitle: "Response",
		},
		{
			name:      "non-string fields are ignored",
			body:      `{"content": {"title": "nested"}, "result": "{\"title\": \"Result\"}"}`,
			wantTitle: "Result",
		},
		{
			name:    "no content field",
			body:    `{"id": "abc", "usage": {"tokens": 10}}`,
			wantErr: domain.ErrNoContentField,
		},
		{
			name:    "envelope is not json",
			body:    `<html>bad gateway</html>`,
			wantErr: domain.ErrResponseParseFailed,
		},
		{
			name:    "document is not json",
			body:    `{"completion": "Here is your page: Plumbers in Berlin"}`,
			wantErr: domain.ErrContentParseFailed,
		},
		{
			name:       "document without title",
			body:       `{"content": "{\"intro\": \"hello\"}"}`,
			wantErr:    domain.ErrContentParseFailed,
			wantDetail: "document has no title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := provider.Normalize([]byte(tt.body), now)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr.Error())
				if tt.wantDetail != "" {
					assert.ErrorIs(t, err, tt.wantErr)
					assert.ErrorContains(t, err, tt.wantDetail)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, now, got.GeneratedAt)
		})
	}
}

func TestNormalize_FullDocument(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	body := `{"content": "{\"title\":\"T\",\"metaDescription\":\"M\",\"headline\":\"H\",\"intro\":\"I\",` +
		`\"sections\":[{\"heading\":\"S1\",\"body\":\"B1\"}],\"faq\":[{\"question\":\"Q\",\"answer\":\"A\"}],` +
		`\"callToAction\":\"Call us\",\"generatedAt\":\"2001-01-01T00:00:00Z\"}"}`

	got, err := provider.Normalize([]byte(body), now)
	require.NoError(t, err)

	assert.Equal(t, domain.GeneratedContent{
		Title:           "T",
		MetaDescription: "M",
		Headline:        "H",
		Intro:           "I",
		Sections:        []domain.Section{{Heading: "S1", Body: "B1"}},
		FAQ:             []domain.FAQ{{Question: "Q", Answer: "A"}},
		CallToAction:    "Call us",
		GeneratedAt:     now,
	}, got)
}
