package provider

import (
	"encoding/json"
	"strings"
	"time"

	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/zerr"
)

// contentFields lists the envelope fields that may carry the generated text,
// in order of preference.
var contentFields = []string{
	"content",
	"text",
	"response",
	"output",
	"result",
	"completion",
	"generated_text",
}

// Normalize extracts the generated document from a provider response body
// and stamps it with now.
func Normalize(body []byte, now time.Time) (domain.GeneratedContent, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.GeneratedContent{}, zerr.Wrap(err, domain.ErrResponseParseFailed.Error())
	}

	text, ok := firstContentField(envelope)
	if !ok {
		return domain.GeneratedContent{}, domain.ErrNoContentField
	}

	var content domain.GeneratedContent
	if err := json.Unmarshal([]byte(stripFence(text)), &content); err != nil {
		return domain.GeneratedContent{}, zerr.Wrap(err, domain.ErrContentParseFailed.Error())
	}
	if strings.TrimSpace(content.Title) == "" {
		return domain.GeneratedContent{}, zerr.Wrap(domain.ErrContentParseFailed, "document has no title")
	}

	content.GeneratedAt = now
	return content, nil
}

func firstContentField(envelope map[string]json.RawMessage) (string, bool) {
	for _, field := range contentFields {
		raw, ok := envelope[field]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// stripFence removes a surrounding markdown code fence, with or without a
// language tag.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
