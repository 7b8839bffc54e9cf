package domain

import (
	"encoding/json"
	"time"

	"go.trai.ch/zerr"
)

// Section is one titled block of page body copy.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// FAQ is a single question and answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GeneratedContent is the normalized page content returned by the provider.
type GeneratedContent struct {
	Title           string    `json:"title"`
	MetaDescription string    `json:"metaDescription,omitzero"`
	Headline        string    `json:"headline,omitzero"`
	Intro           string    `json:"intro,omitzero"`
	Sections        []Section `json:"sections,omitzero"`
	FAQ             []FAQ     `json:"faq,omitzero"`
	CallToAction    string    `json:"callToAction,omitzero"`
	GeneratedAt     time.Time `json:"generatedAt,omitzero"`
}

// CacheRecord is the value stored under a task's cache key.
type CacheRecord struct {
	Content     GeneratedContent `json:"content"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// NewCacheRecord wraps content with the time it was generated.
func NewCacheRecord(content GeneratedContent, generatedAt time.Time) CacheRecord {
	return CacheRecord{Content: content, GeneratedAt: generatedAt}
}

// Encode serializes the record for the store.
func (r CacheRecord) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", zerr.Wrap(err, ErrRecordEncodeFailed.Error())
	}
	return string(data), nil
}

// DecodeCacheRecord parses a stored record. A record without a generation
// timestamp is reported as malformed.
func DecodeCacheRecord(value string) (CacheRecord, error) {
	var r CacheRecord
	if err := json.Unmarshal([]byte(value), &r); err != nil {
		return CacheRecord{}, zerr.Wrap(err, ErrRecordMalformed.Error())
	}
	if r.GeneratedAt.IsZero() {
		return CacheRecord{}, zerr.Wrap(ErrRecordMalformed, "missing generatedAt")
	}
	return r, nil
}

// Age returns how old the record is at the given instant.
func (r CacheRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.GeneratedAt)
}
