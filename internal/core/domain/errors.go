package domain

import "go.trai.ch/zerr"

var (
	// ErrConfiguration is returned when the pipeline cannot be configured.
	ErrConfiguration = zerr.New("configuration error")

	// ErrMissingCredentials is returned when the provider API key is not set.
	ErrMissingCredentials = zerr.New("provider credentials are missing")

	// ErrMissingEndpoint is returned when the provider endpoint is not set.
	ErrMissingEndpoint = zerr.New("provider endpoint is missing")

	// ErrInvalidConfig is returned when a configuration value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration value")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrCatalogReadFailed is returned when a catalog file cannot be read.
	ErrCatalogReadFailed = zerr.New("failed to read catalog file")

	// ErrCatalogParseFailed is returned when a catalog file cannot be parsed.
	ErrCatalogParseFailed = zerr.New("failed to parse catalog file")

	// ErrInvalidTask is returned when a task lacks its identifying fields.
	ErrInvalidTask = zerr.New("invalid task")

	// ErrIndustryNotFound is returned when a manual task names an unknown industry.
	ErrIndustryNotFound = zerr.New("industry not found in catalog")

	// ErrProviderRequestFailed is returned when the provider cannot be reached.
	ErrProviderRequestFailed = zerr.New("provider request failed")

	// ErrProviderStatus is returned when the provider answers with a non-success status.
	ErrProviderStatus = zerr.New("provider returned an error status")

	// ErrNoContentField is returned when the provider response carries no generated text.
	ErrNoContentField = zerr.New("no content field in provider response")

	// ErrResponseParseFailed is returned when the provider envelope is not valid JSON.
	ErrResponseParseFailed = zerr.New("failed to parse provider response")

	// ErrContentParseFailed is returned when the generated text is not a valid content document.
	ErrContentParseFailed = zerr.New("failed to parse generated content")

	// ErrRecordEncodeFailed is returned when a cache record cannot be serialized.
	ErrRecordEncodeFailed = zerr.New("failed to encode cache record")

	// ErrRecordMalformed is returned when a stored cache record cannot be decoded.
	ErrRecordMalformed = zerr.New("malformed cache record")

	// ErrStoreReadFailed is returned when the content store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read content store")

	// ErrStoreWriteFailed is returned when the content store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write content store")

	// ErrStoreConnectFailed is returned when a remote store cannot be reached.
	ErrStoreConnectFailed = zerr.New("failed to connect to content store")

	// ErrUnknownStoreDriver is returned when the configured store driver is not supported.
	ErrUnknownStoreDriver = zerr.New("unknown store driver")

	// ErrRunInProgress is returned when a run is requested while another is active.
	ErrRunInProgress = zerr.New("a refresh run is already in progress")

	// ErrRunNotFound is returned when a run id is unknown.
	ErrRunNotFound = zerr.New("run not found")

	// ErrUnauthorized is returned when a manual trigger presents the wrong secret.
	ErrUnauthorized = zerr.New("unauthorized")

	// ErrInvalidRequest is returned when a manual trigger names no valid task.
	ErrInvalidRequest = zerr.New("invalid request")

	// ErrInvalidOutputFormat is returned for an unknown --output value.
	ErrInvalidOutputFormat = zerr.New("invalid output format")

	// ErrRunFailed is returned by the CLI when a run finished with failed tasks.
	ErrRunFailed = zerr.New("refresh run finished with failures")
)
