package importer

import "errors"

var (
	// ErrInvalidConfig is returned when the webhook configuration is unusable
	ErrInvalidConfig = errors.New("invalid import configuration")

	// ErrInvalidURL is returned when the recipe URL is not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid recipe URL")

	// ErrNetworkError is returned when the webhook cannot be reached
	ErrNetworkError = errors.New("network error")

	// ErrUpstreamStatus is returned for non-2xx webhook responses
	ErrUpstreamStatus = errors.New("import webhook returned an error status")

	// ErrInvalidResponse is returned when the webhook body is not a JSON object
	ErrInvalidResponse = errors.New("import webhook returned invalid JSON")

	// ErrMissingTitle is returned when the imported document has no title
	ErrMissingTitle = errors.New("imported recipe has no title")
)
