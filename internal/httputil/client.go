package httputil

import (
	"net/http"
	"time"
)

// DefaultTimeout caps a single request attempt. Callers that retry get their
// overall budget from their backoff policy, not from the client.
const DefaultTimeout = 10 * time.Second

// NewClient returns an HTTP client with standard timeout configuration.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}
