package metadata

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("tmdb api key not configured")

// ProviderError reports a failed call to the metadata provider: either a
// non-2xx response or a transport failure (StatusCode 0).
type ProviderError struct {
	Endpoint   string
	StatusCode int
	Status     string
	// Message is the provider's status_message, when it sent one.
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("tmdb %s failed: %s (%s)", e.Endpoint, e.Status, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("tmdb %s failed: %s", e.Endpoint, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("tmdb %s failed: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("tmdb %s failed", e.Endpoint)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Temporary reports whether the same call may succeed later: transport
// failures, rate limiting and server errors.
func (e *ProviderError) Temporary() bool {
	if errors.Is(e.Err, ErrNotConfigured) {
		return false
	}
	return e.StatusCode == 0 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsNotFound reports whether err is a provider 404.
func IsNotFound(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.StatusCode == http.StatusNotFound
}
