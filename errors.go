package flyan

import (
	"errors"
	"fmt"
)

// Validation sentinels. They are raised before any network call and are
// matched with errors.Is.
var (
	ErrInvalidAirportCode = errors.New("invalid airport code")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidTimeWindow  = errors.New("invalid departure time window")
	ErrInvalidPrice       = errors.New("invalid price ceiling")
	ErrInvalidCurrency    = errors.New("invalid currency code")
)

// RemoteServiceError reports a failed exchange with the fare-finder API,
// either after retry exhaustion or on a non-transient response. Attempts
// counts every request that was actually sent.
type RemoteServiceError struct {
	StatusCode int
	Attempts   int
	Cause      error
}

func (e *RemoteServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("remote service failed after %d attempt(s): %s", e.Attempts, e.Cause)
	}

	return fmt.Sprintf("remote service failed after %d attempt(s) with status %d: %s",
		e.Attempts, e.StatusCode, e.Cause)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Cause
}
