package domain

import "errors"

var (
	// ErrInvalidWeekday is returned for a weekday index outside 0..6.
	ErrInvalidWeekday = errors.New("weekday index out of range")

	// ErrInvalidPoemResponse is returned when the oracle body is not {verses:[{text}]}.
	ErrInvalidPoemResponse = errors.New("invalid poem response")

	// ErrPoemUnavailable is returned when no poem could be selected for this run.
	ErrPoemUnavailable = errors.New("poem unavailable")

	// ErrFetchFailed is returned when an asset download does not answer 2xx.
	ErrFetchFailed = errors.New("failed to fetch asset")

	// ErrInvalidImage is returned when the background cannot be decoded.
	ErrInvalidImage = errors.New("invalid background image")

	// ErrInvalidFont is returned when the font bytes cannot be parsed.
	ErrInvalidFont = errors.New("invalid font")

	// ErrMissingCredentials is returned when bot token or chat id is empty.
	ErrMissingCredentials = errors.New("missing telegram credentials")

	// ErrRateLimited is returned when rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)
