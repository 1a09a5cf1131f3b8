package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedIdentifier = errors.New("malformed riot id, expected name#tag")
	ErrAccountNotFound     = errors.New("account not found")
	ErrSummonerNotFound    = errors.New("summoner not found")
	ErrUpstreamTimeout     = errors.New("upstream timed out")
	ErrNotConfigured       = errors.New("upstream api key not configured")
)

// UpstreamError is an unexpected failure of a required upstream call.
// Status is 0 when no HTTP response was received.
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: upstream request failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: upstream returned %d", e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
