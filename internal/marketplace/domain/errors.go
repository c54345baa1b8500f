package domain

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidListingData = errors.New("invalid listing data")
	ErrInvalidUserData    = errors.New("invalid user data")
)

// QuotaExceededError is returned by the publish path when the seller's
// monthly quota has been reached. The quota check endpoint reports the same
// condition as a structured ineligible result, not as an error.
type QuotaExceededError struct {
	Count int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("publication quota exceeded: %d/%d this month", e.Count, e.Limit)
}
