package domain

import (
	"context"
	"time"
)

type ListingRepository interface {
	// Create persists a new listing, assigning its ID and CreatedAt.
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	// FindByFilter applies the equality dimensions of the filter at the
	// store and returns listings ordered by CreatedAt descending. Free-text
	// matching is not the repository's concern.
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, error)
	UpdateStatus(ctx context.Context, id string, status ListingStatus) error
	// IncrementContactClicks applies an atomic +1 delta at the store.
	IncrementContactClicks(ctx context.Context, id string) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	// ResetPublicationQuota zeroes the counter and stamps the reset time.
	ResetPublicationQuota(ctx context.Context, id string, now time.Time) error
	// AdjustPublicationCount applies an atomic delta at the store. Negative
	// deltas never take the stored counter below zero.
	AdjustPublicationCount(ctx context.Context, id string, delta int) error
	IncrementSalesCount(ctx context.Context, id string) error
	SetVerified(ctx context.Context, id string, verified bool) error
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error
	SetPhotoURL(ctx context.Context, id, url string) error
}

// Storage is the blob-store boundary for listing images and avatars.
type Storage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// EventPublisher is the messaging boundary for listing lifecycle events.
type EventPublisher interface {
	PublishListingEvent(ctx context.Context, event ListingEvent) error
}
