package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/brumerie/marketplace-service/internal/mailer"
	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
)

// ListingUsecase drives the listing lifecycle and keeps it in step with the
// publication quota.
type ListingUsecase struct {
	listings domain.ListingRepository
	users    domain.UserRepository
	quota    *QuotaUsecase
	storage  domain.Storage
	events   domain.EventPublisher
	mailer   mailer.Mailer
	logger   logger.Logger
}

func NewListingUsecase(
	listings domain.ListingRepository,
	users domain.UserRepository,
	quota *QuotaUsecase,
	storage domain.Storage,
	events domain.EventPublisher,
	mail mailer.Mailer,
	log logger.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		listings: listings,
		users:    users,
		quota:    quota,
		storage:  storage,
		events:   events,
		mailer:   mail,
		logger:   log,
	}
}

func validateDraft(draft domain.ListingDraft, imageCount int) error {
	if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidListingData)
	}
	if draft.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidListingData)
	}
	if !domain.IsValidCategory(draft.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidListingData, draft.Category)
	}
	if !domain.IsValidNeighborhood(draft.Neighborhood) {
		return fmt.Errorf("%w: unknown neighborhood %q", domain.ErrInvalidListingData, draft.Neighborhood)
	}
	if imageCount < domain.MinListingImages || imageCount > domain.MaxListingImages {
		return fmt.Errorf("%w: between %d and %d images required, got %d",
			domain.ErrInvalidListingData, domain.MinListingImages, domain.MaxListingImages, imageCount)
	}
	return nil
}

// Publish validates the draft, re-checks the seller's quota, stores the
// images, persists the listing and records the publication on the quota
// ledger, in that order.
//
// If the listing write fails after some images were already stored, the
// stored blobs are orphaned and left behind; nothing references them and no
// reconciliation is attempted.
func (uc *ListingUsecase) Publish(ctx context.Context, sellerID string, draft domain.ListingDraft, images []domain.ImageUpload) (*domain.Listing, error) {
	uc.logger.Info("ListingUsecase.Publish: publishing listing",
		"seller_id", sellerID, "title", draft.Title, "images", len(images))

	if err := validateDraft(draft, len(images)); err != nil {
		return nil, err
	}

	// Eligibility is re-checked here regardless of what the client saw
	// earlier; a cached eligible flag is never trusted for the write.
	decision, err := uc.quota.CheckPublicationQuota(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !decision.Eligible {
		uc.logger.Warn("ListingUsecase.Publish: seller over publication quota",
			"seller_id", sellerID, "count", decision.Count, "limit", decision.Limit)
		return nil, &domain.QuotaExceededError{Count: decision.Count, Limit: decision.Limit}
	}

	seller, err := uc.users.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		key := fmt.Sprintf("products/%s/%s%s", sellerID, uuid.New().String(), filepath.Ext(img.FileName))
		url, err := uc.storage.Upload(ctx, key, img.Data)
		if err != nil {
			uc.logger.Error("ListingUsecase.Publish: image upload failed",
				"seller_id", sellerID, "key", key, "error", err.Error())
			return nil, fmt.Errorf("failed to store listing image: %w", err)
		}
		urls = append(urls, url)
	}

	listing := &domain.Listing{
		Title:        draft.Title,
		Description:  draft.Description,
		Price:        draft.Price,
		Category:     draft.Category,
		Neighborhood: draft.Neighborhood,
		Images:       urls,
		Seller:       domain.SnapshotSeller(seller),
		Status:       domain.StatusActive,
	}
	if err := uc.listings.Create(ctx, listing); err != nil {
		uc.logger.Error("ListingUsecase.Publish: listing write failed, stored blobs are orphaned",
			"seller_id", sellerID, "images", len(urls), "error", err.Error())
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	// The listing exists from here on; a failed increment only makes the
	// counter drift low and is never a reason to undo the publish.
	if err := uc.quota.RecordPublication(ctx, sellerID); err != nil {
		uc.logger.Warn("ListingUsecase.Publish: failed to record publication on quota ledger",
			"seller_id", sellerID, "listing_id", listing.ID, "error", err.Error())
	}

	uc.publishEvent(ctx, domain.SubjectListingPublished, listing)

	if uc.mailer != nil && seller.Email != "" {
		if err := uc.mailer.SendListingPublishedEmail(seller.Email, listing.Title); err != nil {
			uc.logger.Warn("ListingUsecase.Publish: notification mail failed",
				"seller_id", sellerID, "listing_id", listing.ID, "error", err.Error())
		}
	}

	return listing, nil
}

func (uc *ListingUsecase) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		uc.logger.Warn("ListingUsecase.GetByID: failed to find listing", "listing_id", id, "error", err.Error())
		return nil, err
	}
	return listing, nil
}

// Search returns listings matching the filter, newest first. A filter with
// no status browses active listings only. Free text matches the title or the
// description, case-insensitively, and is applied after the store query.
func (uc *ListingUsecase) Search(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	if filter.Status == "" {
		filter.Status = domain.StatusActive
	}

	listings, err := uc.listings.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ListingUsecase.Search: query failed", "error", err.Error())
		return nil, err
	}

	if filter.Query != "" {
		needle := strings.ToLower(filter.Query)
		matched := make([]*domain.Listing, 0, len(listings))
		for _, l := range listings {
			if strings.Contains(strings.ToLower(l.Title), needle) ||
				strings.Contains(strings.ToLower(l.Description), needle) {
				matched = append(matched, l)
			}
		}
		listings = matched
	}

	if listings == nil {
		listings = []*domain.Listing{}
	}
	return listings, nil
}

// MarkSold flips the listing to sold. Calling it on an already sold listing
// is a no-op.
func (uc *ListingUsecase) MarkSold(ctx context.Context, id string) error {
	uc.logger.Info("ListingUsecase.MarkSold: marking listing sold", "listing_id", id)

	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.listings.UpdateStatus(ctx, id, domain.StatusSold); err != nil {
		uc.logger.Error("ListingUsecase.MarkSold: status update failed", "listing_id", id, "error", err.Error())
		return err
	}

	listing.Status = domain.StatusSold
	uc.publishEvent(ctx, domain.SubjectListingSold, listing)
	return nil
}

// SoftDelete hides the listing from all queries and releases one unit of the
// owner's quota. The decrement always targets the seller recorded on the
// listing, not the caller, so a removal on someone else's behalf still frees
// the right counter. The status write comes first; if the decrement then
// fails the listing stays deleted and the counter drifts high, which is
// logged and accepted rather than rolled back.
func (uc *ListingUsecase) SoftDelete(ctx context.Context, id string) error {
	uc.logger.Info("ListingUsecase.SoftDelete: deleting listing", "listing_id", id)

	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.listings.UpdateStatus(ctx, id, domain.StatusDeleted); err != nil {
		uc.logger.Error("ListingUsecase.SoftDelete: status update failed", "listing_id", id, "error", err.Error())
		return err
	}

	if err := uc.quota.RecordUnpublication(ctx, listing.Seller.SellerID); err != nil {
		uc.logger.Warn("ListingUsecase.SoftDelete: listing deleted but quota decrement failed",
			"listing_id", id, "seller_id", listing.Seller.SellerID, "error", err.Error())
	}

	listing.Status = domain.StatusDeleted
	uc.publishEvent(ctx, domain.SubjectListingDeleted, listing)
	return nil
}

func (uc *ListingUsecase) publishEvent(ctx context.Context, subject string, listing *domain.Listing) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishListingEvent(ctx, domain.NewListingEvent(subject, listing)); err != nil {
		uc.logger.Warn("ListingUsecase: failed to publish event",
			"subject", subject, "listing_id", listing.ID, "error", err.Error())
	}
}
