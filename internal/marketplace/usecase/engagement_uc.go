package usecase

import (
	"context"

	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
)

// EngagementUsecase tracks outbound-contact clicks on listings. The counter
// is best-effort: the user has already decided to open the contact channel,
// so a failed write is logged and never surfaced.
type EngagementUsecase struct {
	listings domain.ListingRepository
	logger   logger.Logger
}

func NewEngagementUsecase(listings domain.ListingRepository, log logger.Logger) *EngagementUsecase {
	return &EngagementUsecase{listings: listings, logger: log}
}

// RecordContactClick bumps the listing's contact counter by one. Call it
// once per confirmed link-open, not per link construction.
func (uc *EngagementUsecase) RecordContactClick(ctx context.Context, listingID string) {
	if err := uc.listings.IncrementContactClicks(ctx, listingID); err != nil {
		uc.logger.Warn("EngagementUsecase.RecordContactClick: increment failed",
			"listing_id", listingID, "error", err.Error())
	}
}
