package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
)

// QuotaUsecase owns the per-seller monthly publication counter: eligibility
// checks with lazy month rollover, plus the increment/decrement hooks the
// listing lifecycle calls after its own writes.
type QuotaUsecase struct {
	users  domain.UserRepository
	logger logger.Logger
	now    func() time.Time
}

func NewQuotaUsecase(users domain.UserRepository, log logger.Logger) *QuotaUsecase {
	return &QuotaUsecase{
		users:  users,
		logger: log,
		now:    time.Now,
	}
}

// CheckPublicationQuota reports whether the seller may publish right now.
// Crossing a calendar-month boundary since the last reset zeroes the stored
// counter; the reset is performed here, on read, there is no background job.
// Within one period repeated calls are idempotent and write nothing.
func (uc *QuotaUsecase) CheckPublicationQuota(ctx context.Context, sellerID string) (domain.QuotaDecision, error) {
	user, err := uc.users.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.logger.Warn("QuotaUsecase.CheckPublicationQuota: seller not found", "seller_id", sellerID)
			return domain.QuotaDecision{Eligible: false, Reason: "user not found"}, domain.ErrUserNotFound
		}
		uc.logger.Error("QuotaUsecase.CheckPublicationQuota: failed to load seller", "seller_id", sellerID, "error", err.Error())
		return domain.QuotaDecision{}, err
	}

	now := uc.now()
	decision := domain.EvaluateQuota(user, now)

	if decision.Rollover {
		// Two sessions racing on the same boundary both write count=0,
		// which is harmless, so a failure here is logged, not propagated.
		if err := uc.users.ResetPublicationQuota(ctx, sellerID, now); err != nil {
			uc.logger.Warn("QuotaUsecase.CheckPublicationQuota: failed to persist quota rollover",
				"seller_id", sellerID, "error", err.Error())
		} else {
			uc.logger.Info("QuotaUsecase.CheckPublicationQuota: publication quota rolled over",
				"seller_id", sellerID, "limit", decision.Limit)
		}
	}

	return decision, nil
}

// RecordPublication bumps the seller's counter by one. Callers must have
// obtained an eligible decision first; the increment itself does not
// re-validate the limit.
func (uc *QuotaUsecase) RecordPublication(ctx context.Context, sellerID string) error {
	return uc.users.AdjustPublicationCount(ctx, sellerID, 1)
}

// RecordUnpublication lowers the seller's counter by one. The storage layer
// clamps at zero.
func (uc *QuotaUsecase) RecordUnpublication(ctx context.Context, sellerID string) error {
	return uc.users.AdjustPublicationCount(ctx, sellerID, -1)
}
