package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
)

func newQuotaUCAt(users *MockUserRepository, now time.Time) *QuotaUsecase {
	uc := NewQuotaUsecase(users, logger.NewNop())
	uc.now = func() time.Time { return now }
	return uc
}

func TestCheckPublicationQuota_WithinPeriodNoWrite(t *testing.T) {
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "s1").Return(&domain.User{
		ID:                   "s1",
		PublicationCount:     5,
		PublicationLimit:     50,
		LastPublicationReset: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	uc := newQuotaUCAt(users, now)

	first, err := uc.CheckPublicationQuota(context.Background(), "s1")
	assert.NoError(t, err)
	second, err := uc.CheckPublicationQuota(context.Background(), "s1")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.Eligible)
	assert.Equal(t, 5, first.Count)
	users.AssertNotCalled(t, "ResetPublicationQuota", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckPublicationQuota_RolloverPersistsReset(t *testing.T) {
	now := time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "s1").Return(&domain.User{
		ID:                   "s1",
		PublicationCount:     50,
		PublicationLimit:     50,
		LastPublicationReset: time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
	}, nil)
	users.On("ResetPublicationQuota", mock.Anything, "s1", now).Return(nil)

	uc := newQuotaUCAt(users, now)
	d, err := uc.CheckPublicationQuota(context.Background(), "s1")

	assert.NoError(t, err)
	assert.True(t, d.Eligible)
	assert.Equal(t, 0, d.Count)
	assert.Empty(t, d.Reason)
	users.AssertCalled(t, "ResetPublicationQuota", mock.Anything, "s1", now)
}

func TestCheckPublicationQuota_RolloverWriteFailureIsNonFatal(t *testing.T) {
	now := time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "s1").Return(&domain.User{
		ID:                   "s1",
		PublicationCount:     3,
		PublicationLimit:     50,
		LastPublicationReset: time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
	}, nil)
	users.On("ResetPublicationQuota", mock.Anything, "s1", now).Return(assert.AnError)

	uc := newQuotaUCAt(users, now)
	d, err := uc.CheckPublicationQuota(context.Background(), "s1")

	assert.NoError(t, err)
	assert.True(t, d.Eligible)
}

func TestCheckPublicationQuota_LimitReached(t *testing.T) {
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "s1").Return(&domain.User{
		ID:                   "s1",
		PublicationCount:     50,
		PublicationLimit:     50,
		LastPublicationReset: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	uc := newQuotaUCAt(users, now)
	d, err := uc.CheckPublicationQuota(context.Background(), "s1")

	assert.NoError(t, err)
	assert.False(t, d.Eligible)
	assert.Contains(t, d.Reason, "limit reached")
}

func TestCheckPublicationQuota_UserNotFound(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrUserNotFound)

	uc := newQuotaUCAt(users, time.Now())
	d, err := uc.CheckPublicationQuota(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.False(t, d.Eligible)
	assert.Equal(t, "user not found", d.Reason)
}

func TestRecordPublication_UsesAtomicDelta(t *testing.T) {
	users := new(MockUserRepository)
	users.On("AdjustPublicationCount", mock.Anything, "s1", 1).Return(nil)

	uc := newQuotaUCAt(users, time.Now())
	assert.NoError(t, uc.RecordPublication(context.Background(), "s1"))

	users.AssertCalled(t, "AdjustPublicationCount", mock.Anything, "s1", 1)
}

func TestRecordPublication_NTimesMeansNDeltas(t *testing.T) {
	users := new(MockUserRepository)
	users.On("AdjustPublicationCount", mock.Anything, "s1", 1).Return(nil)

	uc := newQuotaUCAt(users, time.Now())
	for i := 0; i < 5; i++ {
		assert.NoError(t, uc.RecordPublication(context.Background(), "s1"))
	}

	users.AssertNumberOfCalls(t, "AdjustPublicationCount", 5)
}

func TestRecordUnpublication_UsesNegativeDelta(t *testing.T) {
	users := new(MockUserRepository)
	users.On("AdjustPublicationCount", mock.Anything, "s1", -1).Return(nil)

	uc := newQuotaUCAt(users, time.Now())
	assert.NoError(t, uc.RecordUnpublication(context.Background(), "s1"))

	users.AssertCalled(t, "AdjustPublicationCount", mock.Anything, "s1", -1)
}
