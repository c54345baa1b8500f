package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile_RejectsInvalidPhone(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewUserUsecase(users, new(MockStorage), logger.NewNop())

	err := uc.UpdateProfile(context.Background(), "u1", domain.ProfileUpdate{Phone: strPtr("12345")})

	assert.ErrorIs(t, err, domain.ErrInvalidUserData)
	users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_RejectsUnknownNeighborhood(t *testing.T) {
	users := new(MockUserRepository)
	uc := NewUserUsecase(users, new(MockStorage), logger.NewNop())

	err := uc.UpdateProfile(context.Background(), "u1", domain.ProfileUpdate{Neighborhood: strPtr("Montmartre")})

	assert.ErrorIs(t, err, domain.ErrInvalidUserData)
}

func TestUpdateProfile_ValidFields(t *testing.T) {
	users := new(MockUserRepository)
	users.On("UpdateProfile", mock.Anything, "u1", mock.Anything).Return(nil)
	uc := NewUserUsecase(users, new(MockStorage), logger.NewNop())

	err := uc.UpdateProfile(context.Background(), "u1", domain.ProfileUpdate{
		Name:         strPtr("Awa"),
		Phone:        strPtr("+2250102030405"),
		Neighborhood: strPtr("Cocody"),
	})

	assert.NoError(t, err)
}

func TestUploadProfilePhoto_StoresAndSavesURL(t *testing.T) {
	users := new(MockUserRepository)
	storage := new(MockStorage)
	storage.On("Upload", mock.Anything, "avatars/u1.jpg", mock.Anything).Return("http://minio/avatars/u1.jpg", nil)
	users.On("SetPhotoURL", mock.Anything, "u1", "http://minio/avatars/u1.jpg").Return(nil)

	uc := NewUserUsecase(users, storage, logger.NewNop())
	url, err := uc.UploadProfilePhoto(context.Background(), "u1", domain.ImageUpload{FileName: "me.jpg", Data: []byte("x")})

	assert.NoError(t, err)
	assert.Equal(t, "http://minio/avatars/u1.jpg", url)
}

func TestIncrementSalesCount_Delegates(t *testing.T) {
	users := new(MockUserRepository)
	users.On("IncrementSalesCount", mock.Anything, "u1").Return(nil)

	uc := NewUserUsecase(users, new(MockStorage), logger.NewNop())
	assert.NoError(t, uc.IncrementSalesCount(context.Background(), "u1"))
}

func TestSetVerifiedBadge_Delegates(t *testing.T) {
	users := new(MockUserRepository)
	users.On("SetVerified", mock.Anything, "u1", true).Return(nil)

	uc := NewUserUsecase(users, new(MockStorage), logger.NewNop())
	assert.NoError(t, uc.SetVerifiedBadge(context.Background(), "u1", true))
}
