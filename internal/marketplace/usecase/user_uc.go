package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
	"github.com/brumerie/marketplace-service/internal/whatsapp"
)

// UserUsecase covers seller profiles and the two admin toggles (verified
// badge, sales count). It never touches the publication quota.
type UserUsecase struct {
	users   domain.UserRepository
	storage domain.Storage
	logger  logger.Logger
}

func NewUserUsecase(users domain.UserRepository, storage domain.Storage, log logger.Logger) *UserUsecase {
	return &UserUsecase{users: users, storage: storage, logger: log}
}

func (uc *UserUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		uc.logger.Warn("UserUsecase.GetUser: failed to find user", "user_id", id, "error", err.Error())
		return nil, err
	}
	return user, nil
}

func (uc *UserUsecase) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) error {
	if update.Phone != nil && !whatsapp.ValidatePhone(*update.Phone) {
		return fmt.Errorf("%w: invalid phone number %q", domain.ErrInvalidUserData, *update.Phone)
	}
	if update.Neighborhood != nil && !domain.IsValidNeighborhood(*update.Neighborhood) {
		return fmt.Errorf("%w: unknown neighborhood %q", domain.ErrInvalidUserData, *update.Neighborhood)
	}

	if err := uc.users.UpdateProfile(ctx, id, update); err != nil {
		uc.logger.Error("UserUsecase.UpdateProfile: update failed", "user_id", id, "error", err.Error())
		return err
	}
	return nil
}

// UploadProfilePhoto stores the avatar and points the profile at it. The
// object key is stable per user, so re-uploading replaces the old photo.
func (uc *UserUsecase) UploadProfilePhoto(ctx context.Context, id string, photo domain.ImageUpload) (string, error) {
	key := fmt.Sprintf("avatars/%s%s", id, filepath.Ext(photo.FileName))
	url, err := uc.storage.Upload(ctx, key, photo.Data)
	if err != nil {
		uc.logger.Error("UserUsecase.UploadProfilePhoto: upload failed", "user_id", id, "error", err.Error())
		return "", fmt.Errorf("failed to store profile photo: %w", err)
	}

	if err := uc.users.SetPhotoURL(ctx, id, url); err != nil {
		uc.logger.Error("UserUsecase.UploadProfilePhoto: failed to save photo URL", "user_id", id, "error", err.Error())
		return "", err
	}
	return url, nil
}

// IncrementSalesCount is an explicit admin action; nothing in the listing
// lifecycle bumps this counter automatically.
func (uc *UserUsecase) IncrementSalesCount(ctx context.Context, id string) error {
	uc.logger.Info("UserUsecase.IncrementSalesCount: incrementing sales count", "user_id", id)
	return uc.users.IncrementSalesCount(ctx, id)
}

func (uc *UserUsecase) SetVerifiedBadge(ctx context.Context, id string, verified bool) error {
	uc.logger.Info("UserUsecase.SetVerifiedBadge: toggling verified badge", "user_id", id, "verified", verified)
	return uc.users.SetVerified(ctx, id, verified)
}
