package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brumerie/marketplace-service/internal/marketplace/domain"
	"github.com/brumerie/marketplace-service/internal/platform/logger"
)

type UserRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

func NewUserRepository(db *mongo.Database, log logger.Logger) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
		logger:     log,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("UserRepository.FindByID: query failed", "user_id", id, "error", err.Error())
		return nil, err
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) ResetPublicationQuota(ctx context.Context, id string, now time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.collection.UpdateByID(ctx, objID, bson.M{"$set": bson.M{
		"publication_count":      0,
		"last_publication_reset": now.UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AdjustPublicationCount applies the delta inside Mongo. Positive deltas use
// a plain $inc; negative ones go through an update pipeline so the stored
// counter never drops below zero, even when deletes race.
func (r *UserRepository) AdjustPublicationCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	var update interface{}
	if delta >= 0 {
		update = bson.M{"$inc": bson.M{"publication_count": delta}}
	} else {
		update = mongo.Pipeline{
			bson.D{{Key: "$set", Value: bson.D{{Key: "publication_count", Value: bson.D{
				{Key: "$max", Value: bson.A{
					0,
					bson.D{{Key: "$add", Value: bson.A{"$publication_count", delta}}},
				}},
			}}}}},
		}
	}

	res, err := r.collection.UpdateByID(ctx, objID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) IncrementSalesCount(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.collection.UpdateByID(ctx, objID, bson.M{"$inc": bson.M{"sales_count": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.collection.UpdateByID(ctx, objID, bson.M{"$set": bson.M{"is_verified": verified}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Neighborhood != nil {
		set["neighborhood"] = *update.Neighborhood
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.collection.UpdateByID(ctx, objID, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetPhotoURL(ctx context.Context, id, url string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.collection.UpdateByID(ctx, objID, bson.M{"$set": bson.M{"photo_url": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
