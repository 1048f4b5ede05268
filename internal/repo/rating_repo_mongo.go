package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"item-feedback-api/internal/domain"
)

var _ domain.RatingRepository = (*MongoRatingRepo)(nil)

type MongoRatingRepo struct{ c *mongo.Collection }

func NewMongoRatingRepo(db *mongo.Database) *MongoRatingRepo {
	return &MongoRatingRepo{c: db.Collection(collRatings)}
}

func (r *MongoRatingRepo) Create(ctx context.Context, rt *domain.Rating) error {
	return insertOne(ctx, r.c, rt, "rating")
}

func (r *MongoRatingRepo) FindByID(ctx context.Context, id string) (*domain.Rating, error) {
	return findOne[domain.Rating](ctx, r.c, bson.M{"_id": id}, "rating")
}

func (r *MongoRatingRepo) FindByUserItem(ctx context.Context, userID, itemID string) (*domain.Rating, error) {
	return findOne[domain.Rating](ctx, r.c, bson.M{"user_id": userID, "item_id": itemID}, "rating")
}

func (r *MongoRatingRepo) List(ctx context.Context, f domain.RatingFilter, offset, limit int) ([]domain.Rating, int64, error) {
	return findPage[domain.Rating](ctx, r.c, ownerItemFilter(f.UserID, f.ItemID), offset, limit, "ratings")
}

func (r *MongoRatingRepo) Update(ctx context.Context, rt *domain.Rating) error {
	return setByID(ctx, r.c, rt.ID, bson.M{
		"rating":      rt.Score,
		"description": rt.Description,
	}, "rating")
}

func (r *MongoRatingRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.c, id, "rating")
}
