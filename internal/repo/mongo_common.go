package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"item-feedback-api/internal/domain"
)

const (
	collUsers    = "users"
	collRatings  = "ratings"
	collComments = "comments"
)

// ownerItemFilter 空字段不参与过滤
func ownerItemFilter(userID, itemID string) bson.M {
	f := bson.M{}
	if userID != "" {
		f["user_id"] = userID
	}
	if itemID != "" {
		f["item_id"] = itemID
	}
	return f
}

func pageOptions(offset, limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
}

func findOne[T any](ctx context.Context, c *mongo.Collection, filter bson.M, what string) (*T, error) {
	var out T
	err := c.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", what, err)
	}
	return &out, nil
}

func findPage[T any](ctx context.Context, c *mongo.Collection, filter bson.M, offset, limit int, what string) ([]T, int64, error) {
	total, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", what, err)
	}
	cur, err := c.Find(ctx, filter, pageOptions(offset, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", what, err)
	}
	items := make([]T, 0, limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", what, err)
	}
	return items, total, nil
}

func insertOne(ctx context.Context, c *mongo.Collection, doc any, what string) error {
	if _, err := c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create %s: %w", what, err)
	}
	return nil
}

func setByID(ctx context.Context, c *mongo.Collection, id string, set bson.M, what string) error {
	res, err := c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", what, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, c *mongo.Collection, id, what string) error {
	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureMongoIndexes 与 gorm 模型上的索引保持一致
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		collUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_email")},
		},
		collRatings: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "item_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_user_item_rating"),
			},
			{Keys: bson.D{{Key: "item_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		collComments: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "item_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}
