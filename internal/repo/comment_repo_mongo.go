package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"item-feedback-api/internal/domain"
)

var _ domain.CommentRepository = (*MongoCommentRepo)(nil)

type MongoCommentRepo struct{ c *mongo.Collection }

func NewMongoCommentRepo(db *mongo.Database) *MongoCommentRepo {
	return &MongoCommentRepo{c: db.Collection(collComments)}
}

func (r *MongoCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	return insertOne(ctx, r.c, c, "comment")
}

func (r *MongoCommentRepo) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	return findOne[domain.Comment](ctx, r.c, bson.M{"_id": id}, "comment")
}

func (r *MongoCommentRepo) List(ctx context.Context, f domain.CommentFilter, offset, limit int) ([]domain.Comment, int64, error) {
	return findPage[domain.Comment](ctx, r.c, ownerItemFilter(f.UserID, f.ItemID), offset, limit, "comments")
}

func (r *MongoCommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	return setByID(ctx, r.c, c.ID, bson.M{"content": c.Content}, "comment")
}

func (r *MongoCommentRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.c, id, "comment")
}
