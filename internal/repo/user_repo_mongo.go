package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"item-feedback-api/internal/domain"
)

var _ domain.UserRepository = (*MongoUserRepo)(nil)

type MongoUserRepo struct{ c *mongo.Collection }

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{c: db.Collection(collUsers)}
}

func (r *MongoUserRepo) Create(ctx context.Context, u *domain.User) error {
	return insertOne(ctx, r.c, u, "user")
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.c, bson.M{"_id": id}, "user")
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.c, bson.M{"email": email}, "user")
}

func (r *MongoUserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	return findPage[domain.User](ctx, r.c, bson.M{}, offset, limit, "users")
}

func (r *MongoUserRepo) Update(ctx context.Context, u *domain.User) error {
	return setByID(ctx, r.c, u.ID, bson.M{
		"email":    u.Email,
		"name":     u.Name,
		"password": u.PasswordHash,
	}, "user")
}

func (r *MongoUserRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.c, id, "user")
}
