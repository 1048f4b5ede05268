package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"item-feedback-api/internal/core/database"
	"item-feedback-api/internal/domain"
)

// Store 进程启动时构造一次，按引用注入各 service，之后不再修改
type Store struct {
	Users    domain.UserRepository
	Ratings  domain.RatingRepository
	Comments domain.CommentRepository

	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:    NewUserRepo(db),
		Ratings:  NewRatingRepo(db),
		Comments: NewCommentRepo(db),
		migrate: func(ctx context.Context) error {
			tx := db.WithContext(ctx)
			if opts := tableOptions(db.Dialector.Name()); opts != "" {
				tx = tx.Set("gorm:table_options", opts)
			}
			return tx.AutoMigrate(&domain.User{}, &domain.Rating{}, &domain.Comment{})
		},
		close: func(context.Context) error { return database.CloseGorm(db) },
	}
}

func NewMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Users:    NewMongoUserRepo(db),
		Ratings:  NewMongoRatingRepo(db),
		Comments: NewMongoCommentRepo(db),
		migrate:  func(ctx context.Context) error { return EnsureMongoIndexes(ctx, db) },
		close:    client.Disconnect,
	}
}

// Migrate 建表 / 建唯一索引（users.email、ratings(user_id,item_id)）
func (s *Store) Migrate(ctx context.Context) error { return s.migrate(ctx) }

func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }

// tableOptions MySQL 默认 *_ci 排序规则会让 email 唯一索引和查询忽略大小写，
// 建表时改用二进制排序；已存在的表需要手动 ALTER
func tableOptions(dialect string) string {
	if dialect == "mysql" {
		return "DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"
	}
	return ""
}
