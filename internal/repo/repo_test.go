package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm/schema"

	"item-feedback-api/internal/core/database"
	"item-feedback-api/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	s := NewGormStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func newUser(email string) *domain.User {
	return &domain.User{ID: uuid.NewString(), Email: email, PasswordHash: "hash", CreatedAt: time.Now().UTC()}
}

func TestUserRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := newUser("a@b.c")
	require.NoError(t, s.Users.Create(ctx, u))

	got, err := s.Users.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = s.Users.FindByEmail(ctx, "A@B.C")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got.Name = "Alice"
	require.NoError(t, s.Users.Update(ctx, got))
	again, err := s.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)

	require.NoError(t, s.Users.Delete(ctx, u.ID))
	assert.ErrorIs(t, s.Users.Delete(ctx, u.ID), domain.ErrNotFound)
	_, err = s.Users.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Users.Create(ctx, newUser("dup@x.io")))
	assert.ErrorIs(t, s.Users.Create(ctx, newUser("dup@x.io")), domain.ErrDuplicate)

	other := newUser("other@x.io")
	require.NoError(t, s.Users.Create(ctx, other))
	other.Email = "dup@x.io"
	assert.ErrorIs(t, s.Users.Update(ctx, other), domain.ErrDuplicate)
}

func TestUserRepo_List(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Users.Create(ctx, newUser(fmt.Sprintf("u%d@x.io", i))))
	}
	users, total, err := s.Users.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 1)
}

func TestRatingRepo_UniquePair(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uid := uuid.NewString()

	r1 := &domain.Rating{ID: uuid.NewString(), UserID: uid, ItemID: "item-1", Score: 4, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Ratings.Create(ctx, r1))

	r2 := &domain.Rating{ID: uuid.NewString(), UserID: uid, ItemID: "item-1", Score: 2, CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, s.Ratings.Create(ctx, r2), domain.ErrDuplicate)

	r2.ItemID = "item-2"
	require.NoError(t, s.Ratings.Create(ctx, r2))

	got, err := s.Ratings.FindByUserItem(ctx, uid, "item-1")
	require.NoError(t, err)
	assert.Equal(t, r1.ID, got.ID)

	_, err = s.Ratings.FindByUserItem(ctx, uid, "item-3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRatingRepo_ListAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uid := uuid.NewString()
	for i := 0; i < 15; i++ {
		require.NoError(t, s.Ratings.Create(ctx, &domain.Rating{
			ID: uuid.NewString(), UserID: uid, ItemID: fmt.Sprintf("item-%02d", i), Score: 3, CreatedAt: time.Now().UTC(),
		}))
	}
	require.NoError(t, s.Ratings.Create(ctx, &domain.Rating{
		ID: uuid.NewString(), UserID: uuid.NewString(), ItemID: "item-00", Score: 1, CreatedAt: time.Now().UTC(),
	}))

	page, total, err := s.Ratings.List(ctx, domain.RatingFilter{UserID: uid}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page, 5)

	byItem, total, err := s.Ratings.List(ctx, domain.RatingFilter{ItemID: "item-00"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byItem, 2)

	target := byItem[0]
	desc := "updated"
	target.Score = 5
	target.Description = &desc
	require.NoError(t, s.Ratings.Update(ctx, &target))
	got, err := s.Ratings.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Score)
	require.NotNil(t, got.Description)
	assert.Equal(t, "updated", *got.Description)

	require.NoError(t, s.Ratings.Delete(ctx, target.ID))
	assert.ErrorIs(t, s.Ratings.Delete(ctx, target.ID), domain.ErrNotFound)
}

func TestCommentRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uid := uuid.NewString()

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Comments.Create(ctx, &domain.Comment{
			ID: uuid.NewString(), UserID: uid, ItemID: "item", Content: "same item twice", CreatedAt: time.Now().UTC(),
		}))
	}
	items, total, err := s.Comments.List(ctx, domain.CommentFilter{UserID: uid, ItemID: "item"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	c := items[0]
	c.Content = "edited"
	require.NoError(t, s.Comments.Update(ctx, &c))
	got, err := s.Comments.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	require.NoError(t, s.Comments.Delete(ctx, c.ID))
	_, err = s.Comments.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOwnerItemFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, ownerItemFilter("", ""))
	assert.Equal(t, bson.M{"user_id": "u"}, ownerItemFilter("u", ""))
	assert.Equal(t, bson.M{"user_id": "u", "item_id": "i"}, ownerItemFilter("u", "i"))
}

func TestPageOptions(t *testing.T) {
	o := pageOptions(20, 10)
	require.NotNil(t, o.Skip)
	require.NotNil(t, o.Limit)
	assert.Equal(t, int64(20), *o.Skip)
	assert.Equal(t, int64(10), *o.Limit)
}

func TestTableOptions(t *testing.T) {
	assert.Contains(t, tableOptions("mysql"), "COLLATE=utf8mb4_bin")
	assert.Empty(t, tableOptions("sqlite"))
	assert.Empty(t, tableOptions("postgres"))
}

func TestUserRepo_EmailCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Users.Create(ctx, newUser("a@x.io")))
	require.NoError(t, s.Users.Create(ctx, newUser("A@x.io")))

	got, err := s.Users.FindByEmail(ctx, "A@x.io")
	require.NoError(t, err)
	assert.Equal(t, "A@x.io", got.Email)
}

func TestCreatedAtPrecision(t *testing.T) {
	for _, m := range []any{&domain.User{}, &domain.Rating{}, &domain.Comment{}} {
		sch, err := schema.Parse(m, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)
		f := sch.LookUpField("created_at")
		require.NotNil(t, f)
		assert.Equal(t, 6, f.Precision, sch.Table)
	}
}

func TestRatingRepo_ListKeepsInsertionOrderWithinMillisecond(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := newUser("a@x.io")
	require.NoError(t, s.Users.Create(ctx, u))

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Ratings.Create(ctx, &domain.Rating{
			ID: uuid.NewString(), UserID: u.ID, ItemID: fmt.Sprintf("i%d", i), Score: 3,
			CreatedAt: base.Add(time.Duration(i) * time.Microsecond),
		}))
	}
	items, _, err := s.Ratings.List(ctx, domain.RatingFilter{UserID: u.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 5)
	for i, r := range items {
		assert.Equal(t, fmt.Sprintf("i%d", i), r.ItemID)
	}
}
