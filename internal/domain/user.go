package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"item-feedback-api/pkg/utils"
)

const MinPasswordLen = 6

type User struct {
	ID           string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" bson:"email" json:"email"`
	Name         string    `gorm:"size:255" bson:"name" json:"name"`
	PasswordHash string    `gorm:"column:password;size:100;not null" bson:"password" json:"-"`
	CreatedAt    time.Time `gorm:"precision:6" bson:"created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }

// UserView 对外输出的用户，不带密码
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return Validation("Invalid email format")
	}
	return nil
}

func ValidatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < MinPasswordLen {
		return Validation("Password must be at least 6 characters")
	}
	if len(pw) > utils.MaxPasswordBytes {
		return Validation(fmt.Sprintf("Password must be at most %d bytes", utils.MaxPasswordBytes))
	}
	return nil
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
