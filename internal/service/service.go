// Package service holds the business rules for users, ratings and comments.
// Services are built once at startup around a repo.Store and are safe for
// concurrent use; every cross-request guarantee comes from storage indexes.
package service

import (
	"errors"
	"strings"

	"item-feedback-api/internal/domain"
	"item-feedback-api/pkg/utils"
)

func requireID(id, what string) error {
	if !utils.ValidID(id) {
		return domain.Validation("Invalid " + what + " format")
	}
	return nil
}

// requireOwner actor 为 token subject
func requireOwner(actor, owner, what string) error {
	if actor == "" || actor != owner {
		return domain.Forbidden("Not allowed to modify this " + what)
	}
	return nil
}

// lookupErr 把 repo 的 ErrNotFound 翻译成业务 NotFound，其他视为内部错误
func lookupErr(err error, what string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(strings.ToUpper(what[:1]) + what[1:] + " not found")
	}
	return domain.Internal("failed to load "+what, err)
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
