package utils

import "github.com/google/uuid"

func NewID() string { return uuid.NewString() }

// ValidID 判断是否为合法的 UUID 字符串
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
