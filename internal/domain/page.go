package domain

import "math"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type PageQuery struct {
	Page    int
	PerPage int
}

// NormalizePage 非正数回落默认值，per_page 上限 100，page 上限保证 offset 不溢出
func NormalizePage(page, perPage int) PageQuery {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	// offset = (page-1)*perPage 不能溢出
	if page > math.MaxInt/perPage {
		page = math.MaxInt / perPage
	}
	return PageQuery{Page: page, PerPage: perPage}
}

func (q PageQuery) Offset() int { return (q.Page - 1) * q.PerPage }

type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func NewPageMeta(q PageQuery, total int64) PageMeta {
	per := int64(q.PerPage)
	return PageMeta{
		Page:       q.Page,
		PerPage:    q.PerPage,
		Total:      total,
		TotalPages: (total + per - 1) / per,
	}
}

type Page[T any] struct {
	Items []T
	Meta  PageMeta
}
