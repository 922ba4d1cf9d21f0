package cache

import "time"

// Entry 支持逻辑过期的数据结构
type Entry[T any] struct {
	Data      T         `json:"data"`
	ExpireAt  time.Time `json:"expire_at"`  // 逻辑过期时间
	CreatedAt time.Time `json:"created_at"` // 创建时间，用于调试
}

// IsLogicalExpired 检查是否逻辑过期
func (e *Entry[T]) IsLogicalExpired(now time.Time) bool {
	return now.After(e.ExpireAt)
}

// NewEntry wraps data so that it logically expires after ttl.
func NewEntry[T any](data T, ttl time.Duration, now time.Time) *Entry[T] {
	return &Entry[T]{
		Data:      data,
		ExpireAt:  now.Add(ttl),
		CreatedAt: now,
	}
}
