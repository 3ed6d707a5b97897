package xlockreg

import "errors"

var (
	// ErrInvalidCapacity 表示容量配置无效。
	// New 要求 capacity >= 1。
	ErrInvalidCapacity = errors.New("xlockreg: capacity must be at least 1")

	// ErrNotLocked 表示锁当前未被持有。
	// 对未持有的 Mutex 调用 Unlock 时返回此错误。
	ErrNotLocked = errors.New("xlockreg: mutex is not locked")

	// ErrInvalidShardCount 表示分片数量无效。
	// NewShardedWithCount 要求 shardCount >= 1。
	ErrInvalidShardCount = errors.New("xlockreg: shard count must be at least 1")
)
