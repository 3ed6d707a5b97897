package xlockreg

import (
	"context"
	"hash/maphash"
)

// DefaultShardCount 是 Sharded 的默认分片数量。
const DefaultShardCount = 16

// Sharded 是分片版注册表，把 key 分散到多个独立的 Registry 上，
// 降低高并发下对注册表管理锁的争用。
//
// 代价是 LRU 顺序退化为每分片近似值：总容量均分到各分片，淘汰
// 只在 key 所属分片内部按 LRU 进行。需要严格全局 LRU 顺序时请使用
// [Registry]。锁唯一性和忙碌跳过语义与 Registry 完全一致。
type Sharded[K comparable] struct {
	shards   []*Registry[K]
	seed     maphash.Seed
	capacity int
}

// NewSharded 创建分片注册表，容量均分到 [DefaultShardCount] 个分片。
// capacity 必须 >= 1，否则返回 [ErrInvalidCapacity]。
func NewSharded[K comparable](capacity int, opts ...Option) (*Sharded[K], error) {
	return NewShardedWithCount[K](capacity, DefaultShardCount, opts...)
}

// NewShardedWithCount 创建指定分片数量的分片注册表。
// capacity 和 shardCount 都必须 >= 1。
//
// 每个分片至少分得容量 1，因此 capacity < shardCount 时
// 实际总容量为 shardCount（高于请求值）。
func NewShardedWithCount[K comparable](capacity, shardCount int, opts ...Option) (*Sharded[K], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if shardCount < 1 {
		return nil, ErrInvalidShardCount
	}

	// 容量均分，余数分给靠前的分片
	perShard := capacity / shardCount
	remainder := capacity % shardCount
	if perShard < 1 {
		perShard = 1
		remainder = 0
	}

	shards := make([]*Registry[K], shardCount)
	for i := range shards {
		shardCap := perShard
		if i < remainder {
			shardCap++
		}
		s, err := New[K](shardCap, opts...)
		if err != nil {
			return nil, err
		}
		shards[i] = s
	}

	return &Sharded[K]{
		shards:   shards,
		seed:     maphash.MakeSeed(),
		capacity: capacity,
	}, nil
}

func (s *Sharded[K]) shard(key K) *Registry[K] {
	h := maphash.Comparable(s.seed, key)
	return s.shards[h%uint64(len(s.shards))]
}

// GetOrCreate 返回 key 对应的互斥锁，语义与 [Registry.GetOrCreate] 一致。
func (s *Sharded[K]) GetOrCreate(key K) *Mutex {
	return s.shard(key).GetOrCreate(key)
}

// Acquire 获取 key 对应的锁，语义与 [Registry.Acquire] 一致。
func (s *Sharded[K]) Acquire(ctx context.Context, key K) (*Mutex, error) {
	return s.shard(key).Acquire(ctx, key)
}

// Len 返回所有分片跟踪的 key 总数。
// 并发场景下是近似快照，不保证跨分片原子性。
func (s *Sharded[K]) Len() int {
	n := 0
	for _, sh := range s.shards {
		n += sh.Len()
	}
	return n
}

// Capacity 返回请求的总容量。
// 注意 capacity < shardCount 时实际容量为 shardCount。
func (s *Sharded[K]) Capacity() int {
	return s.capacity
}

// Contains 检查 key 是否在所属分片中（不刷新 recency）。
func (s *Sharded[K]) Contains(key K) bool {
	return s.shard(key).Contains(key)
}
