package xlockreg

import (
	"context"
	"log/slog"
	"sync"
)

// Provider 抽象"按 key 取锁"的能力，[Registry] 和 [Sharded] 都实现它。
// 只消费锁的代码（如 xrunlock）应依赖此接口而非具体类型。
type Provider[K comparable] interface {
	// GetOrCreate 返回 key 对应的互斥锁，不存在时创建并登记。
	// 永不阻塞，也不获取锁本身。
	GetOrCreate(key K) *Mutex

	// Acquire 返回 key 对应的互斥锁并获取它。
	// 发放与等待登记在注册表临界区内原子完成，条目在整个
	// 等待和持有期间绝不会被淘汰。
	Acquire(ctx context.Context, key K) (*Mutex, error)
}

// 编译期接口检查。
var (
	_ Provider[string] = (*Registry[string])(nil)
	_ Provider[string] = (*Sharded[string])(nil)
)

// entry 是侵入式双向链表节点，链表顺序即 recency 顺序。
type entry[K comparable] struct {
	key  K
	mu   *Mutex
	prev *entry[K]
	next *entry[K]
}

// Registry 是按 key 分配互斥锁的有界注册表。
// 必须通过 [New] 创建，零值不可用。
// 所有方法都是并发安全的。
//
// 条目数超过 capacity 时，从最久未使用端开始淘汰第一个闲置条目；
// 忙碌条目（持有中或有等待者）绝不淘汰，此时注册表临时超出容量。
type Registry[K comparable] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]*entry[K]
	head     *entry[K] // 最近使用
	tail     *entry[K] // 最久未使用
	logger   *slog.Logger
	metrics  *registryMetrics
}

// New 创建 Registry。
// capacity 是保留的最大 key 数，必须 >= 1，否则返回 [ErrInvalidCapacity]。
func New[K comparable](capacity int, opts ...Option) (*Registry[K], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	m, err := newRegistryMetrics(o.meter)
	if err != nil {
		return nil, err
	}

	return &Registry[K]{
		capacity: capacity,
		entries:  make(map[K]*entry[K], capacity),
		logger:   o.logger,
		metrics:  m,
	}, nil
}

// GetOrCreate 返回 key 对应的互斥锁，不存在时创建并登记。
//
// 永不阻塞，也不获取锁本身。每次调用都会把 key 刷新为最近使用；
// 新 key 导致条目数超过容量时触发淘汰扫描。
// 在同一 key 未被淘汰前，重复调用返回同一 *Mutex 实例。
func (r *Registry[K]) GetOrCreate(key K) *Mutex {
	return r.getOrCreate(key, false)
}

// Acquire 获取 key 对应的锁，阻塞直到成功或 ctx 取消。
//
// 与先 GetOrCreate 再 Lock 的两步写法不同，Acquire 在注册表临界区内
// 完成等待登记，条目从发放那一刻起就是忙碌的，淘汰扫描绝不会在
// 加锁开始前删除它。同一 key 的互斥依赖锁实例唯一，需要跨越
// 发放到加锁这段窗口的互斥时必须使用 Acquire。
// ctx 不得为 nil，否则 panic。
func (r *Registry[K]) Acquire(ctx context.Context, key K) (*Mutex, error) {
	if ctx == nil {
		panic("xlockreg: nil Context")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mu := r.getOrCreate(key, true)
	if err := mu.lockRegistered(ctx); err != nil {
		return nil, err
	}
	return mu, nil
}

func (r *Registry[K]) getOrCreate(key K, register bool) *Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if ok {
		r.moveToFront(e)
	} else {
		// 先淘汰后插入：新条目自身绝不是本次扫描的候选
		for len(r.entries) >= r.capacity {
			if !r.evictOne() {
				// 所有条目都忙碌：临时超出容量，绝不淘汰使用中的锁
				break
			}
		}
		e = &entry[K]{key: key, mu: newMutex()}
		r.entries[key] = e
		r.pushFront(e)
		r.metrics.addEntries(context.Background(), 1)
	}

	if register {
		// 在临界区内登记等待者，发放与淘汰之间没有空窗
		e.mu.refs.Add(1)
	}
	return e.mu
}

// evictOne 从最久未使用端扫描，淘汰第一个闲置条目。
// 返回 false 表示没有可淘汰的条目。调用方必须持有 r.mu。
func (r *Registry[K]) evictOne() bool {
	for e := r.tail; e != nil; e = e.prev {
		if e.mu.Busy() {
			continue
		}
		r.unlink(e)
		delete(r.entries, e.key)
		r.metrics.addEntries(context.Background(), -1)
		r.metrics.addEviction(context.Background())
		if r.logger != nil {
			r.logger.Debug("xlockreg: entry evicted",
				slog.Any("key", e.key),
				slog.Int("entries", len(r.entries)),
			)
		}
		return true
	}
	return false
}

// Len 返回当前跟踪的 key 数量。
func (r *Registry[K]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Capacity 返回构造时设置的容量。
func (r *Registry[K]) Capacity() int {
	return r.capacity
}

// Contains 检查 key 是否在注册表中（不刷新 recency）。
func (r *Registry[K]) Contains(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[key]
	return ok
}

// Keys 返回当前跟踪的 key 列表，按最久未使用到最近使用排序。
// 返回值是快照，仅用于调试和测试。
func (r *Registry[K]) Keys() []K {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]K, 0, len(r.entries))
	for e := r.tail; e != nil; e = e.prev {
		keys = append(keys, e.key)
	}
	return keys
}

// 链表维护。调用方必须持有 r.mu。

func (r *Registry[K]) pushFront(e *entry[K]) {
	e.prev = nil
	e.next = r.head
	if r.head != nil {
		r.head.prev = e
	}
	r.head = e
	if r.tail == nil {
		r.tail = e
	}
}

func (r *Registry[K]) unlink(e *entry[K]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		r.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		r.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (r *Registry[K]) moveToFront(e *entry[K]) {
	if r.head == e {
		return
	}
	r.unlink(e)
	r.pushFront(e)
}
