// Package xlockreg 提供按 key 分配互斥锁的有界注册表（LRU 淘汰）。
//
// 服务端常见场景：大量短生命周期的后台任务按资源 ID 互斥
// （如"重建索引 item:123"），key 空间无上界，但同一时刻活跃的 key
// 很少。xlockreg 为每个 key 维护唯一的互斥锁，并在 key 总数超过
// 容量时按 LRU 顺序淘汰闲置条目，防止锁表无界增长。
//
// # 核心特性
//
//   - 泛型 key：任意 comparable 类型，无需序列化为字符串
//   - 锁唯一性：同一 key 在未被淘汰前，GetOrCreate 始终返回同一 *Mutex
//   - 有界容量：条目数超过 capacity 时从最久未使用端开始淘汰
//   - 忙碌跳过：持有中或有等待者的锁绝不淘汰，宁可临时超出容量
//   - 原子获取：Acquire 在注册表临界区内完成等待登记，发放到加锁
//     之间没有可淘汰的空窗
//   - Context 支持：Mutex.Lock 支持超时和取消，取消时等待者自动注销
//   - 可选指标：WithMeter 注入 OTel Meter 后记录淘汰次数和条目数
//
// # 淘汰语义
//
// 淘汰只在插入新 key 且条目数已达容量时触发，并在插入之前完成，
// 因此新条目自身绝不是本次扫描的候选。候选扫描严格按最久未使用
// 优先，跳过忙碌条目（Busy() == true），每次插入最多淘汰恢复容量
// 所需的最少条目数。当所有条目都忙碌时，注册表临时超出容量——
// 正确性（绝不破坏使用中的锁）优先于软容量上界。
//
// GetOrCreate 的每次调用（无论命中还是新建）都会刷新该 key 的
// 最近使用标记，而不仅是加锁时。
//
// # 设计决策
//
// 1. 不分片的核心类型：严格的全局 LRU 顺序是 Registry 契约的一部分，
//    分片会把 LRU 顺序打散为每分片近似值。高并发且可接受近似 LRU 的
//    场景请使用 [Sharded]。
//
// 2. 自实现的 recency 链表：通用 LRU 库（如 hashicorp/golang-lru）的
//    淘汰不支持"跳过忙碌条目"的条件扫描，因此 Registry 内部使用
//    map + 侵入式双向链表自行维护顺序。
//
// 3. 忙碌检测使用显式引用计数：sync.Mutex 不可内省持有/等待状态，
//    Mutex 内部用 size=1 的 channel 做互斥量，并用原子引用计数
//    （持有者 + 等待者）判定忙碌。计数在进入等待前递增，失败时递减，
//    确保淘汰扫描绝不会在"已在等待但尚未计数"的窗口误删条目。
//
// 4. 注册表自身的临界区是普通 sync.Mutex，绝不跨阻塞操作持有；
//    Mutex.Lock 的等待发生在临界区之外。
//
// # 注意事项
//
//   - Mutex 由 Registry 创建和（条件）销毁，调用方不要自行构造
//   - GetOrCreate 与 Lock 是两步操作，淘汰压力下条目可能在两步
//     之间被换出；依赖锁实例唯一性的互斥请使用 Acquire（或 xrunlock）
//   - 锁非可重入，同一 goroutine 对同一 key 重复 Lock 会死锁
//   - Unlock 只能由当前持有者调用，对未持有的锁调用返回 ErrNotLocked
//   - 被淘汰的 Mutex 对已持有引用的调用方仍然有效，但后续
//     GetOrCreate 会返回新实例，互斥性不再跨越两者
package xlockreg
