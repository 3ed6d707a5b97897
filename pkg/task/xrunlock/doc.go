// Package xrunlock 把"按 key 取锁、执行、必然释放"组合为单个调用。
//
// 典型用法是在 xspawn 启动的后台任务内，对同一资源 ID 的工作单元
// 做串行化：
//
//	reg, _ := xlockreg.New[string](500)
//	spawner.Spawn(ctx, func(ctx context.Context) error {
//	    return xrunlock.Do(ctx, reg, "item:123", reindexItem)
//	})
//
// # 释放保证
//
// 锁在每一条退出路径上都会释放：
//
//   - fn 正常返回
//   - fn 返回错误（错误原样传播）
//   - fn panic（释放后重新 panic）
//   - 等待加锁期间 ctx 取消（此时尚未持锁，等待者自动注销）
//
// # 设计决策
//
// 锁通过 Provider.Acquire 原子获取：发放与等待登记在注册表临界区内
// 完成，淘汰压力下也不会在等待开始前换出锁实例，同一 key 的两个
// 工作单元绝不并行。
//
// xrunlock 不捕获也不记录 fn 的错误——错误观察是 xspawn 的职责。
// 本包只保证互斥与释放，返回值和错误原样透传，调用方（或包裹它的
// xspawn 任务）决定如何处置。
package xrunlock
