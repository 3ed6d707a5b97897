// Package xtasklog 提供存储无关的任务进度/事件日志器。
//
// 后台任务通常需要把进度事件持久化（供前端轮询或审计），同时在本地
// 日志里留痕。xtasklog 把两者合并为一次调用：每条消息先交给调用方
// 注入的持久化回调（[SinkFunc]），再按级别映射镜像到本地 slog。
//
// # 核心特性
//
//   - 关联标识：resourceID / taskType / taskRunID 三元组在构造时固定，
//     每条事件自动携带，日志可按任务运行聚合
//   - 存储无关：持久化只是一个 func，数据库、消息队列、HTTP 上报
//     都由调用方决定
//   - 错误透明：回调失败原样传播给 Log 的调用方，绝不吞掉持久化
//     错误；需要韧性时用 [WithRetrySink] 显式包装回调
//   - 级别透传：识别 debug/info/success/warning/error 五个级别，
//     未识别的级别原样进入事件、按 Info 严重度写本地镜像
//
// # 设计决策
//
// 1. 回调先于镜像：持久化是事件的主路径，本地 slog 只是观测性副本。
//    回调失败时不写镜像——错误会传播出去，由外层（通常是 xspawn
//    的失败报告）记录。
//
// 2. Logger 无内部状态：构造后四个字段只读，任意数量的任务可并发
//    调用同一实例的 Log，无需同步。
//
// 3. success 不是 slog 级别：本地镜像映射为 Info，原始级别字符串
//    以 level 属性保留，检索时不丢失语义。
//
// # 注意事项
//
//   - 回调在 Log 的调用 goroutine 上同步执行，耗时的持久化会阻塞
//     任务本身；必要时在回调内部自行异步化
//   - Event 不被本包保留，回调返回后即丢弃
package xtasklog
