// Package xspawn 提供"即发即忘"的后台任务启动器，保证失败绝不静默。
//
// 服务端在请求处理中经常需要派生与调用方生命周期解耦的后台工作
// （发通知、重建索引、清理缓存）。直接 go func() 的问题：返回的
// error 无人消费，panic 会杀死整个进程。xspawn 把每个任务包装为
// 受监督的 goroutine：
//
//   - 返回非 nil 且非 context.Canceled 的 error → 记录错误日志（含任务名）
//   - panic → recover 后包装为 [PanicError]（含堆栈）并记录错误日志
//   - context.Canceled → 视为主动取消，只记 Debug，绝不按失败上报
//
// # 核心特性
//
//   - 显式构造：Spawner 实例由调用方创建并传递，无隐藏全局单例，
//     测试和多租户场景可并存多个实例
//   - 任务命名：未命名任务自动生成 "task-<uuid>" 标识，日志可追溯
//   - Handle：调用方可选持有，支持 Done()/Err()/Cancel()/Wait()
//   - 优雅关闭：Shutdown(ctx) 等待所有在途任务结束，支持超时
//   - 可选指标：WithMeter 注入后记录失败与 panic 次数
//
// # 设计决策
//
// 1. 取消不是失败：与 errgroup 生态的约定一致，context.Canceled
//    （含包装）被视为调用方的主动取消信号，不产生错误日志。
//    context.DeadlineExceeded 不在豁免之列——超时通常意味着任务
//    本身出了问题，应当被观察到。
//
// 2. 错误只消费一次：Spawn 是终点捕获。错误记入日志（和指标）后
//    不再向任何地方传播——没有调用方在等它。需要消费结果的任务
//    应持有 Handle 并 Wait，或改用 errgroup。
//
// 3. panic 必须 recover：Go 中未捕获的 panic 会终止进程，
//    "nothing fails silently" 在 Go 里首先意味着 recover。
//    恢复后的 PanicError 携带完整堆栈，日志中可直接定位。
//
// # 注意事项
//
//   - Spawn 之后调用方无需持有 Handle，任务自行运行至结束
//   - Shutdown 不取消在途任务，只等待；需要取消时先逐个 Cancel
//     或取消传入 Spawn 的父 context
//   - Shutdown 超时返回后，残留任务仍在后台运行直至结束
package xspawn
