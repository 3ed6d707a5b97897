// Package task 提供后台任务编排相关的子包。
//
// 子包列表：
//   - xspawn: 即发即忘的任务启动器，失败与 panic 必被观察
//   - xrunlock: 持锁执行器，组合 xlockreg 实现按 key 串行化
//
// 设计原则：
//   - 任何失败路径都有去向：日志、指标或显式返回
//   - 取消（context.Canceled）视为正常结束，不按失败上报
//   - 锁的获取与释放封装在执行器内部，调用方无法漏释放
package task
