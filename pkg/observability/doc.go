// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xtasklog: 任务事件记录器，持久化回调 + log/slog 本地镜像
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 事件结构自带任务标识，无需从 context 推断
//   - 持久化失败显式返回，绝不静默吞掉
package observability
