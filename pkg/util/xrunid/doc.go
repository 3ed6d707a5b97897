// Package xrunid 提供任务运行 ID（task_run_id）的生成能力。
//
// 基于 Sonyflake 算法的薄封装：生成的 ID 具有时序性（可按生成
// 先后排序），base36 字符串形式只有 12-13 个字符，适合作为日志
// 关联 ID 和外部系统的查询键。
//
// 与 UUID 的取舍：需要全局不可预测性时用 uuid；需要可排序、短、
// 以及按时间段检索时用 xrunid。
//
// # 注意事项
//
//   - 默认机器 ID 由主机名哈希推导（无主机名时退化为 PID），
//     多实例部署如需严格防碰撞请用 WithMachineID 显式注入
//   - Generator 的所有方法都是并发安全的
package xrunid
