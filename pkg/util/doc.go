// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xlockreg: 有界的按 key 互斥锁注册表，LRU 淘汰空闲锁、跳过占用锁
//   - xrunid: 任务运行 ID 生成器，基于 Sonyflake、时序可排序
//
// 设计原则：
//   - 显式构造，无隐藏全局状态
//   - 泛型 key，调用方自选 key 类型
//   - 阻塞操作接受 context 控制超时与取消
package util
