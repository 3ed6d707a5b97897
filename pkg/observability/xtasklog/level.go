package xtasklog

import "log/slog"

// Level 是任务事件级别。
// 与调用方（前端、审计存储）之间是外部契约，因此用字符串而非枚举：
// 未识别的级别原样透传给持久化回调，本地镜像按 Info 严重度处理。
type Level string

// 识别的事件级别。
const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// slogLevel 返回本地镜像使用的 slog 严重度。
// success 映射为 Info（slog 没有 success 级别，原始级别以属性保留）；
// 未识别的级别默认 Info。
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
