package xtasklog

import (
	"context"
	"log/slog"
	"time"
)

// Event 是一条任务进度事件。
// 本包不保留 Event，构造后交给持久化回调即丢弃。
type Event struct {
	// ResourceID 是事件所属资源的标识（如 "item:123"）。
	ResourceID string
	// TaskType 是任务类型标签（如 "reindex"）。
	TaskType string
	// TaskRunID 是本次任务运行的关联 ID，可用 xrunid 生成。
	TaskRunID string
	// Timestamp 是事件产生时刻。
	Timestamp time.Time
	// Level 是事件级别，见 [Level]。
	Level Level
	// Message 是事件内容。
	Message string
}

// SinkFunc 是调用方提供的持久化回调。
// 返回的错误原样传播给 Log 的调用方。
type SinkFunc func(ctx context.Context, e Event) error

// Logger 绑定一次任务运行的关联标识，把事件写入持久化回调和本地 slog。
// 必须通过 [New] 创建。构造后无可变状态，可在多个 goroutine 间并发使用。
type Logger struct {
	resourceID string
	taskType   string
	taskRunID  string
	sink       SinkFunc
	local      *slog.Logger
}

// New 创建 Logger。
// sink 不得为 nil，否则返回 [ErrNilSink]。
// 三个关联标识对本包是不透明字符串，空值也允许（但不利于检索）。
func New(resourceID, taskType, taskRunID string, sink SinkFunc, opts ...Option) (*Logger, error) {
	if sink == nil {
		return nil, ErrNilSink
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return &Logger{
		resourceID: resourceID,
		taskType:   taskType,
		taskRunID:  taskRunID,
		sink:       sink,
		local:      o.logger,
	}, nil
}

// Log 记录一条级别为 level 的事件。
//
// 事件先交给持久化回调（同步等待完成），回调失败时错误原样返回、
// 本地镜像跳过。回调成功后按级别映射写本地 slog，关联标识作为属性。
// ctx 不得为 nil，否则返回 [ErrNilContext]。
func (l *Logger) Log(ctx context.Context, msg string, level Level) error {
	if ctx == nil {
		return ErrNilContext
	}

	e := Event{
		ResourceID: l.resourceID,
		TaskType:   l.taskType,
		TaskRunID:  l.taskRunID,
		Timestamp:  time.Now(),
		Level:      level,
		Message:    msg,
	}

	if err := l.sink(ctx, e); err != nil {
		return err
	}

	l.local.LogAttrs(ctx, level.slogLevel(), msg,
		slog.String("resource_id", l.resourceID),
		slog.String("task_type", l.taskType),
		slog.String("task_run_id", l.taskRunID),
		slog.String("level", string(level)),
	)
	return nil
}

// Debug 记录 debug 级别事件。
func (l *Logger) Debug(ctx context.Context, msg string) error {
	return l.Log(ctx, msg, LevelDebug)
}

// Info 记录 info 级别事件。
func (l *Logger) Info(ctx context.Context, msg string) error {
	return l.Log(ctx, msg, LevelInfo)
}

// Success 记录 success 级别事件。
func (l *Logger) Success(ctx context.Context, msg string) error {
	return l.Log(ctx, msg, LevelSuccess)
}

// Warning 记录 warning 级别事件。
func (l *Logger) Warning(ctx context.Context, msg string) error {
	return l.Log(ctx, msg, LevelWarning)
}

// Error 记录 error 级别事件。
func (l *Logger) Error(ctx context.Context, msg string) error {
	return l.Log(ctx, msg, LevelError)
}
