package xspawn

import (
	"errors"
	"fmt"
)

var (
	// ErrNilFunc 表示任务函数为 nil。
	ErrNilFunc = errors.New("xspawn: task func is nil")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xspawn: nil context")

	// ErrPanic 表示任务因 panic 终止。
	// 使用 errors.Is(err, ErrPanic) 判断，errors.As 获取 [PanicError] 详情。
	ErrPanic = errors.New("xspawn: task panicked")
)

// PanicError 包含被 recover 的 panic 值和发生时的堆栈。
//
//	var pe *xspawn.PanicError
//	if errors.As(handle.Err(), &pe) {
//	    fmt.Printf("panic: %v\n%s", pe.Value, pe.Stack)
//	}
type PanicError struct {
	// Value 是 panic 的原始值。
	Value any
	// Stack 是 recover 时捕获的 goroutine 堆栈。
	Stack []byte
}

// Error 实现 error 接口。
func (e *PanicError) Error() string {
	return fmt.Sprintf("xspawn: task panicked: %v", e.Value)
}

// Is 支持 errors.Is(err, ErrPanic) 判断。
func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}

// Unwrap 返回底层错误。
func (e *PanicError) Unwrap() error {
	return ErrPanic
}
