package xtasklog

import "errors"

var (
	// ErrNilSink 表示持久化回调为 nil。
	ErrNilSink = errors.New("xtasklog: nil sink")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xtasklog: nil context")
)
