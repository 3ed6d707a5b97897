package xrunid

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"

	"github.com/sony/sonyflake/v2"
)

var (
	// ErrInvalidID 表示解析出的 ID 值无效（零或负数）。
	ErrInvalidID = errors.New("xrunid: invalid id")

	// ErrInvalidConfig 表示生成器配置无效。
	ErrInvalidConfig = errors.New("xrunid: invalid config")
)

// Option 定义 Generator 可选配置函数类型。
type Option func(*options)

type options struct {
	machineID func() (int, error)
}

// WithMachineID 显式设置机器 ID 获取函数（有效范围 0-65535）。
// 默认由主机名哈希推导。
func WithMachineID(fn func() (int, error)) Option {
	return func(o *options) {
		if fn != nil {
			o.machineID = fn
		}
	}
}

// defaultMachineID 由主机名哈希推导机器 ID，无主机名时退化为 PID。
// 仅适合单实例或低碰撞要求的场景，多实例部署请用 WithMachineID 注入。
func defaultMachineID() (int, error) {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return os.Getpid() & 0xFFFF, nil
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(host))
	return int(h.Sum32() & 0xFFFF), nil
}

// Generator 生成时序性的任务运行 ID。
// 必须通过 [New] 创建，所有方法并发安全。
type Generator struct {
	sf *sonyflake.Sonyflake
}

// New 创建 Generator。
// 底层 Sonyflake 初始化失败（如机器 ID 校验不通过）时返回
// [ErrInvalidConfig] 包装的错误。
func New(opts ...Option) (*Generator, error) {
	o := options{machineID: defaultMachineID}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	sf, err := sonyflake.New(sonyflake.Settings{MachineID: o.machineID})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Generator{sf: sf}, nil
}

// Next 生成新的运行 ID（int64 格式）。
func (g *Generator) Next() (int64, error) {
	return g.sf.NextID()
}

// NextString 生成新的运行 ID（base36 字符串格式，12-13 字符）。
// 推荐作为 xtasklog 的 taskRunID 使用。
func (g *Generator) NextString() (string, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 36), nil
}

// Parse 把 base36 字符串形式的运行 ID 解析回 int64。
// 非法输入或非正值返回 [ErrInvalidID]。
func Parse(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 36, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return id, nil
}
