package shortcode

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"shorturl-service/internal/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const (
	// Charset 包含用于生成短码的所有字符
	Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// CodeLength 是随机短码的长度
	CodeLength = 5
	// MaxAttempts 随机短码的最大尝试次数
	MaxAttempts = 5
)

var customCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{5,10}$`)

// ExistenceChecker 查询短码是否已被占用
type ExistenceChecker interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// Generator 负责生成随机短码和校验自定义短码
type Generator struct {
	store       ExistenceChecker
	maxAttempts int
	random      func(alphabet string, size int) (string, error)
	logger      *zap.SugaredLogger
}

// Option 调整生成器参数
type Option func(*Generator)

// WithMaxAttempts 设置最大尝试次数
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithRandom 替换随机源，测试用
func WithRandom(fn func(alphabet string, size int) (string, error)) Option {
	return func(g *Generator) {
		g.random = fn
	}
}

// NewGenerator 创建一个新的短码生成器实例
func NewGenerator(store ExistenceChecker, logger *zap.SugaredLogger, opts ...Option) *Generator {
	g := &Generator{
		store:       store,
		maxAttempts: MaxAttempts,
		random:      gonanoid.Generate,
		logger:      logger.Named("shortcode_generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxAttempts 返回最大尝试次数
func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}

// Generate 生成一个当前未被占用的短码。
// 连续 maxAttempts 次冲突后返回 model.ErrGenerationExhausted。
// 这里的检查只是预判，最终以存储的唯一约束为准。
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for i := 0; i < g.maxAttempts; i++ {
		code, free, err := g.Draw(ctx)
		if err != nil {
			return "", err
		}
		if free {
			return code, nil
		}
		g.logger.Debugf("短码 %s 已存在，第 %d 次重试", code, i+1)
	}

	g.logger.Warnf("已尝试 %d 次生成短码，但均存在冲突", g.maxAttempts)
	return "", model.ErrGenerationExhausted
}

// Draw 抽取一个随机短码并检查是否被占用，消耗一次尝试。
// 需要把插入冲突也计入同一预算的调用方自己循环调用它。
func (g *Generator) Draw(ctx context.Context) (code string, free bool, err error) {
	code, err = g.random(Charset, CodeLength)
	if err != nil {
		return "", false, fmt.Errorf("生成随机短码失败: %w", err)
	}

	exists, err := g.store.ExistsByCode(ctx, code)
	if err != nil {
		return "", false, err
	}
	return code, !exists, nil
}

// ValidateCustom 校验自定义短码格式
func ValidateCustom(code string) error {
	if !customCodePattern.MatchString(code) {
		return model.ErrCodeFormatInvalid
	}
	return nil
}

// CheckAvailable 检查自定义短码是否可用，已被占用时返回 model.ErrCodeConflict。
// 过期但尚未清理的记录同样占用短码。
func (g *Generator) CheckAvailable(ctx context.Context, code string) error {
	exists, err := g.store.ExistsByCode(ctx, code)
	if err != nil {
		return err
	}
	if exists {
		return model.ErrCodeConflict
	}
	return nil
}

// IsExhausted 判断错误是否为短码耗尽
func IsExhausted(err error) bool {
	return errors.Is(err, model.ErrGenerationExhausted)
}
