package model

import "errors"

// 输入校验错误，调用方修正后可重试
var (
	ErrMissingURL        = errors.New("缺少原始链接")
	ErrInvalidURL        = errors.New("原始链接不是合法的绝对 URL")
	ErrInvalidValidity   = errors.New("有效期必须是正数（分钟）")
	ErrCodeFormatInvalid = errors.New("短码必须是 5-10 位字母或数字")
)

var (
	// ErrCodeConflict 短码已被占用
	ErrCodeConflict = errors.New("短码已存在")
	// ErrGenerationExhausted 随机短码多次冲突，放弃生成
	ErrGenerationExhausted = errors.New("短码生成重试次数已用尽")
	// ErrNotFound 短码不存在或已被物理删除
	ErrNotFound = errors.New("短链接不存在")
	// ErrGone 短码存在但已过期
	ErrGone = errors.New("短链接已过期")
)

// IsValidation 判断是否属于输入校验错误
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingURL) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrInvalidValidity) ||
		errors.Is(err, ErrCodeFormatInvalid)
}
