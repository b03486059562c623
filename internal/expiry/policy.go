package expiry

import (
	"math"
	"time"

	"shorturl-service/internal/model"
)

// DefaultValidity 未指定有效期时的默认值
const DefaultValidity = 30 * time.Minute

// MaxValidityMinutes 允许的最长有效期（约 100 年），超出后 time.Duration 会溢出
const MaxValidityMinutes = 100 * 365 * 24 * 60

// Policy 计算和判断短链接的过期时间
type Policy struct {
	defaultValidity time.Duration
}

// NewPolicy 创建过期策略，defaultValidity <= 0 时使用 DefaultValidity
func NewPolicy(defaultValidity time.Duration) *Policy {
	if defaultValidity <= 0 {
		defaultValidity = DefaultValidity
	}
	return &Policy{defaultValidity: defaultValidity}
}

// DefaultValidity 返回默认有效期
func (p *Policy) DefaultValidity() time.Duration {
	return p.defaultValidity
}

// Validate 校验调用方传入的有效期（分钟），未传时合法
func (p *Policy) Validate(minutes *float64) error {
	if minutes == nil {
		return nil
	}
	if !isPositive(*minutes) || *minutes > MaxValidityMinutes {
		return model.ErrInvalidValidity
	}
	return nil
}

// Compute 根据创建时间计算过期时间。
// 有效期缺失、为零或非法时退回默认有效期，超过上限时按上限计算，因此总会返回一个晚于 createdAt 的时间。
func (p *Policy) Compute(createdAt time.Time, minutes *float64) time.Time {
	validity := p.defaultValidity
	if minutes != nil && isPositive(*minutes) {
		validity = time.Duration(math.Min(*minutes, MaxValidityMinutes) * float64(time.Minute))
	}
	if validity <= 0 {
		// 分钟数过小，换算后不足 1ns
		validity = time.Nanosecond
	}
	return createdAt.Add(validity)
}

// IsExpired 过期时间已设置且不晚于 now 时返回 true
func IsExpired(record *model.ShortURL, now time.Time) bool {
	return record.ExpiresAt != nil && !record.ExpiresAt.After(now)
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
