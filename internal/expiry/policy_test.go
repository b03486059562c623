package expiry

import (
	"math"
	"testing"
	"time"

	"shorturl-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestPolicy_Validate(t *testing.T) {
	p := NewPolicy(0)

	assert.NoError(t, p.Validate(nil), "未传有效期应合法")
	assert.NoError(t, p.Validate(ptr(1)))
	assert.NoError(t, p.Validate(ptr(0.5)))
	assert.NoError(t, p.Validate(ptr(MaxValidityMinutes)))

	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1), MaxValidityMinutes + 1, 2e8, 1e300} {
		assert.ErrorIs(t, p.Validate(ptr(v)), model.ErrInvalidValidity, "值 %v 应被拒绝", v)
	}
}

func TestPolicy_Compute(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	p := NewPolicy(0)

	assert.Equal(t, now.Add(time.Minute), p.Compute(now, ptr(1)))
	assert.Equal(t, now.Add(90*time.Second), p.Compute(now, ptr(1.5)))
	assert.Equal(t, now.Add(30*time.Minute), p.Compute(now, nil), "默认 30 分钟")
	assert.Equal(t, now.Add(30*time.Minute), p.Compute(now, ptr(0)))
	assert.Equal(t, now.Add(30*time.Minute), p.Compute(now, ptr(-5)))
	assert.True(t, p.Compute(now, ptr(1e-12)).After(now), "过期时间必须严格晚于创建时间")
}

func TestPolicy_Compute_HugeValidityDoesNotOverflow(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	p := NewPolicy(0)
	maxExpiry := now.Add(time.Duration(MaxValidityMinutes) * time.Minute)

	assert.Equal(t, maxExpiry, p.Compute(now, ptr(MaxValidityMinutes)))
	for _, v := range []float64{2e8, 1e18, math.MaxFloat64} {
		got := p.Compute(now, ptr(v))
		assert.Equal(t, maxExpiry, got, "超出上限按上限计算: %v", v)
		assert.True(t, got.After(now.Add(99*365*24*time.Hour)), "不能因溢出变成已过期: %v", v)
	}
}

func TestPolicy_CustomDefault(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	p := NewPolicy(2 * time.Hour)

	assert.Equal(t, 2*time.Hour, p.DefaultValidity())
	assert.Equal(t, now.Add(2*time.Hour), p.Compute(now, nil))
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	assert.False(t, IsExpired(&model.ShortURL{}, now), "没有过期时间的记录永不过期")
	assert.True(t, IsExpired(&model.ShortURL{ExpiresAt: &past}, now))
	assert.True(t, IsExpired(&model.ShortURL{ExpiresAt: &now}, now), "过期时间等于当前时间即视为过期")
	assert.False(t, IsExpired(&model.ShortURL{ExpiresAt: &future}, now))
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(start)
	c.Advance(61 * time.Second)
	assert.Equal(t, start.Add(61*time.Second), c.Now())
}
