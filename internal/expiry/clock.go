package expiry

import (
	"sync"
	"time"
)

// Clock 时间来源，测试时可替换
type Clock interface {
	Now() time.Time
}

// RealClock 使用系统时间
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock 可手动推进的时钟，并发安全
type MockClock struct {
	mu      sync.Mutex
	current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance 向前推进时钟
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}
