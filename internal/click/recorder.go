package click

import (
	"context"
	"strings"

	"shorturl-service/internal/expiry"
	"shorturl-service/internal/model"
)

// RequestContext 跳转请求中与统计相关的信息
type RequestContext struct {
	Referer    string
	UserAgent  string
	RemoteAddr string
}

// Source 优先使用 Referer，其次 User-Agent，都没有时为 "unknown"
func (rc RequestContext) Source() string {
	if s := strings.TrimSpace(rc.Referer); s != "" {
		return s
	}
	if s := strings.TrimSpace(rc.UserAgent); s != "" {
		return s
	}
	return model.UnknownSource
}

// Updater 原子地追加点击并计数
type Updater interface {
	UpdateClick(ctx context.Context, code string, event model.ClickEvent) (*model.ShortURL, error)
}

// Recorder 记录一次跳转。
// 存储层的 UpdateClick 本身是原子的，这里再按短码串行化一次，
// 以便底层存储只能做到读改写时也不丢计数。
type Recorder struct {
	store Updater
	clock expiry.Clock
	locks *keyedMutex
}

func NewRecorder(store Updater, clock expiry.Clock) *Recorder {
	return &Recorder{
		store: store,
		clock: clock,
		locks: newKeyedMutex(),
	}
}

// Record 追加一条点击记录并返回更新后的记录。
// 调用方需先确认记录未过期。
func (r *Recorder) Record(ctx context.Context, code string, rc RequestContext) (*model.ShortURL, error) {
	unlock := r.locks.Lock(code)
	defer unlock()

	event := model.ClickEvent{
		Timestamp: r.clock.Now().UTC(),
		Source:    rc.Source(),
		Location:  rc.RemoteAddr,
	}
	return r.store.UpdateClick(ctx, code, event)
}
