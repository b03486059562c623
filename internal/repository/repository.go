package repository

import (
	"context"
	"time"

	"shorturl-service/internal/model"
)

// Repository 短链接存储。
// 实现必须并发安全；唯一性约束由存储自身保证，插入冲突返回 model.ErrCodeConflict 而不是覆盖。
type Repository interface {
	// FindByCode 返回包含点击历史的完整记录，不存在时返回 model.ErrNotFound
	FindByCode(ctx context.Context, code string) (*model.ShortURL, error)

	// ExistsByCode 检查短码是否已被任何记录使用（包括已过期但未删除的）
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Insert 插入新记录，短码重复时返回 model.ErrCodeConflict
	Insert(ctx context.Context, record *model.ShortURL) error

	// UpdateClick 原子地追加一条点击记录并把计数加一，返回更新后的记录
	UpdateClick(ctx context.Context, code string, event model.ClickEvent) (*model.ShortURL, error)

	// ListAll 按存储顺序返回所有记录，不含点击历史
	ListAll(ctx context.Context) ([]model.ShortURL, error)

	// Delete 删除记录及其点击历史，不存在时返回 model.ErrNotFound
	Delete(ctx context.Context, code string) error

	// DeleteExpired 删除最多 limit 条 expires_at <= before 的记录，返回被删除的短码
	DeleteExpired(ctx context.Context, before time.Time, limit int) ([]string, error)
}
