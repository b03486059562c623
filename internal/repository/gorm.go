package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shorturl-service/internal/model"

	"gorm.io/gorm"
)

// GormRepository 基于 gorm 的实现，适用于 MySQL / Postgres / SQLite。
// db 需要以 TranslateError: true 打开，否则无法识别唯一索引冲突。
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// MySQLTableOptions MySQL 默认排序规则不区分大小写，短码必须按字节比较
const MySQLTableOptions = "DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// AutoMigrate 建表
func (r *GormRepository) AutoMigrate() error {
	return r.migrator().AutoMigrate(&model.ShortURL{}, &model.ClickEvent{})
}

func (r *GormRepository) migrator() *gorm.DB {
	if r.db.Dialector.Name() == "mysql" {
		return r.db.Set("gorm:table_options", MySQLTableOptions)
	}
	return r.db
}

func orderedHistory(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *GormRepository) FindByCode(ctx context.Context, code string) (*model.ShortURL, error) {
	var rec model.ShortURL
	err := r.db.WithContext(ctx).
		Preload("ClickHistory", orderedHistory).
		Where("short_code = ?", code).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("查询短链接失败: %w", err)
	}
	return &rec, nil
}

func (r *GormRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShortURL{}).
		Where("short_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("检查短码失败: %w", err)
	}
	return count > 0, nil
}

func (r *GormRepository) Insert(ctx context.Context, record *model.ShortURL) error {
	err := r.db.WithContext(ctx).Omit("ClickHistory").Create(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.ErrCodeConflict
		}
		return fmt.Errorf("保存短链接失败: %w", err)
	}
	return nil
}

func (r *GormRepository) UpdateClick(ctx context.Context, code string, event model.ClickEvent) (*model.ShortURL, error) {
	var updated model.ShortURL
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ShortURL{}).
			Where("short_code = ?", code).
			UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		// 已被清理任务删除
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}

		if err := tx.Select("id").Where("short_code = ?", code).First(&updated).Error; err != nil {
			return err
		}
		event.ID = 0
		event.ShortURLID = updated.ID
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return tx.Preload("ClickHistory", orderedHistory).First(&updated, updated.ID).Error
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("记录点击失败: %w", err)
	}
	return &updated, nil
}

func (r *GormRepository) ListAll(ctx context.Context) ([]model.ShortURL, error) {
	var records []model.ShortURL
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("获取链接列表失败: %w", err)
	}
	return records, nil
}

func (r *GormRepository) Delete(ctx context.Context, code string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.ShortURL
		if err := tx.Select("id").Where("short_code = ?", code).First(&rec).Error; err != nil {
			return err
		}
		if err := tx.Where("short_url_id = ?", rec.ID).Delete(&model.ClickEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ShortURL{}, rec.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("删除短链接失败: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteExpired(ctx context.Context, before time.Time, limit int) ([]string, error) {
	var victims []model.ShortURL
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Select("id", "short_code").
			Where("expires_at IS NOT NULL AND expires_at <= ?", before).
			Order("id ASC")
		if limit > 0 {
			q = q.Limit(limit)
		}
		if err := q.Find(&victims).Error; err != nil {
			return err
		}
		if len(victims) == 0 {
			return nil
		}

		ids := make([]uint, len(victims))
		for i, v := range victims {
			ids[i] = v.ID
		}
		if err := tx.Where("short_url_id IN ?", ids).Delete(&model.ClickEvent{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.ShortURL{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("清理过期链接失败: %w", err)
	}

	codes := make([]string, len(victims))
	for i, v := range victims {
		codes[i] = v.ShortCode
	}
	return codes, nil
}
