package model

import (
	"time"
)

// ShortURL 短链接记录
type ShortURL struct {
	ID           uint         `gorm:"primarykey" json:"-"`
	ShortCode    string       `gorm:"size:10;uniqueIndex;not null" json:"shortCode"`
	OriginalURL  string       `gorm:"type:text;not null" json:"originalUrl"`
	Clicks       int64        `gorm:"not null;default:0" json:"clicks"`
	CreatedAt    time.Time    `gorm:"not null" json:"createdAt"`
	ExpiresAt    *time.Time   `gorm:"index" json:"expiresAt"`
	ClickHistory []ClickEvent `gorm:"foreignKey:ShortURLID" json:"clickHistory"`
}

// TableName 指定表名
func (ShortURL) TableName() string {
	return "short_urls"
}

// Clone 深拷贝，历史记录也会复制
func (s *ShortURL) Clone() *ShortURL {
	c := *s
	if s.ExpiresAt != nil {
		t := *s.ExpiresAt
		c.ExpiresAt = &t
	}
	if s.ClickHistory != nil {
		c.ClickHistory = make([]ClickEvent, len(s.ClickHistory))
		copy(c.ClickHistory, s.ClickHistory)
	}
	return &c
}
