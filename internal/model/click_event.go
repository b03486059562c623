package model

import (
	"time"
)

// UnknownSource 既没有 Referer 也没有 User-Agent 时记录的来源
const UnknownSource = "unknown"

// ClickEvent 一次跳转记录
type ClickEvent struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	ShortURLID uint      `gorm:"not null;index" json:"-"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
	Source     string    `gorm:"type:text" json:"source"`
	Location   string    `gorm:"size:64" json:"location"`
}

func (ClickEvent) TableName() string {
	return "click_events"
}
