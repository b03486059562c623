package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"shorturl-service/internal/model"
	"shorturl-service/internal/service"
)

// CreateShortURLRequest 创建短链接请求
type CreateShortURLRequest struct {
	URL string `json:"url" example:"https://github.com/gin-gonic/gin"`
	// 有效期（分钟），可以是数字或数字字符串
	Validity  json.RawMessage `json:"validity,omitempty" swaggertype:"number" example:"30"`
	Shortcode string          `json:"shortcode,omitempty" example:"gin2025"`
}

// CreateShortURLResponse 创建成功响应
type CreateShortURLResponse struct {
	ShortCode   string  `json:"shortCode" example:"aB3dE"`
	ShortLink   string  `json:"shortLink" example:"http://localhost:8080/aB3dE"`
	OriginalURL string  `json:"originalUrl" example:"https://github.com/gin-gonic/gin"`
	Expiry      *string `json:"expiry" example:"2026-01-15T12:30:00Z"`
}

// ClickEventResponse 点击记录
type ClickEventResponse struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Location  string `json:"location"`
}

// StatsResponse 统计信息
type StatsResponse struct {
	ShortCode    string               `json:"shortCode"`
	OriginalURL  string               `json:"originalUrl"`
	CreatedAt    string               `json:"createdAt"`
	ExpiresAt    *string              `json:"expiresAt"`
	Clicks       int64                `json:"clicks"`
	ClickHistory []ClickEventResponse `json:"clickHistory"`
}

// SummaryResponse 列表项
type SummaryResponse struct {
	ShortCode   string  `json:"shortCode"`
	OriginalURL string  `json:"originalUrl"`
	Clicks      int64   `json:"clicks"`
	CreatedAt   string  `json:"createdAt"`
	ExpiresAt   *string `json:"expiresAt"`
	Expired     bool    `json:"expired"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// parseValidity 解析有效期字段。
// 返回 nil 表示未提供；提供了但不是数字时返回 model.ErrInvalidValidity。
func parseValidity(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return &num, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		str = strings.TrimSpace(str)
		if str == "" {
			return nil, nil
		}
		if v, err := strconv.ParseFloat(str, 64); err == nil {
			return &v, nil
		}
	}
	return nil, model.ErrInvalidValidity
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toStatsResponse(r *model.ShortURL) StatsResponse {
	history := make([]ClickEventResponse, len(r.ClickHistory))
	for i, ev := range r.ClickHistory {
		history[i] = ClickEventResponse{
			Timestamp: formatTime(ev.Timestamp),
			Source:    ev.Source,
			Location:  ev.Location,
		}
	}
	return StatsResponse{
		ShortCode:    r.ShortCode,
		OriginalURL:  r.OriginalURL,
		CreatedAt:    formatTime(r.CreatedAt),
		ExpiresAt:    formatOptionalTime(r.ExpiresAt),
		Clicks:       r.Clicks,
		ClickHistory: history,
	}
}

func toSummaryResponse(s service.Summary) SummaryResponse {
	return SummaryResponse{
		ShortCode:   s.ShortCode,
		OriginalURL: s.OriginalURL,
		Clicks:      s.Clicks,
		CreatedAt:   formatTime(s.CreatedAt),
		ExpiresAt:   formatOptionalTime(s.ExpiresAt),
		Expired:     s.Expired,
	}
}
