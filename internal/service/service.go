package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"shorturl-service/internal/cache"
	"shorturl-service/internal/click"
	"shorturl-service/internal/expiry"
	"shorturl-service/internal/model"
	"shorturl-service/internal/repository"
	"shorturl-service/internal/shortcode"

	"go.uber.org/zap"
)

// CreateInput 创建短链接的参数
type CreateInput struct {
	OriginalURL string
	// ValidityMinutes 为空表示使用默认有效期
	ValidityMinutes *float64
	// CustomCode 为空表示随机生成
	CustomCode string
}

// Summary 列表视图，不含点击历史
type Summary struct {
	ShortCode   string
	OriginalURL string
	Clicks      int64
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	Expired     bool
}

// Service 协调短码生成、过期策略、点击记录和存储
type Service struct {
	repo      repository.Repository
	generator *shortcode.Generator
	policy    *expiry.Policy
	recorder  *click.Recorder
	cache     cache.LinkCache
	clock     expiry.Clock
	logger    *zap.SugaredLogger
}

// Option 可选依赖
type Option func(*Service)

// WithCache 设置跳转缓存
func WithCache(c cache.LinkCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

func New(
	repo repository.Repository,
	generator *shortcode.Generator,
	policy *expiry.Policy,
	clock expiry.Clock,
	logger *zap.SugaredLogger,
	opts ...Option,
) *Service {
	s := &Service{
		repo:      repo,
		generator: generator,
		policy:    policy,
		recorder:  click.NewRecorder(repo, clock),
		cache:     cache.Noop{},
		clock:     clock,
		logger:    logger.Named("shorturl_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create 创建短链接，这是唯一会新建记录的操作
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.ShortURL, error) {
	originalURL := strings.TrimSpace(in.OriginalURL)
	if originalURL == "" {
		return nil, model.ErrMissingURL
	}
	if !isAbsoluteURL(originalURL) {
		return nil, model.ErrInvalidURL
	}
	if err := s.policy.Validate(in.ValidityMinutes); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	expiresAt := s.policy.Compute(now, in.ValidityMinutes)
	record := &model.ShortURL{
		OriginalURL:  originalURL,
		CreatedAt:    now,
		ExpiresAt:    &expiresAt,
		Clicks:       0,
		ClickHistory: []model.ClickEvent{},
	}

	var err error
	if in.CustomCode != "" {
		err = s.insertCustom(ctx, record, in.CustomCode)
	} else {
		err = s.insertGenerated(ctx, record)
	}
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheEntry(record))
	s.logger.Infow("短链接已创建", "code", record.ShortCode, "expires_at", expiresAt)
	return record, nil
}

func (s *Service) insertCustom(ctx context.Context, record *model.ShortURL, code string) error {
	if err := shortcode.ValidateCustom(code); err != nil {
		return err
	}
	if err := s.generator.CheckAvailable(ctx, code); err != nil {
		return err
	}

	record.ShortCode = code
	// 并发创建同一短码时，预检查可能都通过，以唯一约束为准
	return s.repo.Insert(ctx, record)
}

// insertGenerated 预检查冲突和插入冲突共用同一个尝试次数上限
func (s *Service) insertGenerated(ctx context.Context, record *model.ShortURL) error {
	for attempt := 1; attempt <= s.generator.MaxAttempts(); attempt++ {
		code, free, err := s.generator.Draw(ctx)
		if err != nil {
			return err
		}
		if !free {
			s.logger.Debugf("短码 %s 已存在，第 %d 次重试", code, attempt)
			continue
		}

		record.ShortCode = code
		err = s.repo.Insert(ctx, record)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrCodeConflict) {
			return err
		}
		s.logger.Warnf("随机短码 %s 插入时冲突，重新生成", code)
	}

	s.logger.Warnf("已尝试 %d 次生成短码，但均存在冲突", s.generator.MaxAttempts())
	record.ShortCode = ""
	return model.ErrGenerationExhausted
}

// GetStats 返回包含点击历史的完整记录。
// 已过期但尚未清理的记录返回 model.ErrGone。
func (s *Service) GetStats(ctx context.Context, code string) (*model.ShortURL, error) {
	record, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if expiry.IsExpired(record, s.clock.Now()) {
		return nil, model.ErrGone
	}
	return record, nil
}

// Redirect 返回跳转目标并记录一次点击，已过期的记录不计数
func (s *Service) Redirect(ctx context.Context, code string, rc click.RequestContext) (string, error) {
	if err := s.ensureActive(ctx, code); err != nil {
		return "", err
	}

	updated, err := s.recorder.Record(ctx, code, rc)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 查询之后被清理
			s.cache.Delete(ctx, code)
		}
		return "", err
	}
	return updated.OriginalURL, nil
}

// ensureActive 优先查缓存，缓存只保存未过期的记录
func (s *Service) ensureActive(ctx context.Context, code string) error {
	now := s.clock.Now()
	if entry, ok := s.cache.Get(ctx, code); ok {
		if entry.ExpiresAt == nil || entry.ExpiresAt.After(now) {
			return nil
		}
	}

	record, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if expiry.IsExpired(record, now) {
		return model.ErrGone
	}
	s.cache.Set(ctx, cacheEntry(record))
	return nil
}

// ListAll 列出存储中的所有记录，包括已过期但未清理的
func (s *Service) ListAll(ctx context.Context) ([]Summary, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	out := make([]Summary, len(records))
	for i := range records {
		r := &records[i]
		out[i] = Summary{
			ShortCode:   r.ShortCode,
			OriginalURL: r.OriginalURL,
			Clicks:      r.Clicks,
			CreatedAt:   r.CreatedAt,
			ExpiresAt:   r.ExpiresAt,
			Expired:     expiry.IsExpired(r, now),
		}
	}
	return out, nil
}

// Delete 管理员删除短链接
func (s *Service) Delete(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}
	s.cache.Delete(ctx, code)
	s.logger.Infow("短链接已删除", "code", code)
	return nil
}

// EvictExpired 物理删除 expires_at <= before 的记录，最多 limit 条
func (s *Service) EvictExpired(ctx context.Context, before time.Time, limit int) (int, error) {
	codes, err := s.repo.DeleteExpired(ctx, before.UTC(), limit)
	if err != nil {
		return 0, fmt.Errorf("清理过期链接: %w", err)
	}
	s.cache.Delete(ctx, codes...)
	return len(codes), nil
}

// Now 服务使用的当前时间
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

func cacheEntry(r *model.ShortURL) cache.Entry {
	return cache.Entry{
		ShortCode:   r.ShortCode,
		OriginalURL: r.OriginalURL,
		ExpiresAt:   r.ExpiresAt,
	}
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
