package sweeper

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Evictor 物理删除过期记录
type Evictor interface {
	EvictExpired(ctx context.Context, before time.Time, limit int) (int, error)
	Now() time.Time
}

// Options 清理参数
type Options struct {
	Interval  time.Duration
	Grace     time.Duration
	BatchSize int
	// BatchesPerSecond 限制每秒删除批次，<= 0 表示不限
	BatchesPerSecond float64
}

// Sweeper 定期清理过期短链接。
// 业务逻辑不依赖它的执行时机，读取时总会检查逻辑过期。
type Sweeper struct {
	evictor Evictor
	opts    Options
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

func New(evictor Evictor, opts Options, logger *zap.SugaredLogger) *Sweeper {
	limit := rate.Inf
	if opts.BatchesPerSecond > 0 {
		limit = rate.Limit(opts.BatchesPerSecond)
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	return &Sweeper{
		evictor: evictor,
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.Named("expiry_sweeper"),
	}
}

// Run 阻塞运行直到 ctx 结束
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Infof("启动过期清理任务，间隔 %s", s.opts.Interval)
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := s.SweepOnce(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				s.logger.Errorf("清理过期链接出错: %v", err)
				continue
			}
			if n > 0 {
				s.logger.Infof("已清理 %d 条过期链接", n)
			}
		case <-ctx.Done():
			s.logger.Info("已停止过期清理任务")
			return nil
		}
	}
}

// SweepOnce 分批删除所有到期记录，返回删除总数
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	before := s.evictor.Now().Add(-s.opts.Grace)

	total := 0
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return total, err
		}

		n, err := s.evictor.EvictExpired(ctx, before, s.opts.BatchSize)
		total += n
		if err != nil {
			return total, err
		}
		if s.opts.BatchSize <= 0 || n < s.opts.BatchSize {
			return total, nil
		}
	}
}
