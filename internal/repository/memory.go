package repository

import (
	"context"
	"sync"
	"time"

	"shorturl-service/internal/model"
)

// MemoryRepository 进程内存储，按插入顺序列出
type MemoryRepository struct {
	mu     sync.RWMutex
	data   map[string]*model.ShortURL
	order  []string
	nextID uint
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*model.ShortURL),
	}
}

func (r *MemoryRepository) FindByCode(ctx context.Context, code string) (*model.ShortURL, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.data[code]
	if !ok {
		return nil, model.ErrNotFound
	}
	return rec.Clone(), nil
}

func (r *MemoryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.data[code]
	return ok, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, record *model.ShortURL) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[record.ShortCode]; exists {
		return model.ErrCodeConflict
	}

	r.nextID++
	record.ID = r.nextID
	stored := record.Clone()
	stored.ClickHistory = nil
	r.data[record.ShortCode] = stored
	r.order = append(r.order, record.ShortCode)
	return nil
}

func (r *MemoryRepository) UpdateClick(ctx context.Context, code string, event model.ClickEvent) (*model.ShortURL, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.data[code]
	if !ok {
		return nil, model.ErrNotFound
	}

	event.ShortURLID = rec.ID
	rec.ClickHistory = append(rec.ClickHistory, event)
	rec.Clicks++
	return rec.Clone(), nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]model.ShortURL, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.ShortURL, 0, len(r.order))
	for _, code := range r.order {
		rec := *r.data[code]
		rec.ClickHistory = nil
		out = append(out, rec)
	}
	return out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[code]; !ok {
		return model.ErrNotFound
	}
	r.remove(code)
	return nil
}

func (r *MemoryRepository) DeleteExpired(ctx context.Context, before time.Time, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var victims []string
	for _, code := range r.order {
		if limit > 0 && len(victims) >= limit {
			break
		}
		exp := r.data[code].ExpiresAt
		if exp != nil && !exp.After(before) {
			victims = append(victims, code)
		}
	}
	for _, code := range victims {
		r.remove(code)
	}
	return victims, nil
}

// remove 调用方需持有写锁
func (r *MemoryRepository) remove(code string) {
	delete(r.data, code)
	for i, c := range r.order {
		if c == code {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
