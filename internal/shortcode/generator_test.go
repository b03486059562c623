package shortcode

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"shorturl-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	taken map[string]bool
	err   error
	calls int
}

func (f *fakeStore) ExistsByCode(_ context.Context, code string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.taken[code], nil
}

// sequence 依次返回给定的短码
func sequence(codes ...string) func(string, int) (string, error) {
	i := 0
	return func(string, int) (string, error) {
		c := codes[i%len(codes)]
		i++
		return c, nil
	}
}

func newTestGenerator(store ExistenceChecker, opts ...Option) *Generator {
	return NewGenerator(store, zap.NewNop().Sugar(), opts...)
}

func TestGenerator_Generate_Format(t *testing.T) {
	g := newTestGenerator(&fakeStore{})
	pattern := regexp.MustCompile(`^[A-Za-z0-9]{5}$`)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := g.Generate(context.Background())
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 190, "随机短码不应大量重复")
}

func TestGenerator_Generate_RetriesOnCollision(t *testing.T) {
	store := &fakeStore{taken: map[string]bool{"aaaaa": true, "bbbbb": true}}
	g := newTestGenerator(store, WithRandom(sequence("aaaaa", "bbbbb", "ccccc")))

	code, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ccccc", code)
	assert.Equal(t, 3, store.calls)
}

func TestGenerator_Generate_Exhausted(t *testing.T) {
	store := &fakeStore{taken: map[string]bool{"aaaaa": true}}
	g := newTestGenerator(store, WithRandom(sequence("aaaaa")))

	_, err := g.Generate(context.Background())
	assert.ErrorIs(t, err, model.ErrGenerationExhausted)
	assert.True(t, IsExhausted(err))
	assert.Equal(t, MaxAttempts, store.calls, "应恰好尝试 5 次")
}

func TestGenerator_Generate_StoreError(t *testing.T) {
	errDown := errors.New("db down")
	g := newTestGenerator(&fakeStore{err: errDown})

	_, err := g.Generate(context.Background())
	assert.ErrorIs(t, err, errDown)
	assert.False(t, IsExhausted(err), "存储故障不是短码耗尽")
}

func TestGenerator_Options(t *testing.T) {
	g := newTestGenerator(&fakeStore{}, WithMaxAttempts(3))
	code, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, code, CodeLength)
	assert.Equal(t, 3, g.MaxAttempts())

	g = newTestGenerator(&fakeStore{}, WithMaxAttempts(0))
	assert.Equal(t, MaxAttempts, g.MaxAttempts(), "非法次数应被忽略")
}

func TestGenerator_Draw(t *testing.T) {
	store := &fakeStore{taken: map[string]bool{"aaaaa": true}}
	g := newTestGenerator(store, WithRandom(sequence("aaaaa", "bbbbb")))

	code, free, err := g.Draw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "aaaaa", code)
	assert.False(t, free)

	code, free, err = g.Draw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bbbbb", code)
	assert.True(t, free)
	assert.Equal(t, 2, store.calls, "每次抽取只查询一次")

	store.err = errors.New("db down")
	_, _, err = g.Draw(context.Background())
	assert.ErrorIs(t, err, store.err)
}

func TestValidateCustom(t *testing.T) {
	valid := []string{"abcde", "ABCDE", "a1B2c", "abcdefghij", "12345"}
	for _, c := range valid {
		assert.NoError(t, ValidateCustom(c), c)
	}

	invalid := []string{"", "ab", "abcd", "abcdefghijk", "abc-de", "abc_de", "abc de", "abcdé", "ab/cd"}
	for _, c := range invalid {
		assert.ErrorIs(t, ValidateCustom(c), model.ErrCodeFormatInvalid, c)
	}
}

func TestGenerator_CheckAvailable(t *testing.T) {
	store := &fakeStore{taken: map[string]bool{"taken": true}}
	g := newTestGenerator(store)

	assert.NoError(t, g.CheckAvailable(context.Background(), "freee"))
	assert.ErrorIs(t, g.CheckAvailable(context.Background(), "taken"), model.ErrCodeConflict)

	store.err = errors.New("db down")
	err := g.CheckAvailable(context.Background(), "freee")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrCodeConflict)
}
