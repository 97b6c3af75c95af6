package tenant

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	tenanterrors "go-timeclock/internal/tenant/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	lookups int32
	configs map[string]*Config
	err     error
}

func (f *fakeRepo) FindByCode(ctx context.Context, code string) (*Config, error) {
	atomic.AddInt32(&f.lookups, 1)
	if f.err != nil {
		return nil, f.err
	}
	cfg, ok := f.configs[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cfg, nil
}

func countingOpener(opens *int32, err error) Opener {
	return func(cfg *Config) (*gorm.DB, error) {
		atomic.AddInt32(opens, 1)
		if err != nil {
			return nil, err
		}
		return &gorm.DB{}, nil
	}
}

func activeConfig(code string) *Config {
	return &Config{
		TenantCode: code,
		DBHost:     "db." + code + ".internal",
		DBPort:     "5432",
		DBName:     code,
		DBUser:     "app",
		Active:     true,
	}
}

func TestRouter_Resolve_CachesConnection(t *testing.T) {
	repo := &fakeRepo{configs: map[string]*Config{"acme": activeConfig("acme")}}
	var opens int32
	router := NewRouter(repo, countingOpener(&opens, nil))

	first, err := router.Resolve(context.Background(), "acme")
	require.NoError(t, err)
	second, err := router.Resolve(context.Background(), "acme")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&repo.lookups))
	assert.Equal(t, int32(1), atomic.LoadInt32(&opens))
}

func TestRouter_Resolve_NormalizesCode(t *testing.T) {
	repo := &fakeRepo{configs: map[string]*Config{"acme": activeConfig("acme")}}
	var opens int32
	router := NewRouter(repo, countingOpener(&opens, nil))

	first, err := router.Resolve(context.Background(), "  ACME ")
	require.NoError(t, err)
	second, err := router.Resolve(context.Background(), "acme")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&opens))
}

func TestRouter_Resolve_ConcurrentFirstUseOpensOnce(t *testing.T) {
	repo := &fakeRepo{configs: map[string]*Config{"acme": activeConfig("acme")}}
	var opens int32
	router := NewRouter(repo, countingOpener(&opens, nil))

	const callers = 32
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = router.Resolve(context.Background(), "acme")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&repo.lookups))
	assert.Equal(t, int32(1), atomic.LoadInt32(&opens))
}

func TestRouter_Resolve_UnknownTenant(t *testing.T) {
	repo := &fakeRepo{configs: map[string]*Config{}}
	var opens int32
	router := NewRouter(repo, countingOpener(&opens, nil))

	_, err := router.Resolve(context.Background(), "ghost")
	assert.ErrorIs(t, err, tenanterrors.ErrTenantNotFound)
	assert.Zero(t, atomic.LoadInt32(&opens))
}

func TestRouter_Resolve_InactiveTenantLooksUnknown(t *testing.T) {
	cfg := activeConfig("acme")
	cfg.Active = false
	repo := &fakeRepo{configs: map[string]*Config{"acme": cfg}}
	var opens int32
	router := NewRouter(repo, countingOpener(&opens, nil))

	_, err := router.Resolve(context.Background(), "acme")
	assert.ErrorIs(t, err, tenanterrors.ErrTenantNotFound)
	assert.Zero(t, atomic.LoadInt32(&opens))
}

func TestRouter_Resolve_EmptyCode(t *testing.T) {
	router := NewRouter(&fakeRepo{}, countingOpener(new(int32), nil))

	_, err := router.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, tenanterrors.ErrTenantNotFound)
}

func TestRouter_Resolve_DirectoryUnavailable(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	router := NewRouter(repo, countingOpener(new(int32), nil))

	_, err := router.Resolve(context.Background(), "acme")
	assert.ErrorIs(t, err, tenanterrors.ErrDirectoryUnavailable)
}

func TestRouter_Resolve_OpenerFailureNotCached(t *testing.T) {
	repo := &fakeRepo{configs: map[string]*Config{"acme": activeConfig("acme")}}
	var opens int32
	router := NewRouter(repo, countingOpener(&opens, errors.New("dial timeout")))

	_, err := router.Resolve(context.Background(), "acme")
	assert.ErrorIs(t, err, tenanterrors.ErrTenantUnavailable)

	// a later attempt retries the open instead of serving a dead handle
	_, err = router.Resolve(context.Background(), "acme")
	assert.ErrorIs(t, err, tenanterrors.ErrTenantUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&opens))
}
