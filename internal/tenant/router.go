package tenant

import (
	"context"
	"errors"
	"strings"
	"sync"

	tenanterrors "go-timeclock/internal/tenant/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Opener turns a tenant config into a live database handle. Split out so
// tests can resolve tenants without a real postgres.
type Opener func(cfg *Config) (*gorm.DB, error)

// Router resolves a tenant code to that tenant's dedicated database.
// Connections are opened once and cached for the process lifetime; the
// directory is only consulted on a cache miss. Concurrent first resolutions
// of the same tenant collapse into a single lookup+open via singleflight,
// so there is no blanket lock across tenants.
type Router struct {
	repo   Repository
	opener Opener
	cache  sync.Map // tenant code -> *gorm.DB
	sf     singleflight.Group
	logger *zap.Logger
}

func NewRouter(repo Repository, opener Opener, logger ...*zap.Logger) *Router {
	l := zap.L().Named("tenant.router")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.router")
	}
	return &Router{
		repo:   repo,
		opener: opener,
		logger: l,
	}
}

// NormalizeCode makes tenant codes case- and whitespace-insensitive.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Resolve returns the cached connection for the tenant, opening it on first
// use. Inactive and unknown tenants are indistinguishable to callers.
func (r *Router) Resolve(ctx context.Context, tenantCode string) (*gorm.DB, error) {
	code := NormalizeCode(tenantCode)
	if code == "" {
		return nil, tenanterrors.ErrTenantNotFound
	}

	if db, ok := r.cache.Load(code); ok {
		return db.(*gorm.DB), nil
	}

	v, err, _ := r.sf.Do(code, func() (interface{}, error) {
		// Re-check under the flight: a previous caller may have just
		// finished populating the cache.
		if db, ok := r.cache.Load(code); ok {
			return db, nil
		}

		cfg, err := r.repo.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, tenanterrors.ErrTenantNotFound
			}
			r.logger.Error("tenant directory lookup failed",
				zap.String("tenant_code", code),
				zap.Error(err),
			)
			return nil, tenanterrors.ErrDirectoryUnavailable
		}
		if !cfg.Active {
			return nil, tenanterrors.ErrTenantNotFound
		}

		db, err := r.opener(cfg)
		if err != nil {
			r.logger.Error("tenant storage unreachable",
				zap.String("tenant_code", code),
				zap.Error(err),
			)
			return nil, tenanterrors.ErrTenantUnavailable
		}

		r.cache.Store(code, db)
		r.logger.Info("tenant connection opened", zap.String("tenant_code", code))
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gorm.DB), nil
}
