package tenant

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tenant_repo.go -destination=mock/tenant_repo_mock.go -package=mock
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Config, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Config, error) {
	var cfg Config
	err := r.db.WithContext(ctx).
		Where("LOWER(TRIM(tenant_code)) = ?", code).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
