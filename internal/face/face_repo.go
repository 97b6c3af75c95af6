package face

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=face_repo.go -destination=mock/face_repo_mock.go -package=mock
type Repository interface {
	Save(ctx context.Context, db *gorm.DB, tpl *Template) error
	FindByEmployee(ctx context.Context, db *gorm.DB, employeeID uuid.UUID) (*Template, error)
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

// Save upserts: enrollment replaces any prior descriptor wholesale.
func (r *repository) Save(ctx context.Context, db *gorm.DB, tpl *Template) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "length", "enrolled_at", "updated_at"}),
		}).
		Create(tpl).Error
}

func (r *repository) FindByEmployee(ctx context.Context, db *gorm.DB, employeeID uuid.UUID) (*Template, error) {
	var tpl Template
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&tpl).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}
