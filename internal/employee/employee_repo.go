package employee

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repository looks employees up inside one tenant database. The handle is
// passed per call because each request resolves its own tenant connection.
//
//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindActive(ctx context.Context, db *gorm.DB, employeeNo string) (*Employee, error)
	FindAny(ctx context.Context, db *gorm.DB, employeeNo string) (*Employee, error)
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func normalizeNo(employeeNo string) string {
	return strings.ToLower(strings.TrimSpace(employeeNo))
}

func (r *repository) FindActive(ctx context.Context, db *gorm.DB, employeeNo string) (*Employee, error) {
	var emp Employee
	err := db.WithContext(ctx).
		Where("LOWER(TRIM(employee_no)) = ?", normalizeNo(employeeNo)).
		Where("active = ?", true).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindAny(ctx context.Context, db *gorm.DB, employeeNo string) (*Employee, error) {
	var emp Employee
	err := db.WithContext(ctx).
		Where("LOWER(TRIM(employee_no)) = ?", normalizeNo(employeeNo)).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
