package employee

import (
	"context"
	"errors"

	employeeerrors "go-timeclock/internal/employee/errors"

	"gorm.io/gorm"
)

// Directory is the read-only lookup both the clocking engine and the face
// service go through. It exists to give "unknown employee" and
// "deactivated employee" distinct errors instead of a flat not-found.
//
//go:generate mockgen -source=directory.go -destination=mock/directory_mock.go -package=mock
type Directory interface {
	Resolve(ctx context.Context, db *gorm.DB, employeeNo string) (*Employee, error)
}

type directory struct {
	repo Repository
}

func NewDirectory(repo Repository) Directory {
	return &directory{repo: repo}
}

func (d *directory) Resolve(ctx context.Context, db *gorm.DB, employeeNo string) (*Employee, error) {
	emp, err := d.repo.FindActive(ctx, db, employeeNo)
	if err == nil {
		if !emp.Valid() {
			return nil, employeeerrors.ErrMalformedEmployee
		}
		return emp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Secondary lookup only to pick the right error message.
	if _, anyErr := d.repo.FindAny(ctx, db, employeeNo); anyErr == nil {
		return nil, employeeerrors.ErrEmployeeInactive
	}
	return nil, employeeerrors.ErrEmployeeNotFound
}
