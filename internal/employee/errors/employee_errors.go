package employeeerrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		"EMPLOYEE_NOT_FOUND",
		"Employee is not registered for this tenant",
		http.StatusNotFound,
	)

	ErrEmployeeInactive = apperror.New(
		"EMPLOYEE_INACTIVE",
		"Employee is deactivated",
		http.StatusForbidden,
	)

	ErrMalformedEmployee = apperror.New(
		apperror.CodeInternalError,
		"Employee record is malformed",
		http.StatusInternalServerError,
	)
)
