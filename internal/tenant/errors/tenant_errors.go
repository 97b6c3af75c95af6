package tenanterrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

var (
	ErrTenantNotFound = apperror.New(
		"TENANT_NOT_FOUND",
		"Tenant is unknown or inactive",
		http.StatusNotFound,
	)

	ErrTenantUnavailable = apperror.New(
		"TENANT_UNAVAILABLE",
		"Tenant storage is currently unreachable",
		http.StatusServiceUnavailable,
	)

	ErrDirectoryUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Tenant directory is currently unreachable",
		http.StatusServiceUnavailable,
	)
)
