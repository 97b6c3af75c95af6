package clockingerrors

import (
	"net/http"

	"go-timeclock/internal/shared/apperror"
)

var (
	ErrAlreadyOpen = apperror.New(
		"ALREADY_OPEN",
		"An open attendance segment already exists for this employee and project",
		http.StatusConflict,
	)

	ErrNoOpenSegment = apperror.New(
		"NO_OPEN_SEGMENT",
		"No open attendance segment to clock out from",
		http.StatusBadRequest,
	)

	ErrSummaryNotFound = apperror.New(
		"SUMMARY_NOT_FOUND",
		"No attendance summary recorded for this date",
		http.StatusNotFound,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
