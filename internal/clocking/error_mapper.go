package clocking

import (
	"errors"
	"strings"

	clockingerrors "go-timeclock/internal/clocking/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapCreateError turns the open-segment unique violation into the domain
// conflict error. The index is the storage-level backstop for the keyed
// mutex around check-then-insert.
func mapCreateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_segment_open" {
			return clockingerrors.ErrAlreadyOpen
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_segment_open") {
		return clockingerrors.ErrAlreadyOpen
	}

	return err
}
