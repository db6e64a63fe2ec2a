package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-geoattend/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const uniqueIndexName = "uq_attendance_employee_date"

// isUniqueViolation recognises a duplicate key from either driver, whether
// or not gorm translated it.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueIndexName) ||
		strings.Contains(errMsg, "unique constraint failed")
}

// mapRepositoryError turns ledger conflicts into the error reported to the
// submitter. Both mean another submission won the race for the same key.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDuplicateRecord) || errors.Is(err, ErrNoOpenRecord) {
		return attendanceerrors.ErrConcurrentSubmission
	}
	return err
}
