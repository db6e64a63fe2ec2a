package attendance

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateRecord is returned by InsertLogin when the employee already
	// has a record for the date.
	ErrDuplicateRecord = errors.New("attendance: record already exists for employee and date")
	// ErrNoOpenRecord is returned by UpdateLogout when there is no record for
	// the key or its logout is already set.
	ErrNoOpenRecord = errors.New("attendance: no open record for employee and date")
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context, employeeID, date string) (*Record, error)
	InsertLogin(ctx context.Context, employeeID, name, date string, loginTime time.Time) (*Record, error)
	UpdateLogout(ctx context.Context, employeeID, date string, logoutTime time.Time, hoursWorked float64) error
	ListForDate(ctx context.Context, date string) ([]Record, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Get(ctx context.Context, employeeID, date string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// InsertLogin never upserts; callers decide between insert and update.
func (r *repository) InsertLogin(ctx context.Context, employeeID, name, date string, loginTime time.Time) (*Record, error) {
	rec := &Record{
		EmployeeID: employeeID,
		Name:       name,
		Date:       date,
		LoginTime:  loginTime,
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}
	return rec, nil
}

// UpdateLogout only touches a record whose logout is still empty, so a
// logout can never be overwritten.
func (r *repository) UpdateLogout(ctx context.Context, employeeID, date string, logoutTime time.Time, hoursWorked float64) error {
	res := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date).
		Where("logout_time IS NULL").
		Updates(map[string]any{
			"logout_time":  logoutTime,
			"hours_worked": hoursWorked,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoOpenRecord
	}
	return nil
}

func (r *repository) ListForDate(ctx context.Context, date string) ([]Record, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Where("attendance_date = ?", date).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
