package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	attendanceerrors "go-geoattend/internal/attendance/errors"
	"go-geoattend/internal/events"
	"go-geoattend/internal/geofence"
	"go-geoattend/internal/messaging/kafka"
	"go-geoattend/internal/roster"
	"go-geoattend/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DailyReportKeyPrefix = "attendance:daily:"
	dailyReportTTL       = time.Minute
	missingValue         = "-"
)

func GetDailyReportKey(date string) string {
	return DailyReportKeyPrefix + date
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)
	ListForDate(ctx context.Context, date string) ([]DailyAttendanceRow, error)
	Today(ctx context.Context) ([]DailyAttendanceRow, error)
}

type Option func(*service)

// WithClock replaces time.Now. The clock's location decides the date key.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("attendance.service")
		}
	}
}

func WithCache(rdb *redis.Client) Option {
	return func(s *service) { s.rdb = rdb }
}

func WithOutbox(outbox kafka.OutboxRepository) Option {
	return func(s *service) { s.outbox = outbox }
}

type service struct {
	db     *gorm.DB
	roster roster.Repository
	repo   Repository
	fence  geofence.Fence
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *gorm.DB, rosterRepo roster.Repository, repo Repository, fence geofence.Fence, opts ...Option) Service {
	s := &service{
		db:     db,
		roster: rosterRepo,
		repo:   repo,
		fence:  fence,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: zap.L().Named("attendance.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("attendance submit requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
	)

	identity, err := s.roster.Find(ctx, req.EmployeeID, req.Name)
	if err != nil {
		if isNotFound(err) {
			log.Warn("attendance submit unknown identity",
				zap.String("request_id", rid),
				zap.String("employee_id", req.EmployeeID),
			)
			return SubmitResponse{}, attendanceerrors.ErrUnknownIdentity
		}
		log.Error("attendance submit roster lookup failed", zap.String("request_id", rid), zap.Error(err))
		return SubmitResponse{}, err
	}

	if req.Latitude == nil || req.Longitude == nil {
		return SubmitResponse{}, attendanceerrors.ErrInvalidReading
	}
	reading := geofence.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if err := reading.Validate(); err != nil {
		log.Warn("attendance submit invalid reading",
			zap.String("request_id", rid),
			zap.String("employee_id", identity.ID),
			zap.Error(err),
		)
		return SubmitResponse{}, attendanceerrors.ErrInvalidReading.WithDetails(err.Error())
	}

	distance, inside := s.fence.Check(reading)
	distanceKm := geofence.Round(distance, 3)
	if !inside {
		log.Info("attendance submit outside geofence",
			zap.String("request_id", rid),
			zap.String("employee_id", identity.ID),
			zap.Float64("distance_km", distanceKm),
			zap.Float64("radius_km", s.fence.RadiusKm),
		)
		return SubmitResponse{}, attendanceerrors.OutsideGeofence(distanceKm, s.fence.RadiusKm)
	}

	now := s.now()
	date := now.Format(DateLayout)

	var (
		rec    *Record
		action string
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		current, err := qtx.Get(ctx, identity.ID, date)
		if err != nil && !isNotFound(err) {
			return err
		}
		if err != nil {
			current = nil
		}

		state := StateOf(current)
		if _, ok := state.Next(); !ok {
			return attendanceerrors.ErrAlreadyCompleted
		}

		switch state {
		case StateNotStarted:
			rec, err = qtx.InsertLogin(ctx, identity.ID, identity.Name, date, now)
			if err != nil {
				return err
			}
			action = ActionLogin
		case StateLoggedIn:
			if !now.After(current.LoginTime) {
				log.Error("attendance submit logout not after login",
					zap.String("request_id", rid),
					zap.String("employee_id", identity.ID),
					zap.Time("login_time", current.LoginTime),
					zap.Time("logout_time", now),
				)
				return attendanceerrors.ErrInvalidTimeOrder
			}
			hours := hoursBetween(current.LoginTime, now)
			if err := qtx.UpdateLogout(ctx, identity.ID, date, now, hours); err != nil {
				return err
			}
			closed := *current
			closed.LogoutTime = &now
			closed.HoursWorked = &hours
			rec = &closed
			action = ActionLogout
		}

		if s.outbox != nil {
			return s.enqueue(ctx, tx, rid, action, rec, distanceKm, now)
		}
		return nil
	})
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, attendanceerrors.ErrConcurrentSubmission) {
			log.Warn("attendance submit lost race",
				zap.String("request_id", rid),
				zap.String("employee_id", identity.ID),
				zap.Error(err),
			)
		} else if !isExpected(mapped) {
			log.Error("attendance submit failed", zap.String("request_id", rid), zap.Error(err))
		}
		return SubmitResponse{}, mapped
	}

	s.invalidate(ctx, date)

	resp := SubmitResponse{
		Action:     action,
		State:      StateOf(rec).String(),
		EmployeeID: identity.ID,
		Name:       identity.Name,
		Date:       date,
		Time:       now.Format("15:04:05"),
		RecordedAt: now.Format(TimeLayout),
		DistanceKm: distanceKm,
	}
	if action == ActionLogout {
		resp.HoursWorked = rec.HoursWorked
	}

	log.Info("attendance submit recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", identity.ID),
		zap.String("action", action),
		zap.String("date", date),
		zap.Float64("distance_km", distanceKm),
	)
	return resp, nil
}

func (s *service) enqueue(ctx context.Context, tx *gorm.DB, rid, action string, rec *Record, distanceKm float64, now time.Time) error {
	eventType := events.AttendanceLoginRecorded
	if action == ActionLogout {
		eventType = events.AttendanceLogoutRecorded
	}

	payload, err := json.Marshal(events.AttendanceRecordedEvent{
		EventType:   eventType,
		RequestID:   rid,
		EmployeeID:  rec.EmployeeID,
		Name:        rec.Name,
		Date:        rec.Date,
		LoginTime:   rec.LoginTime.UTC(),
		LogoutTime:  utcPtr(rec.LogoutTime),
		HoursWorked: rec.HoursWorked,
		DistanceKm:  distanceKm,
		OccurredAt:  now.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal attendance event: %w", err)
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "attendance",
		AggregateID:   rec.EmployeeID,
		EventType:     eventType,
		Topic:         events.AttendanceRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidate(ctx context.Context, date string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetDailyReportKey(date)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate daily attendance cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func (s *service) Today(ctx context.Context) ([]DailyAttendanceRow, error) {
	return s.ListForDate(ctx, s.now().Format(DateLayout))
}

// ListForDate returns the day's report in insertion order. An empty date
// means today.
func (s *service) ListForDate(ctx context.Context, date string) ([]DailyAttendanceRow, error) {
	if date == "" {
		date = s.now().Format(DateLayout)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}

	cacheKey := GetDailyReportKey(date)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			var rows []DailyAttendanceRow
			if json.Unmarshal([]byte(cached), &rows) == nil {
				return rows, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("daily attendance cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		records, err := s.repo.ListForDate(ctx, date)
		if err != nil {
			return nil, err
		}

		rows := s.toRows(records)

		if s.rdb != nil {
			if data, err := json.Marshal(rows); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(data), dailyReportTTL).Err(); err != nil {
					s.logger.Warn("daily attendance cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return rows, nil
	})
	if err != nil {
		s.logger.Error("list attendance for date failed", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	return v.([]DailyAttendanceRow), nil
}

func (s *service) toRows(records []Record) []DailyAttendanceRow {
	loc := s.now().Location()
	rows := make([]DailyAttendanceRow, 0, len(records))
	for _, rec := range records {
		row := DailyAttendanceRow{
			ID:          rec.EmployeeID,
			Name:        rec.Name,
			LoginTime:   rec.LoginTime.In(loc).Format(TimeLayout),
			LogoutTime:  missingValue,
			HoursWorked: missingValue,
		}
		if rec.LogoutTime != nil {
			row.LogoutTime = rec.LogoutTime.In(loc).Format(TimeLayout)
		}
		if rec.HoursWorked != nil {
			row.HoursWorked = fmt.Sprintf("%.2f", *rec.HoursWorked)
		}
		rows = append(rows, row)
	}
	return rows
}

// hoursBetween is the elapsed time in hours rounded to two decimals.
func hoursBetween(from, to time.Time) float64 {
	return math.Round(to.Sub(from).Hours()*100) / 100
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func isExpected(err error) bool {
	return errors.Is(err, attendanceerrors.ErrAlreadyCompleted) ||
		errors.Is(err, attendanceerrors.ErrInvalidTimeOrder)
}
