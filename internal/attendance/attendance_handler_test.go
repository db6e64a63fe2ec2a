package attendance_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-geoattend/internal/attendance"
	attendanceerrors "go-geoattend/internal/attendance/errors"
	attendancemock "go-geoattend/internal/attendance/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeAttendanceService struct {
	submitFn      func(ctx context.Context, req attendance.SubmitRequest) (attendance.SubmitResponse, error)
	listForDateFn func(ctx context.Context, date string) ([]attendance.DailyAttendanceRow, error)
}

func (f *fakeAttendanceService) Submit(ctx context.Context, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
	return f.submitFn(ctx, req)
}
func (f *fakeAttendanceService) ListForDate(ctx context.Context, date string) ([]attendance.DailyAttendanceRow, error) {
	return f.listForDateFn(ctx, date)
}
func (f *fakeAttendanceService) Today(ctx context.Context) ([]attendance.DailyAttendanceRow, error) {
	return f.listForDateFn(ctx, "")
}

func postSubmit(h *attendance.Handler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/submit", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)
	return w
}

const aliceBody = `{"employee_id":"101","name":"Alice Johnson","latitude":17.4435,"longitude":78.3772}`

func TestHandler_Submit(t *testing.T) {
	t.Run("login is 201", func(t *testing.T) {
		svc := &fakeAttendanceService{
			submitFn: func(_ context.Context, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
				assert.Equal(t, "101", req.EmployeeID)
				assert.Equal(t, "Alice Johnson", req.Name)
				require.NotNil(t, req.Latitude)
				assert.Equal(t, 17.4435, *req.Latitude)
				return attendance.SubmitResponse{Action: attendance.ActionLogin, EmployeeID: "101", Time: "09:00:00"}, nil
			},
		}

		w := postSubmit(attendance.NewHandler(svc, ""), aliceBody)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got attendance.SubmitResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "LOGIN", got.Action)
	})

	t.Run("logout is 200", func(t *testing.T) {
		hours := 8.5
		svc := &fakeAttendanceService{
			submitFn: func(context.Context, attendance.SubmitRequest) (attendance.SubmitResponse, error) {
				return attendance.SubmitResponse{Action: attendance.ActionLogout, HoursWorked: &hours}, nil
			},
		}

		w := postSubmit(attendance.NewHandler(svc, ""), aliceBody)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"hours_worked":8.5`)
	})

	t.Run("zero coordinates are accepted by binding", func(t *testing.T) {
		called := false
		svc := &fakeAttendanceService{
			submitFn: func(context.Context, attendance.SubmitRequest) (attendance.SubmitResponse, error) {
				called = true
				return attendance.SubmitResponse{}, attendanceerrors.OutsideGeofence(1900.123, 0.1)
			},
		}

		w := postSubmit(attendance.NewHandler(svc, ""), `{"employee_id":"101","name":"Alice Johnson","latitude":0,"longitude":0}`)

		assert.True(t, called)
		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "OUTSIDE_GEOFENCE", env.Error.Code)
		assert.JSONEq(t, `{"distance_km":1900.123,"radius_km":0.1}`, string(env.Error.Details))
	})

	t.Run("missing latitude", func(t *testing.T) {
		svc := &fakeAttendanceService{}
		w := postSubmit(attendance.NewHandler(svc, ""), `{"employee_id":"101","name":"Alice Johnson","longitude":78.3}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := postSubmit(attendance.NewHandler(&fakeAttendanceService{}, ""), `{"employee_id":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	mapped := []struct {
		err    error
		status int
		code   string
	}{
		{attendanceerrors.ErrUnknownIdentity, http.StatusNotFound, "UNKNOWN_IDENTITY"},
		{attendanceerrors.ErrAlreadyCompleted, http.StatusConflict, "ALREADY_COMPLETED"},
		{attendanceerrors.ErrInvalidTimeOrder, http.StatusUnprocessableEntity, "INVALID_TIME_ORDER"},
		{attendanceerrors.ErrConcurrentSubmission, http.StatusConflict, "CONFLICT"},
		{attendanceerrors.ErrInvalidReading, http.StatusBadRequest, "INVALID_INPUT"},
		{errors.New("database is locked"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range mapped {
		t.Run("maps "+tt.code, func(t *testing.T) {
			svc := &fakeAttendanceService{
				submitFn: func(context.Context, attendance.SubmitRequest) (attendance.SubmitResponse, error) {
					return attendance.SubmitResponse{}, tt.err
				},
			}

			w := postSubmit(attendance.NewHandler(svc, ""), aliceBody)

			assert.Equal(t, tt.status, w.Code)
			env := decodeEnvelope(t, w.Body.Bytes())
			assert.False(t, env.Ok)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func sampleRows(n int) []attendance.DailyAttendanceRow {
	rows := make([]attendance.DailyAttendanceRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, attendance.DailyAttendanceRow{ID: string(rune('A' + i)), Name: "x", LoginTime: "t", LogoutTime: "-", HoursWorked: "-"})
	}
	return rows
}

func TestHandler_Daily(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("paginates", func(t *testing.T) {
		svc := &fakeAttendanceService{
			listForDateFn: func(_ context.Context, date string) ([]attendance.DailyAttendanceRow, error) {
				assert.Equal(t, "2026-03-10", date)
				return sampleRows(5), nil
			},
		}
		h := attendance.NewHandler(svc, "")

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/attendance?date=2026-03-10&page=2&limit=2", nil)
		h.Daily(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var rows []attendance.DailyAttendanceRow
		require.NoError(t, json.Unmarshal(env.Data, &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "C", rows[0].ID)
		assert.JSONEq(t, `{"total":5,"totalPages":3,"page":2,"pageSize":2}`, string(env.Meta))
	})

	t.Run("empty day returns an empty list", func(t *testing.T) {
		svc := &fakeAttendanceService{
			listForDateFn: func(context.Context, string) ([]attendance.DailyAttendanceRow, error) {
				return []attendance.DailyAttendanceRow{}, nil
			},
		}
		h := attendance.NewHandler(svc, "")

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/attendance", nil)
		h.Daily(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := &fakeAttendanceService{
			listForDateFn: func(context.Context, string) ([]attendance.DailyAttendanceRow, error) {
				return nil, attendanceerrors.ErrInvalidDate
			},
		}
		h := attendance.NewHandler(svc, "")

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/attendance?date=yesterday", nil)
		h.Daily(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Export(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAttendanceService{
		listForDateFn: func(context.Context, string) ([]attendance.DailyAttendanceRow, error) {
			return sampleRows(2), nil
		},
	}
	h := attendance.NewHandler(svc, "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/attendance/export?date=2026-03-10", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, attendance.ExportContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance-2026-03-10.xlsx"`, w.Header().Get("Content-Disposition"))
	// xlsx files are zip archives
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestHandler_Enrollment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeAttendanceService{}, "https://attendance.example.com/")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/enrollment", nil)
	h.Enrollment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"url":"https://attendance.example.com/"}}`, w.Body.String())
}

func TestHandler_ExportErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := attendancemock.NewMockService(ctrl)
	h := attendance.NewHandler(svc, "")

	t.Run("invalid date", func(t *testing.T) {
		svc.EXPECT().ListForDate(gomock.Any(), "10/03/2026").Return(nil, attendanceerrors.ErrInvalidDate)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/attendance/export?date=10/03/2026", nil)
		h.Export(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Header().Get("Content-Disposition"))
	})

	t.Run("store failure", func(t *testing.T) {
		svc.EXPECT().ListForDate(gomock.Any(), "").Return(nil, errors.New("database is locked"))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/attendance/export", nil)
		h.Export(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database is locked")
	})

	t.Run("default date names the file after today", func(t *testing.T) {
		svc.EXPECT().ListForDate(gomock.Any(), "").Return([]attendance.DailyAttendanceRow{}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/attendance/export", nil)
		h.Export(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="attendance-today.xlsx"`, w.Header().Get("Content-Disposition"))
	})
}
