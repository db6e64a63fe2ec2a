package attendance

import (
	"net/http"

	"go-geoattend/internal/shared/apperror"
	"go-geoattend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultReportPageSize = 50

type Handler struct {
	service       Service
	enrollmentURL string
	logger        *zap.Logger
}

func NewHandler(service Service, enrollmentURL string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, enrollmentURL: enrollmentURL, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Submit records a login (201) or a logout (200).
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit attendance validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Action == ActionLogin {
		status = http.StatusCreated
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) Daily(c *gin.Context) {
	var q DailyAttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	rows, err := h.service.ListForDate(c.Request.Context(), q.Date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(rows, q.Page, q.Limit, defaultReportPageSize)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) Export(c *gin.Context) {
	date := c.Query("date")
	rows, err := h.service.ListForDate(c.Request.Context(), date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	data, err := ExportXLSX(rows)
	if err != nil {
		h.logger.Error("export attendance failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	if date == "" {
		date = "today"
	}
	response.Attachment(c, ExportFileName(date), ExportContentType, data)
}

func (h *Handler) Enrollment(c *gin.Context) {
	response.Success(c, http.StatusOK, EnrollmentResponse{URL: h.enrollmentURL}, nil)
}
