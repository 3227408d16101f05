package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"kintai/kintai"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	service kintai.AttendanceService
	logger  *slog.Logger
}

func NewAttendanceHandler(service kintai.AttendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{service: service, logger: logger}
}

// punchRequest is the body of all four mutating calls. user_id arrives
// already authenticated by the upstream layer; the core only trusts it.
type punchRequest struct {
	UserID    string  `json:"user_id" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	h.punch(c, h.service.ClockIn, "clocked in successfully")
}

func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	h.punch(c, h.service.ClockOut, "clocked out successfully")
}

func (h *AttendanceHandler) StartBreak(c *gin.Context) {
	h.punch(c, h.service.StartBreak, "break started successfully")
}

func (h *AttendanceHandler) EndBreak(c *gin.Context) {
	h.punch(c, h.service.EndBreak, "break ended successfully")
}

func (h *AttendanceHandler) punch(c *gin.Context, op func(string, float64, float64) (*kintai.AttendanceRecord, error), message string) {
	var req punchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}

	rec, err := op(req.UserID, req.Latitude, req.Longitude)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "data": rec})
}

func (h *AttendanceHandler) Report(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	start, err := kintai.ParseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := kintai.ParseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.GetReport(userID, start, end)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "attendance report fetched successfully", "data": report})
}

func (h *AttendanceHandler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, kintai.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, kintai.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, kintai.ErrInvalidRange):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("attendance operation failed",
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()),
		)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
