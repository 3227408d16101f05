package httpapi

import (
	"log/slog"
	"net/http"

	"kintai/kintai"

	"github.com/gin-gonic/gin"
)

func NewRouter(service kintai.AttendanceService, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	h := NewAttendanceHandler(service, logger)

	r.POST("/clockin", h.ClockIn)
	r.POST("/clockout", h.ClockOut)
	r.POST("/breakstart", h.StartBreak)
	r.POST("/breakend", h.EndBreak)
	r.GET("/report", h.Report)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
