package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service and database health.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check returns 200 while the database answers pings.
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	overall := "ok"
	status := 200
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}
	if dbStatus != "ok" {
		overall = "unhealthy"
		status = 503
	}

	c.JSON(status, gin.H{
		"status":   overall,
		"service":  "authgate",
		"database": dbStatus,
	})
}
