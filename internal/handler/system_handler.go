package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck 检查 SQLite 是否可用，供 /healthz 探活
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "habit store not initialized",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		log.Printf("[health] request=%s ping sqlite: %v", requestID(c), err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "habit store unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "mindfulme",
		"store":   "sqlite",
	})
}
