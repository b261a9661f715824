package handlers

import (
	"net/http"

	"floormatch/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last dependency health snapshot. The service answers
// even when Redis is down since distances degrade to the fallback.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.CheckedAt.IsZero() && !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    http.StatusText(code),
		"message":   "Hi, I'm floormatch",
		"mongo":     status.Mongo,
		"redis":     status.Redis,
		"checkedAt": status.CheckedAt,
	})
}
