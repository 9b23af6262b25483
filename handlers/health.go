package handlers

import (
	"net/http"

	"flupp/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health. It always answers quickly from the
// in-memory snapshot maintained by the health monitor.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"dependencies": utils.GetHealthStatus(),
	})
}
