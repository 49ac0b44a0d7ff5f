package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root godoc
// @Summary Liveness check
// @Tags public
// @Produce plain
// @Success 200 {string} string "running"
// @Router / [get]
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Tractor Tracker backend is running")
}
