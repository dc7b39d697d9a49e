package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler answers the root path, doubling as a liveness check.
func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "kinesiology scheduling API",
		"status":  "ok",
	})
}

// SetupRootRoute registers the root route.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
}
