package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoot serves the informational API index.
func RegisterRoot(r gin.IRouter, serviceName, version string) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":     serviceName,
			"version":  version,
			"features": []string{"tco"},
		})
	})
}
