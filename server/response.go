package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func errorJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string)  { errorJSON(c, http.StatusBadRequest, msg) }
func notFound(c *gin.Context, msg string)    { errorJSON(c, http.StatusNotFound, msg) }
func conflict(c *gin.Context, msg string)    { errorJSON(c, http.StatusConflict, msg) }
func unavailable(c *gin.Context, msg string) { errorJSON(c, http.StatusServiceUnavailable, msg) }
func badGateway(c *gin.Context, msg string)  { errorJSON(c, http.StatusBadGateway, msg) }
func internal(c *gin.Context, msg string)    { errorJSON(c, http.StatusInternalServerError, msg) }

func pngData(c *gin.Context, data []byte) {
	c.Data(http.StatusOK, "image/png", data)
}
