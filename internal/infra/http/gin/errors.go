package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"github.com/e1zenberg/java-shareit/internal/apperr"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

// writeError maps the service error taxonomy to transport failures.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// callerID resolves the acting user from the identity header; a missing
// header is a bad request, not an auth failure.
func callerID(c *gin.Context) (domainuser.ID, bool) {
	id := c.GetHeader(callerHeader)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": callerHeader + " header is required"})
		return "", false
	}
	return domainuser.ID(id), true
}

func pageParams(c *gin.Context) (int, int, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be an integer"})
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'size' must be an integer"})
		return 0, 0, false
	}
	return from, size, true
}
