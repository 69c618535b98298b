package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// bindingError renders a validation failure as a 400 with per-field
// messages. Nothing has been persisted when this is called.
func bindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = "failed on " + fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
}

// notFoundOr maps a missing record to 404 and anything else to 500.
func notFoundOr(c *gin.Context, err error, what string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an optional integer query parameter; junk counts as absent.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// statusIn returns s when it is one of allowed, otherwise "" so junk
// enum parameters fall back to "no filter".
func statusIn(s string, allowed ...string) string {
	for _, a := range allowed {
		if s == a {
			return a
		}
	}
	return ""
}

// queryDate reads an optional YYYY-MM-DD query parameter; junk counts
// as absent, never as an error.
func queryDate(c *gin.Context, key string) time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(c.Query(key)))
	if err != nil {
		return time.Time{}
	}
	return t
}
