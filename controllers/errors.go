package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"residence-backend/services"

	"github.com/gin-gonic/gin"
	mysql "github.com/go-sql-driver/mysql"
)

// respondServiceError translates service sentinels into HTTP statuses. The
// error body keeps the {"detail": ...} shape the frontend already consumes.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, services.ErrNotEditable):
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
	case isForeignKeyError(err):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "referenced record does not exist"})
	default:
		log.Printf("❌ Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

// isForeignKeyError detects a MySQL foreign key violation (errno 1452); on
// SQLite the driver only exposes the message text.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1452
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

func respondBadPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid payload: " + err.Error()})
}
