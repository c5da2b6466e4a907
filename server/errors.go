package server

import (
	"errors"
	"net/http"

	"lottostore/domain/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError translates a domain error into an HTTP response
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrInvalidSelection),
		errors.Is(err, services.ErrInvalidRange),
		errors.Is(err, services.ErrBankInfoIncomplete):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUnknownGame):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyDrawn),
		errors.Is(err, services.ErrTransactionProcessed):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
			"error":      err,
		}).Error("Request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
