package handlers

import (
	"github.com/gin-gonic/gin"

	"mutual/loanlifecycle/internal/pkg/models"
)

// respondError maps a service error onto the REST contract body.
func respondError(c *gin.Context, err error) {
	de := models.AsDomainError(err)
	c.JSON(de.HTTPStatus(), gin.H{
		"code":    de.Code,
		"message": de.Message,
	})
}
