package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/kedai/internal/apperr"
	"github.com/joshua-takyi/kedai/internal/models"
)

// respondError translates an application error into its HTTP status at the
// handler boundary.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
}
