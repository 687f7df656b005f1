package middleware

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/kedai/internal/apperr"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/joshua-takyi/kedai/internal/moderation"
)

// ImageModeration gates the wrapped handler behind an external image
// classification. Requests without a file, with an unsafe image, or hitting
// a failing moderation backend are aborted before the handler runs — a
// moderation outage never lets an image through.
func ImageModeration(client moderation.Client, fileField string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile(fileField)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse("no image uploaded"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open uploaded image", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse("image moderation failed"))
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			logger.Error("Failed to read uploaded image", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse("image moderation failed"))
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		scores, err := client.Check(c.Request.Context(), data, fileHeader.Filename, contentType)
		if err != nil {
			logger.Error("Image moderation failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse("image moderation failed"))
			return
		}

		if scores.Unsafe() {
			rejected := apperr.ModerationRejected("inappropriate image detected")
			c.AbortWithStatusJSON(apperr.Status(rejected), models.ErrorResponse(rejected.Error()))
			return
		}

		c.Next()
	}
}
