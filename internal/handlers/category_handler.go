package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/joshua-takyi/kedai/internal/services"
)

func CreateCategory(s *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := c.ShouldBindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		created, err := s.Create(c.Request.Context(), &category)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Category created successfully"))
	}
}

func GetCategories(s *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := s.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(categories, ""))
	}
}
