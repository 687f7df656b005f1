package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/kedai/internal/helpers"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/joshua-takyi/kedai/internal/services"
)

func parsePriceRange(raw string) ([]float64, bool) {
	if raw == "" {
		return nil, true
	}
	var pair []float64
	if err := json.Unmarshal([]byte(raw), &pair); err != nil {
		return nil, false
	}
	return pair, true
}

func CreateProduct(p *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		price, err := strconv.ParseFloat(c.PostForm("price"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("price must be a number"))
			return
		}

		priceRange, ok := parsePriceRange(c.PostForm("priceRange"))
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("priceRange must be a JSON array of two numbers"))
			return
		}

		input := models.CreateProductInput{
			Name:        c.PostForm("name"),
			Description: c.PostForm("description"),
			Price:       price,
			Category:    c.PostForm("category"),
			PriceRange:  priceRange,
			Featured:    c.PostForm("featured") == "true",
		}

		image, err := c.FormFile("image")
		if err != nil {
			image = nil
		}

		product, err := p.Create(c.Request.Context(), input, image)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(product, "Product created successfully"))
	}
}

func GetProducts(p *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = services.DefaultPage
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = services.DefaultLimit
		}

		products, total, err := p.List(c.Request.Context(), c.Query("category"), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.PaginatedResponse(products, page, limit, int(total)))
	}
}

func GetProductsByCategory(p *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := p.ListByCategorySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(products, ""))
	}
}

func GetFeaturedProducts(p *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := p.ListFeatured(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(products, ""))
	}
}

func UpdateProduct(p *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.UpdateProductInput

		if v, ok := c.GetPostForm("name"); ok {
			input.Name = &v
		}
		if v, ok := c.GetPostForm("description"); ok {
			input.Description = &v
		}
		if v, ok := c.GetPostForm("price"); ok {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("price must be a number"))
				return
			}
			input.Price = &price
		}
		if v, ok := c.GetPostForm("priceRange"); ok {
			pair, ok := parsePriceRange(v)
			if !ok {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("priceRange must be a JSON array of two numbers"))
				return
			}
			input.PriceRange = pair
		}
		if v, ok := c.GetPostForm("category"); ok {
			input.Category = &v
		}
		if v, ok := c.GetPostForm("featured"); ok {
			featured := v == "true"
			input.Featured = &featured
		}

		image, err := c.FormFile("image")
		if err != nil {
			image = nil
		}

		product, err := p.Update(c.Request.Context(), helpers.StringTrim(c.Param("id")), input, image)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(product, "Product updated successfully"))
	}
}

func DeleteProduct(p *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := p.Delete(c.Request.Context(), helpers.StringTrim(c.Param("id"))); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Product deleted successfully"))
	}
}
