package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/kedai/internal/container"
	"github.com/joshua-takyi/kedai/internal/handlers"
	"github.com/joshua-takyi/kedai/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// Stored images are served straight off disk
	r.Static("/public", container.Config.PublicDir)

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "kedai-api",
			})
		})
	}

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/signup", handlers.Signup(container.UserService))
		authRoutes.POST("/verify", handlers.VerifyCode(container.UserService))
		authRoutes.POST("/login", handlers.Login(container.UserService))
		authRoutes.POST("/resend-code", handlers.ResendCode(container.UserService))
		authRoutes.POST("/complete-registration", handlers.CompleteRegistration(container.UserService))
		authRoutes.POST("/complete-profile",
			middleware.ImageModeration(container.Moderation, "profileImage", container.Logger),
			handlers.CompleteProfile(container.UserService),
		)
	}

	productRoutes := v1.Group("/products")
	{
		productRoutes.POST("/", handlers.CreateProduct(container.ProductService))
		productRoutes.GET("/", handlers.GetProducts(container.ProductService))
		productRoutes.GET("/category/:slug", handlers.GetProductsByCategory(container.ProductService))
		productRoutes.GET("/featured", handlers.GetFeaturedProducts(container.ProductService))
		productRoutes.PUT("/:id", handlers.UpdateProduct(container.ProductService))
		productRoutes.DELETE("/:id", handlers.DeleteProduct(container.ProductService))
	}

	categoryRoutes := v1.Group("/categories")
	{
		categoryRoutes.POST("/", handlers.CreateCategory(container.CategoryService))
		categoryRoutes.GET("/", handlers.GetCategories(container.CategoryService))
	}

	return r
}
