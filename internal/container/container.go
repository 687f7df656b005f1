package container

import (
	"log/slog"

	"github.com/joshua-takyi/kedai/internal/config"
	"github.com/joshua-takyi/kedai/internal/mailer"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/joshua-takyi/kedai/internal/moderation"
	"github.com/joshua-takyi/kedai/internal/services"
	"github.com/joshua-takyi/kedai/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	MongoDBClient *mongo.Client
	Moderation    moderation.Client
	Images        *storage.ImageStore

	UserService     *services.UserService
	ProductService  *services.ProductService
	CategoryService *services.CategoryService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	m mailer.Mailer,
	moderationClient moderation.Client,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)
	images := storage.NewImageStore(cfg.PublicDir, logger)

	userService := services.NewUserService(repo, m, images, cfg.JWTSecret)
	productService := services.NewProductService(repo, repo, images)
	categoryService := services.NewCategoryService(repo)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		MongoDBClient:   mongoDBClient,
		Moderation:      moderationClient,
		Images:          images,
		UserService:     userService,
		ProductService:  productService,
		CategoryService: categoryService,
	}
}
