package services

import (
	"context"

	"github.com/joshua-takyi/kedai/internal/apperr"
	"github.com/joshua-takyi/kedai/internal/models"
)

type CategoryService struct {
	categoryRepo models.CategoryRepo
}

func NewCategoryService(categoryRepo models.CategoryRepo) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

func (cs *CategoryService) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := models.Validate.Struct(category); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	return cs.categoryRepo.CreateCategory(ctx, category)
}

func (cs *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return cs.categoryRepo.ListCategories(ctx)
}
