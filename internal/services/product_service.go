package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/joshua-takyi/kedai/internal/apperr"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/joshua-takyi/kedai/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type ProductService struct {
	productRepo  models.ProductRepo
	categoryRepo models.CategoryRepo
	images       *storage.ImageStore
}

func NewProductService(productRepo models.ProductRepo, categoryRepo models.CategoryRepo, images *storage.ImageStore) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		images:       images,
	}
}

func priceRangeFromPair(pair []float64) (*models.PriceRange, error) {
	if len(pair) == 0 {
		return nil, nil
	}
	if len(pair) != 2 {
		return nil, apperr.Validation("priceRange must contain exactly two numbers")
	}
	if pair[0] > pair[1] {
		return nil, apperr.Validation("priceRange min must not exceed max")
	}
	return &models.PriceRange{Min: pair[0], Max: pair[1]}, nil
}

// Create validates the form fields, resolves the category, stores an
// uploaded image under the category's subdirectory and persists the product.
func (ps *ProductService) Create(ctx context.Context, input models.CreateProductInput, image *multipart.FileHeader) (*models.Product, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	priceRange, err := priceRangeFromPair(input.PriceRange)
	if err != nil {
		return nil, err
	}

	categoryID, err := primitive.ObjectIDFromHex(strings.TrimSpace(input.Category))
	if err != nil {
		return nil, apperr.Validation("invalid category ID")
	}

	category, err := ps.categoryRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Validation("category not found")
		}
		return nil, err
	}

	imageURL := ""
	if image != nil {
		imageURL, err = ps.images.Save(image, category.Slug)
		if err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		PriceRange:  priceRange,
		ImageURL:    imageURL,
		CategoryID:  categoryID,
		Featured:    input.Featured,
	}

	return ps.productRepo.CreateProduct(ctx, product)
}

// List returns a page of products with categories expanded, plus the total
// match count for pagination metadata. A category query that is not a valid
// identifier is ignored silently.
func (ps *ProductService) List(ctx context.Context, category string, page, limit int) ([]*models.ProductView, int64, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	filter := models.ProductFilter{}
	if category = strings.TrimSpace(category); category != "" {
		if id, err := primitive.ObjectIDFromHex(category); err == nil {
			filter.CategoryID = &id
		}
	}

	total, err := ps.productRepo.CountProducts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((page - 1) * limit)
	products, err := ps.productRepo.ListProducts(ctx, filter, skip, int64(limit))
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (ps *ProductService) ListByCategorySlug(ctx context.Context, slug string) ([]*models.ProductView, error) {
	category, err := ps.categoryRepo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	filter := models.ProductFilter{CategoryID: &category.ID}
	return ps.productRepo.ListProducts(ctx, filter, 0, 0)
}

func (ps *ProductService) ListFeatured(ctx context.Context) ([]*models.ProductView, error) {
	featured := true
	return ps.productRepo.ListProducts(ctx, models.ProductFilter{Featured: &featured}, 0, 0)
}

// UpdateProductInput carries the optional fields of a partial update; nil
// pointers leave the stored value untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	PriceRange  []float64
	Category    *string
	Featured    *bool
}

// Update overwrites the provided fields. A newly uploaded image replaces the
// stored one, deleting the old file best-effort.
func (ps *ProductService) Update(ctx context.Context, id string, input UpdateProductInput, image *multipart.FileHeader) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, apperr.Validation("invalid product ID")
	}

	existing, err := ps.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.Featured != nil {
		fields["featured"] = *input.Featured
	}
	if input.PriceRange != nil {
		priceRange, err := priceRangeFromPair(input.PriceRange)
		if err != nil {
			return nil, err
		}
		fields["price_range"] = priceRange
	}

	categoryID := existing.CategoryID
	var category *models.Category
	if input.Category != nil {
		categoryID, err = primitive.ObjectIDFromHex(strings.TrimSpace(*input.Category))
		if err != nil {
			return nil, apperr.Validation("invalid category ID")
		}
		category, err = ps.categoryRepo.GetCategoryByID(ctx, categoryID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return nil, apperr.Validation("category not found")
			}
			return nil, err
		}
		fields["category"] = categoryID
	}

	if image != nil {
		if category == nil {
			category, _ = ps.categoryRepo.GetCategoryByID(ctx, categoryID)
		}
		folder := "uncategorized"
		if category != nil {
			folder = category.Slug
		}
		imageURL, err := ps.images.Save(image, folder)
		if err != nil {
			return nil, err
		}
		ps.images.Remove(existing.ImageURL)
		fields["image_url"] = imageURL
	}

	if len(fields) == 0 {
		return existing, nil
	}

	return ps.productRepo.UpdateProduct(ctx, productID, fields)
}

// Delete removes the record and its stored image. The image deletion is
// best-effort; a product without an image skips the file operation.
func (ps *ProductService) Delete(ctx context.Context, id string) error {
	productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return apperr.Validation("invalid product ID")
	}

	existing, err := ps.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}

	ps.images.Remove(existing.ImageURL)

	return ps.productRepo.DeleteProduct(ctx, productID)
}
