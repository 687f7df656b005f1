package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/kedai/internal/apperr"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/joshua-takyi/kedai/internal/services"
	"github.com/joshua-takyi/kedai/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memProductRepo struct {
	views []*models.ProductView

	lastSkip  int64
	lastLimit int64
}

func (r *memProductRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	return product, nil
}

func (r *memProductRepo) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	for _, v := range r.views {
		if v.ID == id {
			return &models.Product{ID: v.ID, Name: v.Name, Price: v.Price}, nil
		}
	}
	return nil, apperr.NotFound("product not found")
}

func (r *memProductRepo) ListProducts(ctx context.Context, filter models.ProductFilter, skip, limit int64) ([]*models.ProductView, error) {
	r.lastSkip = skip
	r.lastLimit = limit
	if skip >= int64(len(r.views)) {
		return []*models.ProductView{}, nil
	}
	end := int64(len(r.views))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return r.views[skip:end], nil
}

func (r *memProductRepo) CountProducts(ctx context.Context, filter models.ProductFilter) (int64, error) {
	return int64(len(r.views)), nil
}

func (r *memProductRepo) UpdateProduct(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error) {
	return nil, apperr.NotFound("product not found")
}

func (r *memProductRepo) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	for i, v := range r.views {
		if v.ID == id {
			r.views = append(r.views[:i], r.views[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("product not found")
}

type memCategoryRepo struct{}

func (memCategoryRepo) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	return category, nil
}

func (memCategoryRepo) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return nil, apperr.NotFound("category not found")
}

func (memCategoryRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return nil, apperr.NotFound("category not found")
}

func (memCategoryRepo) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return []*models.Category{}, nil
}

func productRouter(t *testing.T, repo *memProductRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	images := storage.NewImageStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ps := services.NewProductService(repo, memCategoryRepo{}, images)

	r := gin.New()
	products := r.Group("/api/v1/products")
	{
		products.GET("/", GetProducts(ps))
		products.DELETE("/:id", DeleteProduct(ps))
	}
	return r
}

func seededViews(n int) []*models.ProductView {
	views := make([]*models.ProductView, 0, n)
	for i := 0; i < n; i++ {
		views = append(views, &models.ProductView{ID: primitive.NewObjectID(), Name: "Latte", Price: 2.5})
	}
	return views
}

func TestGetProducts_PaginatedEnvelope(t *testing.T) {
	repo := &memProductRepo{views: seededViews(12)}
	r := productRouter(t, repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/?page=2&limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
		Page    int               `json:"page"`
		Limit   int               `json:"limit"`
		Total   int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 5, res.Limit)
	assert.Equal(t, 12, res.Total)
	assert.Len(t, res.Data, 5)
	assert.Equal(t, int64(5), repo.lastSkip)
}

func TestGetProducts_BadQueryFallsBack(t *testing.T) {
	repo := &memProductRepo{views: seededViews(3)}
	r := productRouter(t, repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/?page=zero&limit=-1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, services.DefaultPage, res.Page)
	assert.Equal(t, services.DefaultLimit, res.Limit)
	assert.Equal(t, 3, res.Total)
}

func TestDeleteProductHandler(t *testing.T) {
	repo := &memProductRepo{views: seededViews(1)}
	r := productRouter(t, repo)
	id := repo.views[0].ID.Hex()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "Product deleted successfully")
	assert.Empty(t, repo.views)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
