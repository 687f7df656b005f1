package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshua-takyi/kedai/internal/apperr"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/joshua-takyi/kedai/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProductRepo struct {
	products map[primitive.ObjectID]*models.Product

	lastFilter models.ProductFilter
	lastSkip   int64
	lastLimit  int64
	listResult []*models.ProductView
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[primitive.ObjectID]*models.Product{}}
}

func (r *fakeProductRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	cp := *product
	r.products[product.ID] = &cp
	return product, nil
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product not found")
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListProducts(ctx context.Context, filter models.ProductFilter, skip, limit int64) ([]*models.ProductView, error) {
	r.lastFilter = filter
	r.lastSkip = skip
	r.lastLimit = limit
	return r.listResult, nil
}

func (r *fakeProductRepo) CountProducts(ctx context.Context, filter models.ProductFilter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("product not found")
	}
	if v, ok := fields["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		p.Description = v.(string)
	}
	if v, ok := fields["price"]; ok {
		p.Price = v.(float64)
	}
	if v, ok := fields["featured"]; ok {
		p.Featured = v.(bool)
	}
	if v, ok := fields["price_range"]; ok {
		p.PriceRange, _ = v.(*models.PriceRange)
	}
	if v, ok := fields["category"]; ok {
		p.CategoryID = v.(primitive.ObjectID)
	}
	if v, ok := fields["image_url"]; ok {
		p.ImageURL = v.(string)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.products[id]; !ok {
		return apperr.NotFound("product not found")
	}
	delete(r.products, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[primitive.ObjectID]*models.Category
	byIDCalls  int
}

func newFakeCategoryRepo(categories ...*models.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[primitive.ObjectID]*models.Category{}}
	for _, c := range categories {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	r.categories[category.ID] = category
	return category, nil
}

func (r *fakeCategoryRepo) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	r.byIDCalls++
	c, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}
	return c, nil
}

func (r *fakeCategoryRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperr.NotFound("category not found")
}

func (r *fakeCategoryRepo) ListCategories(ctx context.Context) ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

// uploadFile builds a *multipart.FileHeader the way gin receives one.
func uploadFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("image")
	require.NoError(t, err)
	return header
}

func newProductService(t *testing.T) (*ProductService, *fakeProductRepo, *fakeCategoryRepo, *models.Category, string) {
	t.Helper()
	root := t.TempDir()
	category := &models.Category{Name: "Coffee", Slug: "coffee"}
	productRepo := newFakeProductRepo()
	categoryRepo := newFakeCategoryRepo(category)
	images := storage.NewImageStore(root, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewProductService(productRepo, categoryRepo, images), productRepo, categoryRepo, category, root
}

func TestProductCreate(t *testing.T) {
	ps, productRepo, _, category, root := newProductService(t)

	t.Run("missing name", func(t *testing.T) {
		_, err := ps.Create(context.Background(), models.CreateProductInput{
			Price:    2.5,
			Category: category.ID.Hex(),
		}, nil)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("invalid category id", func(t *testing.T) {
		_, err := ps.Create(context.Background(), models.CreateProductInput{
			Name:     "Latte",
			Price:    2.5,
			Category: "not-hex",
		}, nil)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := ps.Create(context.Background(), models.CreateProductInput{
			Name:     "Latte",
			Price:    2.5,
			Category: primitive.NewObjectID().Hex(),
		}, nil)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.Contains(t, err.Error(), "category not found")
	})

	t.Run("free product", func(t *testing.T) {
		created, err := ps.Create(context.Background(), models.CreateProductInput{
			Name:     "Tap Water",
			Price:    0,
			Category: category.ID.Hex(),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, created.Price)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := ps.Create(context.Background(), models.CreateProductInput{
			Name:     "Latte",
			Price:    -1,
			Category: category.ID.Hex(),
		}, nil)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("bad price range", func(t *testing.T) {
		_, err := ps.Create(context.Background(), models.CreateProductInput{
			Name:       "Latte",
			Price:      2.5,
			Category:   category.ID.Hex(),
			PriceRange: []float64{5, 2},
		}, nil)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("stores image under category slug", func(t *testing.T) {
		image := uploadFile(t, "latte.jpg", []byte("jpeg-bytes"))
		created, err := ps.Create(context.Background(), models.CreateProductInput{
			Name:       "Latte",
			Price:      2.5,
			Category:   category.ID.Hex(),
			PriceRange: []float64{2, 4},
			Featured:   true,
		}, image)
		require.NoError(t, err)

		assert.Equal(t, category.ID, created.CategoryID)
		require.NotNil(t, created.PriceRange)
		assert.Equal(t, 2.0, created.PriceRange.Min)
		assert.Equal(t, 4.0, created.PriceRange.Max)
		assert.Regexp(t, `^images/coffee/image-\d+-[0-9a-f]{8}\.jpg$`, created.ImageURL)

		_, err = os.Stat(filepath.Join(root, filepath.FromSlash(created.ImageURL)))
		require.NoError(t, err)
		assert.Contains(t, productRepo.products, created.ID)
	})
}

func TestProductList_Pagination(t *testing.T) {
	ps, productRepo, _, category, _ := newProductService(t)

	_, err := ps.Create(context.Background(), models.CreateProductInput{
		Name:     "Latte",
		Price:    2.5,
		Category: category.ID.Hex(),
	}, nil)
	require.NoError(t, err)

	_, total, err := ps.List(context.Background(), "", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), productRepo.lastSkip)
	assert.Equal(t, int64(10), productRepo.lastLimit)
	assert.Equal(t, int64(1), total)
	assert.Nil(t, productRepo.lastFilter.CategoryID)

	// Bad paging input falls back to the defaults.
	_, _, err = ps.List(context.Background(), "", 0, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), productRepo.lastSkip)
	assert.Equal(t, int64(DefaultLimit), productRepo.lastLimit)

	// A malformed category query is ignored rather than rejected.
	_, _, err = ps.List(context.Background(), "not-hex", 1, 5)
	require.NoError(t, err)
	assert.Nil(t, productRepo.lastFilter.CategoryID)

	_, _, err = ps.List(context.Background(), category.ID.Hex(), 1, 5)
	require.NoError(t, err)
	require.NotNil(t, productRepo.lastFilter.CategoryID)
	assert.Equal(t, category.ID, *productRepo.lastFilter.CategoryID)
}

func TestProductListByCategorySlug(t *testing.T) {
	ps, productRepo, _, category, _ := newProductService(t)

	_, err := ps.ListByCategorySlug(context.Background(), "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = ps.ListByCategorySlug(context.Background(), "coffee")
	require.NoError(t, err)
	require.NotNil(t, productRepo.lastFilter.CategoryID)
	assert.Equal(t, category.ID, *productRepo.lastFilter.CategoryID)
	assert.Equal(t, int64(0), productRepo.lastLimit, "slug listing is unpaginated")
}

func TestProductListFeatured(t *testing.T) {
	ps, productRepo, _, _, _ := newProductService(t)

	_, err := ps.ListFeatured(context.Background())
	require.NoError(t, err)
	require.NotNil(t, productRepo.lastFilter.Featured)
	assert.True(t, *productRepo.lastFilter.Featured)
}

func TestProductUpdate(t *testing.T) {
	ps, _, categoryRepo, category, root := newProductService(t)

	image := uploadFile(t, "original.png", []byte("png-bytes"))
	created, err := ps.Create(context.Background(), models.CreateProductInput{
		Name:     "Latte",
		Price:    2.5,
		Category: category.ID.Hex(),
	}, image)
	require.NoError(t, err)
	oldPath := filepath.Join(root, filepath.FromSlash(created.ImageURL))

	t.Run("invalid id", func(t *testing.T) {
		_, err := ps.Update(context.Background(), "not-hex", UpdateProductInput{}, nil)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := ps.Update(context.Background(), primitive.NewObjectID().Hex(), UpdateProductInput{}, nil)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("empty update returns existing", func(t *testing.T) {
		got, err := ps.Update(context.Background(), created.ID.Hex(), UpdateProductInput{}, nil)
		require.NoError(t, err)
		assert.Equal(t, created.Name, got.Name)
	})

	t.Run("partial fields", func(t *testing.T) {
		name := "Iced Latte"
		price := 3.0
		got, err := ps.Update(context.Background(), created.ID.Hex(), UpdateProductInput{
			Name:  &name,
			Price: &price,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Iced Latte", got.Name)
		assert.Equal(t, 3.0, got.Price)
		assert.Equal(t, created.ImageURL, got.ImageURL, "image untouched without a new upload")
	})

	t.Run("unknown category", func(t *testing.T) {
		bad := primitive.NewObjectID().Hex()
		_, err := ps.Update(context.Background(), created.ID.Hex(), UpdateProductInput{Category: &bad}, nil)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("category change with image resolves the category once", func(t *testing.T) {
		other, err := categoryRepo.CreateCategory(context.Background(), &models.Category{Name: "Tea", Slug: "tea"})
		require.NoError(t, err)
		otherHex := other.ID.Hex()

		image := uploadFile(t, "moved.jpg", []byte("jpeg-bytes"))
		calls := categoryRepo.byIDCalls
		got, err := ps.Update(context.Background(), created.ID.Hex(), UpdateProductInput{Category: &otherHex}, image)
		require.NoError(t, err)

		assert.Equal(t, 1, categoryRepo.byIDCalls-calls, "validated category is reused for the upload folder")
		assert.Equal(t, other.ID, got.CategoryID)
		assert.Regexp(t, `^images/tea/`, got.ImageURL)
	})

	t.Run("new image replaces old file", func(t *testing.T) {
		replacement := uploadFile(t, "replacement.webp", []byte("webp-bytes"))
		got, err := ps.Update(context.Background(), created.ID.Hex(), UpdateProductInput{}, replacement)
		require.NoError(t, err)
		assert.NotEqual(t, created.ImageURL, got.ImageURL)

		_, err = os.Stat(oldPath)
		assert.True(t, os.IsNotExist(err), "old image file must be removed")
		_, err = os.Stat(filepath.Join(root, filepath.FromSlash(got.ImageURL)))
		require.NoError(t, err)
	})
}

func TestProductDelete(t *testing.T) {
	ps, productRepo, _, category, root := newProductService(t)

	t.Run("invalid id", func(t *testing.T) {
		err := ps.Delete(context.Background(), "not-hex")
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("unknown product", func(t *testing.T) {
		err := ps.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("removes record and image file", func(t *testing.T) {
		image := uploadFile(t, "doomed.jpeg", []byte("jpeg-bytes"))
		created, err := ps.Create(context.Background(), models.CreateProductInput{
			Name:     "Mocha",
			Price:    3.5,
			Category: category.ID.Hex(),
		}, image)
		require.NoError(t, err)
		storedPath := filepath.Join(root, filepath.FromSlash(created.ImageURL))
		_, err = os.Stat(storedPath)
		require.NoError(t, err)

		require.NoError(t, ps.Delete(context.Background(), created.ID.Hex()))
		assert.NotContains(t, productRepo.products, created.ID)
		_, err = os.Stat(storedPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("product without image", func(t *testing.T) {
		created, err := ps.Create(context.Background(), models.CreateProductInput{
			Name:     "Americano",
			Price:    2.0,
			Category: category.ID.Hex(),
		}, nil)
		require.NoError(t, err)
		require.NoError(t, ps.Delete(context.Background(), created.ID.Hex()))
		assert.NotContains(t, productRepo.products, created.ID)
	})
}
