package services

import (
	"context"
	"testing"

	"github.com/joshua-takyi/kedai/internal/apperr"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreate(t *testing.T) {
	cs := NewCategoryService(newFakeCategoryRepo())

	_, err := cs.Create(context.Background(), &models.Category{Name: "Coffee"})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "slug is required")

	_, err = cs.Create(context.Background(), &models.Category{Slug: "coffee"})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "name is required")

	created, err := cs.Create(context.Background(), &models.Category{Name: "Coffee", Slug: "coffee"})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	categories, err := cs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "coffee", categories[0].Slug)
}
