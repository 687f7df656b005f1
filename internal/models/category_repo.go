package models

import (
	"context"
	"errors"

	"github.com/joshua-takyi/kedai/internal/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepo interface {
	CreateCategory(ctx context.Context, category *Category) (*Category, error)
	GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}

func (mdb *MongodbRepo) CreateCategory(ctx context.Context, category *Category) (*Category, error) {
	col := mdb.collection(CategoriesCol)

	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}

	if _, err := col.InsertOne(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Surface the uniqueness violation the way the store reports it.
			return nil, apperr.Conflict(err.Error())
		}
		return nil, apperr.Service("failed to create category", err)
	}
	return category, nil
}

func (mdb *MongodbRepo) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*Category, error) {
	col := mdb.collection(CategoriesCol)

	var category Category
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, apperr.Service("failed to find category", err)
	}
	return &category, nil
}

func (mdb *MongodbRepo) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	col := mdb.collection(CategoriesCol)

	var category Category
	err := col.FindOne(ctx, bson.M{"slug": slug}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, apperr.Service("failed to find category", err)
	}
	return &category, nil
}

func (mdb *MongodbRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	col := mdb.collection(CategoriesCol)

	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Service("failed to list categories", err)
	}
	defer cursor.Close(ctx)

	categories := []*Category{}
	for cursor.Next(ctx) {
		var c Category
		if err := cursor.Decode(&c); err != nil {
			return nil, apperr.Service("failed to decode category", err)
		}
		categories = append(categories, &c)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Service("cursor error", err)
	}

	return categories, nil
}
