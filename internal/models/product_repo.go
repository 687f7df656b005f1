package models

import (
	"context"
	"errors"

	"github.com/joshua-takyi/kedai/internal/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductFilter struct {
	CategoryID *primitive.ObjectID
	Featured   *bool
}

func (f ProductFilter) match() bson.M {
	match := bson.M{}
	if f.CategoryID != nil {
		match["category"] = *f.CategoryID
	}
	if f.Featured != nil {
		match["featured"] = *f.Featured
	}
	return match
}

type ProductRepo interface {
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter, skip, limit int64) ([]*ProductView, error)
	CountProducts(ctx context.Context, filter ProductFilter) (int64, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}

func (mdb *MongodbRepo) CreateProduct(ctx context.Context, product *Product) (*Product, error) {
	col := mdb.collection(ProductsCol)

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}

	if _, err := col.InsertOne(ctx, product); err != nil {
		return nil, apperr.Service("failed to create product", err)
	}
	return product, nil
}

func (mdb *MongodbRepo) GetProductByID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	col := mdb.collection(ProductsCol)

	var product Product
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Service("failed to find product", err)
	}
	return &product, nil
}

// ListProducts returns products with their category document joined in.
// A zero limit means no limit.
func (mdb *MongodbRepo) ListProducts(ctx context.Context, filter ProductFilter, skip, limit int64) ([]*ProductView, error) {
	col := mdb.collection(ProductsCol)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter.match()}},
		bson.D{{Key: "$skip", Value: skip}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         CategoriesCol,
			"localField":   "category",
			"foreignField": "_id",
			"as":           "category",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$category",
			"preserveNullAndEmptyArrays": true,
		}}},
	)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Service("failed to list products", err)
	}
	defer cursor.Close(ctx)

	products := []*ProductView{}
	for cursor.Next(ctx) {
		var p ProductView
		if err := cursor.Decode(&p); err != nil {
			return nil, apperr.Service("failed to decode product", err)
		}
		products = append(products, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Service("cursor error", err)
	}

	return products, nil
}

// CountProducts returns how many products match the filter, for pagination
// metadata.
func (mdb *MongodbRepo) CountProducts(ctx context.Context, filter ProductFilter) (int64, error) {
	col := mdb.collection(ProductsCol)

	total, err := col.CountDocuments(ctx, filter.match())
	if err != nil {
		return 0, apperr.Service("failed to count products", err)
	}
	return total, nil
}

func (mdb *MongodbRepo) UpdateProduct(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Product, error) {
	col := mdb.collection(ProductsCol)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Product
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Service("failed to update product", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	col := mdb.collection(ProductsCol)

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Service("failed to delete product", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}
