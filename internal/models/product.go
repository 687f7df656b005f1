package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PriceRange struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	PriceRange  *PriceRange        `bson:"price_range,omitempty" json:"priceRange,omitempty"`
	ImageURL    string             `bson:"image_url" json:"imageUrl"`
	CategoryID  primitive.ObjectID `bson:"category" json:"category"`
	IsFavorite  bool               `bson:"is_favorite" json:"isFavorite"`
	Featured    bool               `bson:"featured" json:"featured"`
}

// ProductView is a Product with its category document expanded, the shape
// list endpoints return.
type ProductView struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	PriceRange  *PriceRange        `bson:"price_range,omitempty" json:"priceRange,omitempty"`
	ImageURL    string             `bson:"image_url" json:"imageUrl"`
	Category    *Category          `bson:"category,omitempty" json:"category,omitempty"`
	IsFavorite  bool               `bson:"is_favorite" json:"isFavorite"`
	Featured    bool               `bson:"featured" json:"featured"`
}

// CreateProductInput carries the validated create form fields.
type CreateProductInput struct {
	Name        string    `form:"name" validate:"required"`
	Description string    `form:"description"`
	Price       float64   `form:"price" validate:"gte=0"`
	Category    string    `form:"category" validate:"required"`
	PriceRange  []float64 `form:"-" validate:"omitempty,len=2"`
	Featured    bool      `form:"featured"`
}
