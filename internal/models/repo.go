package models

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	UsersCol      = "users"
	ProductsCol   = "products"
	CategoriesCol = "categories"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) collection(name string) *mongo.Collection {
	return mdb.mongodbClient.Database(mdb.dbName).Collection(name)
}
