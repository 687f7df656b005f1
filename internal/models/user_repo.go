package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshua-takyi/kedai/internal/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	SetVerificationCode(ctx context.Context, id primitive.ObjectID, code string, expiry time.Time) error
	ClearVerification(ctx context.Context, id primitive.ObjectID, code string) (bool, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, imagePath string) (*User, error)
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col := mdb.collection(UsersCol)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	_, err := col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, apperr.Service("failed to create user", err)
	}
	return user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	col := mdb.collection(UsersCol)

	var user User
	err := col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Service("failed to find user", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	col := mdb.collection(UsersCol)

	var user User
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Service("failed to find user", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) SetVerificationCode(ctx context.Context, id primitive.ObjectID, code string, expiry time.Time) error {
	col := mdb.collection(UsersCol)

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"verification_code": code,
			"code_expiry":       expiry,
			"updated_at":        time.Now(),
		},
	})
	if err != nil {
		return apperr.Service("failed to store verification code", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// ClearVerification marks the user verified and clears the pending code.
// The filter includes the submitted code so a concurrent resend that swapped
// the code makes this a no-op instead of clearing the fresh one; the caller
// reports a false return as an invalid code.
func (mdb *MongodbRepo) ClearVerification(ctx context.Context, id primitive.ObjectID, code string) (bool, error) {
	col := mdb.collection(UsersCol)

	res, err := col.UpdateOne(ctx,
		bson.M{"_id": id, "verification_code": code},
		bson.M{
			"$set": bson.M{
				"is_verified": true,
				"updated_at":  time.Now(),
			},
			"$unset": bson.M{
				"verification_code": "",
				"code_expiry":       "",
			},
		},
	)
	if err != nil {
		return false, apperr.Service("failed to verify user", err)
	}
	return res.MatchedCount > 0, nil
}

func (mdb *MongodbRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, imagePath string) (*User, error) {
	col := mdb.collection(UsersCol)

	set := bson.M{
		"name":                name,
		"is_profile_complete": true,
		"updated_at":          time.Now(),
	}
	if imagePath != "" {
		set["profile_image"] = imagePath
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated User
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Service(fmt.Sprintf("failed to update profile for %s", id.Hex()), err)
	}
	return &updated, nil
}
