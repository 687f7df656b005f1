package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name" validate:"required"`
	Email             string             `bson:"email" json:"email" validate:"required,email"`
	PhoneNumber       string             `bson:"phone_number" json:"phone_number" validate:"required"`
	Password          string             `bson:"password" json:"-" validate:"required"`
	ProfileImage      string             `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	IsVerified        bool               `bson:"is_verified" json:"is_verified"`
	IsProfileComplete bool               `bson:"is_profile_complete" json:"is_profile_complete"`
	VerificationCode  string             `bson:"verification_code,omitempty" json:"-"`
	CodeExpiry        *time.Time         `bson:"code_expiry,omitempty" json:"-"`
	Role              string             `bson:"role" json:"role" validate:"oneof=user admin"`
	PointMember       int                `bson:"point_member" json:"point_member"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the profile shape returned to clients. The password hash
// and any pending verification code never leave the server.
type PublicUser struct {
	ID                primitive.ObjectID `json:"_id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	PhoneNumber       string             `json:"phoneNumber"`
	ProfileImage      string             `json:"profileImage,omitempty"`
	Role              string             `json:"role"`
	IsVerified        bool               `json:"isVerified"`
	IsProfileComplete bool               `json:"isProfileComplete"`
	PointMember       int                `json:"pointMember"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		PhoneNumber:       u.PhoneNumber,
		ProfileImage:      u.ProfileImage,
		Role:              u.Role,
		IsVerified:        u.IsVerified,
		IsProfileComplete: u.IsProfileComplete,
		PointMember:       u.PointMember,
	}
}
