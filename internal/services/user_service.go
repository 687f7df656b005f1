package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/joshua-takyi/kedai/internal/apperr"
	"github.com/joshua-takyi/kedai/internal/hash"
	"github.com/joshua-takyi/kedai/internal/helpers"
	"github.com/joshua-takyi/kedai/internal/mailer"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/joshua-takyi/kedai/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const avatarFolder = "avatars"

type UserService struct {
	userRepo  models.UserRepo
	mailer    mailer.Mailer
	images    *storage.ImageStore
	jwtSecret string
}

func NewUserService(userRepo models.UserRepo, m mailer.Mailer, images *storage.ImageStore, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		mailer:    m,
		images:    images,
		jwtSecret: jwtSecret,
	}
}

type RegisterInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// Register creates an unverified user and mails them a verification code.
// If the mail fails after the record was persisted the user stays created;
// resending the code is the recovery path.
func (us *UserService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if err := models.Validate.Struct(input); err != nil {
		return "", apperr.Validation("all fields are required")
	}

	if _, err := us.userRepo.GetUserByEmail(ctx, input.Email); err == nil {
		return "", apperr.Conflict("email already in use")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return "", err
	}

	code, err := helpers.GenerateVerificationCode()
	if err != nil {
		return "", apperr.Service("failed to generate verification code", err)
	}
	expiry := helpers.CodeExpiry(time.Now())

	hashed, err := hash.Password(input.Password)
	if err != nil {
		return "", apperr.Service("failed to hash password", err)
	}

	user := &models.User{
		Name:             input.Name,
		Email:            input.Email,
		PhoneNumber:      input.PhoneNumber,
		Password:         hashed,
		Role:             models.RoleUser,
		IsVerified:       false,
		VerificationCode: code,
		CodeExpiry:       &expiry,
	}

	created, err := us.userRepo.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}

	if err := us.mailer.SendVerificationCode(created.Email, code); err != nil {
		return "", apperr.Service("failed to send verification email", err)
	}

	return created.ID.Hex(), nil
}

// Verify checks the submitted code against the pending one and marks the
// user verified, clearing the code so a repeat call fails as invalid.
func (us *UserService) Verify(ctx context.Context, email, code string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(code) == "" {
		return apperr.Validation("email and code are required")
	}

	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.VerificationCode == "" || user.VerificationCode != code {
		return apperr.Validation("invalid verification code")
	}

	if user.CodeExpiry != nil && time.Now().After(*user.CodeExpiry) {
		return apperr.Validation("verification code has expired")
	}

	cleared, err := us.userRepo.ClearVerification(ctx, user.ID, code)
	if err != nil {
		return err
	}
	if !cleared {
		// The code changed between read and update (a concurrent resend).
		return apperr.Validation("invalid verification code")
	}
	return nil
}

type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Login checks credentials against the stored record. A malformed or
// unknown email is indistinguishable from a missing user: both are a
// lookup miss.
func (us *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !user.IsVerified {
		return nil, apperr.Unauthorized("please verify your email before logging in")
	}

	if !hash.CheckPassword(user.Password, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := helpers.GenerateToken(us.jwtSecret, user.ID.Hex())
	if err != nil {
		return nil, apperr.Service("failed to generate token", err)
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// ResendCode issues a fresh code/expiry pair and re-sends the email.
func (us *UserService) ResendCode(ctx context.Context, userID string) error {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(userID))
	if err != nil {
		return apperr.NotFound("user not found")
	}

	user, err := us.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	code, err := helpers.GenerateVerificationCode()
	if err != nil {
		return apperr.Service("failed to generate verification code", err)
	}

	if err := us.userRepo.SetVerificationCode(ctx, id, code, helpers.CodeExpiry(time.Now())); err != nil {
		return err
	}

	if err := us.mailer.SendVerificationCode(user.Email, code); err != nil {
		return apperr.Service("failed to send verification email", err)
	}
	return nil
}

// CompleteProfile stores the (already moderated) profile image and marks the
// profile complete.
func (us *UserService) CompleteProfile(ctx context.Context, userID, name string, image *multipart.FileHeader) (*models.PublicUser, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("missing required fields")
	}

	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(userID))
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	if _, err := us.userRepo.GetUserByID(ctx, id); err != nil {
		return nil, err
	}

	imagePath := ""
	if image != nil {
		imagePath, err = us.images.Save(image, avatarFolder)
		if err != nil {
			return nil, err
		}
	}

	updated, err := us.userRepo.UpdateProfile(ctx, id, name, imagePath)
	if err != nil {
		return nil, err
	}

	public := updated.Public()
	return &public, nil
}

// CompleteRegistration issues a fresh token for the finished signup flow.
func (us *UserService) CompleteRegistration(ctx context.Context, userID string) (*LoginResult, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(userID))
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	user, err := us.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	token, err := helpers.GenerateToken(us.jwtSecret, user.ID.Hex())
	if err != nil {
		return nil, apperr.Service("failed to generate token", err)
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}
