package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/kedai/internal/models"
	"github.com/joshua-takyi/kedai/internal/services"
)

func Signup(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		userID, err := u.Register(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(
			gin.H{"userId": userID},
			"User registered successfully. Verification code sent to email.",
		))
	}
}

func VerifyCode(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
			Code  string `json:"code"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		if err := u.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Email verification successful"))
	}
}

func Login(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("email and password are required"))
			return
		}

		result, err := u.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, ""))
	}
}

func ResendCode(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			UserID string `json:"userId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		if err := u.ResendCode(c.Request.Context(), req.UserID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Verification code resent"))
	}
}

// CompleteProfile runs behind the image moderation gate; by the time it
// executes the uploaded image (if any) has already passed the classifier.
func CompleteProfile(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.PostForm("userId")
		name := c.PostForm("name")

		image, err := c.FormFile("profileImage")
		if err != nil {
			image = nil
		}

		user, err := u.CompleteProfile(c.Request.Context(), userID, name, image)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, "Profile updated successfully"))
	}
}

func CompleteRegistration(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			UserID string `json:"userId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		result, err := u.CompleteRegistration(c.Request.Context(), req.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, ""))
	}
}
