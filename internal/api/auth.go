package api

import (
	"errors"
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"travlog/internal/domain" // Data model and error taxonomy
	"travlog/internal/store"  // Persistence layer
	"travlog/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// RegisterRequest is the /register payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`           // Display name must be provided
	Email    string `json:"email" binding:"required,email"`    // Email must be provided and well-formed
	Password string `json:"password" binding:"required,min=6"` // Password must be provided
}

// LoginRequest is the /login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a new user account. The stored credential is a
// bcrypt hash; the plaintext never touches the database.
func RegisterHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)), // Lowercase to keep the lookup key canonical
			PasswordHash: string(hash),
		}
		if err := users.Create(c.Request.Context(), &user); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
				return
			}
			logrus.WithFields(logrus.Fields{
				"email": user.Email,
				"error": err.Error(),
			}).Error("Registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"user":    user, // PasswordHash is excluded from serialization
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token. An unknown email
// reports 404 and a wrong password 401, mirroring the behavior clients of the
// original service already depend on.
func LoginHandler(users *store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		user, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"email": email,
				"error": err.Error(),
			}).Error("Login lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		})
	}
}
