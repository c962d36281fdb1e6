package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campusvoice/policy-board/backend/internal/models"
	"github.com/campusvoice/policy-board/backend/internal/token"
)

type AuthHandler struct {
	db     *gorm.DB
	issuer *token.Issuer
}

func NewAuthHandler(db *gorm.DB, issuer *token.Issuer) *AuthHandler {
	return &AuthHandler{db: db, issuer: issuer}
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Signup handles user registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var input models.SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	if input.Email == "" || input.Password == "" || input.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	if !emailRegex.MatchString(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email format"})
		return
	}

	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 6 characters long"})
		return
	}

	// Check if email or username is already taken
	var existing models.User
	if err := h.db.Where("email = ? OR username = ?", input.Email, input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email or username already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("Error checking for existing user")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	user := models.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
	}

	if err := h.db.Create(&user).Error; err != nil {
		// Two signups racing past the existence check: the unique columns win.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email or username already exists"})
			return
		}
		logrus.WithError(err).Error("Error during signup")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		logrus.WithError(err).Error("Error during login")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	tokenStr, err := h.issuer.Issue(user.ID, user.Email, user.Username)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	logrus.WithField("user_id", user.ID).Info("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tokenStr,
	})
}
