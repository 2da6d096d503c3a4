package auth

import (
	"errors"
	"net/http"

	"github.com/ryobiguy/fanvault/db"
	"github.com/ryobiguy/fanvault/models"
	"github.com/ryobiguy/fanvault/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultTiers = []models.TierSpec{
	{TierLevel: 1, TierName: "Basic", Price: decimal.NewFromFloat(9.99), Description: "Access to all my content"},
	{TierLevel: 2, TierName: "Premium", Price: decimal.NewFromFloat(19.99), Description: "Everything in Basic + exclusive content"},
	{TierLevel: 3, TierName: "VIP", Price: decimal.NewFromFloat(49.99), Description: "Everything + 1-on-1 messaging"},
}

// @Summary Register a new account
// @Description Create an account with its profile (and default tiers for creators) in one transaction
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserRegister true "Registration information"
// @Success 201 {object} map[string]interface{} "message: User registered successfully, token: JWT"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 409 {object} map[string]string "error: Email or username already taken"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var input models.UserRegister

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if !utils.ValidateUsername(input.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username may only contain letters, digits and underscores"})
		return
	}

	if !utils.ValidatePassword(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The password must contain at least one lowercase, one uppercase and one digit"})
		return
	}

	if input.Role != models.CreatorRole && input.Role != models.FanRole {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be CREATOR or FAN"})
		return
	}

	var existingUser models.User
	if err := db.DB.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This email is already used"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when checking the email existence"})
		return
	}

	var existingProfile models.Profile
	if err := db.DB.Where("username = ?", input.Username).First(&existingProfile).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This username is already taken"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when checking the username existence"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing the password"})
		return
	}

	user := models.User{
		Email:    input.Email,
		Password: string(passwordHash),
		Role:     input.Role,
		IsActive: true,
	}

	// Account, profile and default tiers commit together or not at all
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := models.Profile{
			UserID:      user.ID,
			DisplayName: input.DisplayName,
			Username:    input.Username,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		if user.Role == models.CreatorRole {
			for _, spec := range defaultTiers {
				tier := models.SubscriptionTier{
					CreatorID:   user.ID,
					TierName:    spec.TierName,
					TierLevel:   spec.TierLevel,
					Price:       spec.Price,
					Description: spec.Description,
					IsActive:    true,
				}
				if err := tx.Create(&tier).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		utils.LogError(err, "Error registering user in Register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the account"})
		return
	}

	token, err := utils.GenerateJWT(user, 72)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error generating JWT in Register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating the token"})
		return
	}

	utils.LogSuccessWithUser(user.ID, "User registered successfully in Register")
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"role":        user.Role,
			"displayName": input.DisplayName,
			"username":    input.Username,
		},
	})
}

// @Summary Log in
// @Description Verify credentials and mint a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLogin true "Login credentials"
// @Success 200 {object} map[string]interface{} "token: JWT"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Invalid credentials"
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input models.UserLogin

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ? AND is_active = ?", input.Email, true).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user, 72)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error generating JWT in Login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating the token"})
		return
	}

	utils.LogSuccessWithUser(user.ID, "User logged in successfully in Login")
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
