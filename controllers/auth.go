package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"agentchat/middleware"
	"agentchat/models"
	"agentchat/pkg/config"
	tokenstore "agentchat/pkg/token"
	utils "agentchat/pkg/utills"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tokenLifetime = 24 * time.Hour

type credentials struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func issueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(int(userID)),
		"exp": time.Now().Add(tokenLifetime).Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// Register handler. Registration logs the user straight in, so the response
// carries an access token like login does.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body credentials
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
			return
		}

		username := strings.TrimSpace(body.Username)
		password := body.Password

		if username == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
			return
		}
		if !utils.HasLetter(password) || !utils.HasNumber(password) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "password must contain at least one letter and one number"})
			return
		}

		var exists models.User
		if err := db.Where("username = ?", username).First(&exists).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"detail": "username already exists"})
			return
		} else if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "db error"})
			return
		}

		user := models.User{Username: username}
		if err := user.SetPassword(password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to set password"})
			return
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create user"})
			return
		}

		tokenStr, err := issueToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create token"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"access_token": tokenStr, "username": user.Username})
	}
}

// Login handler
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body credentials
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
			return
		}

		username := strings.TrimSpace(body.Username)
		password := body.Password
		if username == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
			return
		}

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
			return
		}
		if !user.CheckPassword(password) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
			return
		}

		tokenStr, err := issueToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": tokenStr, "username": user.Username})
	}
}

// Logout revokes the presented token's jti until the token would expire on
// its own, at which point the revocation entry lapses too.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		jti, _ := c.Get(middleware.ContextJTIKey)
		if s, ok := jti.(string); ok && s != "" {
			ttl := tokenLifetime
			if expVal, ok := c.Get(middleware.ContextTokenExpKey); ok {
				if exp, ok := expVal.(time.Time); ok {
					if remaining := time.Until(exp); remaining > 0 {
						ttl = remaining
					}
				}
			}
			tokenstore.Revoke(s, ttl)
		}
		c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
	}
}

// Me returns the authenticated user's identity.
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr, _ := c.Get(middleware.ContextUserIDKey)
		uidStr, _ := userIDStr.(string)
		uid, _ := strconv.Atoi(uidStr)

		var user models.User
		if err := db.First(&user, uid).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
	}
}
