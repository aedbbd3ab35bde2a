package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vineetk-singh/auctionapi/internal/api/middleware"
	"github.com/vineetk-singh/auctionapi/internal/models"
	"github.com/vineetk-singh/auctionapi/internal/services"
	"github.com/vineetk-singh/auctionapi/pkg/config"
	"github.com/vineetk-singh/auctionapi/pkg/database"
	"github.com/vineetk-singh/auctionapi/pkg/utils"
	"gorm.io/gorm"
)

type UserHandler struct {
	db      *database.DB
	cfg     *config.Config
	limiter *services.LoginRateLimiter
}

func NewUserHandler(db *database.DB, cfg *config.Config, limiter *services.LoginRateLimiter) *UserHandler {
	return &UserHandler{
		db:      db,
		cfg:     cfg,
		limiter: limiter,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type BulkRegisterRequest struct {
	Users []RegisterRequest `json:"users" binding:"required,min=1,dive"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Register creates a single user account
// POST /api/v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if req.Role != "" && !models.IsValidRole(req.Role) {
		utils.SendValidationError(c, "Invalid role", "role must be Player, Owner or Admin")
		return
	}

	if _, err := models.GetUserByUsername(h.db, req.Username); err == nil {
		utils.SendConflict(c, "Username already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.SendInternalError(c, "Failed to check existing user")
		return
	}

	if _, err := models.CreateUser(h.db, req.Username, req.Password, req.Role); err != nil {
		utils.SendInternalError(c, "Failed to register user")
		return
	}

	utils.SendCreated(c, gin.H{"message": "User registered successfully"})
}

// BulkRegister creates many user accounts in one request. A failure on one
// user does not stop the rest; per-user outcomes are reported.
// POST /api/v1/users/bulk-register
func (h *UserHandler) BulkRegister(c *gin.Context) {
	var req BulkRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid users array", err.Error())
		return
	}

	outcomes := make([]services.ProvisionOutcome, 0, len(req.Users))
	for _, u := range req.Users {
		outcome := services.ProvisionOutcome{Username: u.Username}
		if u.Role != "" && !models.IsValidRole(u.Role) {
			outcome.Error = "invalid role"
		} else if _, err := models.CreateUser(h.db, u.Username, u.Password, u.Role); err != nil {
			outcome.Error = err.Error()
		} else {
			outcome.Created = true
		}
		outcomes = append(outcomes, outcome)
	}

	utils.SendCreated(c, gin.H{
		"message": "Users registered",
		"results": outcomes,
	})
}

// Login verifies credentials and issues the token pair: a short-lived access
// token in the body and cookie, and a refresh token in a cookie only.
// POST /api/v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if h.limiter != nil && !h.limiter.Allow(req.Username) {
		utils.SendError(c, http.StatusTooManyRequests, utils.NewAppError(utils.ErrCodeRateLimited, "Too many login attempts"))
		return
	}

	user, err := models.GetUserByUsername(h.db, req.Username)
	if err != nil || !user.CheckPassword(req.Password) {
		utils.SendUnauthorized(c, "Invalid credentials")
		return
	}

	accessToken, err := h.generateAccessToken(user.ID.String(), user.Username, user.Role)
	if err != nil {
		utils.SendInternalError(c, "Failed to generate token")
		return
	}

	refreshToken, err := h.generateRefreshToken(user.ID.String(), user.Username, user.Role)
	if err != nil {
		utils.SendInternalError(c, "Failed to generate refresh token")
		return
	}

	middleware.SetAuthCookies(c, accessToken, refreshToken, int(h.cfg.AccessTokenTTL.Seconds()))

	utils.SendSuccess(c, gin.H{
		"token": accessToken,
		"user": UserInfo{
			ID:       user.ID.String(),
			Username: user.Username,
			Role:     user.Role,
		},
	})
}

// RefreshToken exchanges a valid refresh-token cookie for a new access token
// without rechecking credentials.
// POST /api/v1/users/refresh-token
func (h *UserHandler) RefreshToken(c *gin.Context) {
	tokenString, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || tokenString == "" {
		utils.SendUnauthorized(c, "No refresh token")
		return
	}

	claims, err := middleware.ParseClaims(tokenString, h.cfg.RefreshTokenSecret)
	if err != nil {
		utils.SendForbidden(c, "Invalid refresh token")
		return
	}

	accessToken, err := h.generateAccessToken(claims.UserID, claims.Username, claims.Role)
	if err != nil {
		utils.SendInternalError(c, "Failed to generate token")
		return
	}

	middleware.SetAuthCookies(c, accessToken, "", int(h.cfg.AccessTokenTTL.Seconds()))
	utils.SendSuccess(c, gin.H{"token": accessToken})
}

// AuthStatus reports whether the caller holds a valid access-token cookie.
// GET /api/v1/users/authStatus
func (h *UserHandler) AuthStatus(c *gin.Context) {
	tokenString, err := c.Cookie(middleware.AccessTokenCookie)
	if err != nil || tokenString == "" {
		utils.SendUnauthorized(c, "No token provided")
		return
	}

	claims, err := middleware.ParseClaims(tokenString, h.cfg.JWTSecret)
	if err != nil {
		utils.SendForbidden(c, "Invalid token")
		return
	}

	utils.SendSuccess(c, gin.H{
		"user": gin.H{
			"token": tokenString,
			"role":  claims.Role,
		},
	})
}

func (h *UserHandler) generateAccessToken(userID, username, role string) (string, error) {
	claims := &middleware.Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "auction-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Refresh tokens carry the same identity claims but no expiry; they are
// invalidated by rotating the refresh secret.
func (h *UserHandler) generateRefreshToken(userID, username, role string) (string, error) {
	claims := &middleware.Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Issuer:   "auction-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.RefreshTokenSecret))
}
