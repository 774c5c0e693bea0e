package controllers

import (
	"net/http"
	"time"

	"residence-backend/config"
	"residence-backend/models"
	"residence-backend/services"
	"residence-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthSvc *services.AuthService
	Cfg     *config.Config
}

func NewAuthController(svc *services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{AuthSvc: svc, Cfg: cfg}
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
	LastLogin *string `json:"last_login"`
}

func toUserResponse(u *models.User) UserResponse {
	response := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.LastLogin != nil {
		last := u.LastLogin.UTC().Format(time.RFC3339)
		response.LastLogin = &last
	}
	return response
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type registerPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordPayload struct {
	Email string `json:"email" binding:"required"`
}

func (ctrl *AuthController) issueTokens(c *gin.Context, userID string) {
	access, err := utils.CreateToken(userID, ctrl.Cfg.JWTSecret, ctrl.Cfg.AccessTokenTTL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	refresh, err := utils.CreateToken(userID, ctrl.Cfg.JWTSecret, ctrl.Cfg.RefreshTokenTTL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	})
}

// POST /auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	user, err := ctrl.AuthSvc.Register(services.RegisterInput{
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// POST /auth/login (form fields username/password, OAuth2 style)
func (ctrl *AuthController) Login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	user, err := ctrl.AuthSvc.Authenticate(email, password, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.issueTokens(c, user.ID)
}

// POST /auth/login-json
func (ctrl *AuthController) LoginJSON(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	user, err := ctrl.AuthSvc.Authenticate(payload.Email, payload.Password, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ctrl.issueTokens(c, user.ID)
}

// GET /auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}
	user, err := ctrl.AuthSvc.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// POST /auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var payload forgotPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}
	// Always the same answer, so the endpoint cannot be used to probe emails.
	utils.JSONMessage(c, http.StatusOK, "If this email exists, you will receive password reset instructions")
}

// POST /auth/guest-access
func (ctrl *AuthController) GuestAccess(c *gin.Context) {
	access, err := utils.CreateToken("guest", ctrl.Cfg.JWTSecret, ctrl.Cfg.AccessTokenTTL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: "",
		TokenType:    "bearer",
	})
}
