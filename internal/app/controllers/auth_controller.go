package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oguzhanv/courseflow/internal/app/models/dto"
	"github.com/oguzhanv/courseflow/internal/app/services"
	"github.com/oguzhanv/courseflow/internal/middleware"
	"github.com/oguzhanv/courseflow/internal/pkg/auth"
)

// AuthController handles login and logout.
type AuthController struct {
	authService *services.AuthService
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, jwtService *auth.JWTService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates a username/password pair and returns the user's
// public fields with an access token.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid request payload"))
		return
	}

	user, err := c.authService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, _, err := c.jwtService.GenerateToken(user)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to issue token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}

// Logout ends the client's session. Identity is request-scoped, so
// there is no server-side state to clear; clients discard the token.
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logout successful"))
}
