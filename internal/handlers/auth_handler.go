package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "focolare/internal/errors"
	"focolare/internal/middleware"
	"focolare/internal/models"
	"focolare/internal/services"
)

// AuthHandler handles registration, login and session refresh.
type AuthHandler struct {
	profileService   services.ProfileServicer
	bootstrapService services.BootstrapServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(profileService services.ProfileServicer, bootstrapService services.BootstrapServicer) *AuthHandler {
	return &AuthHandler{profileService: profileService, bootstrapService: bootstrapService}
}

// RegisterRequest represents the registration request payload. When
// InviteCode is set the new profile joins that household; otherwise a fresh
// household is provisioned, named HouseholdName when given.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email,max=255"`
	Password      string `json:"password" binding:"required,min=8,max=128"`
	FullName      string `json:"full_name" binding:"max=200"`
	HouseholdName string `json:"household_name" binding:"max=100"`
	InviteCode    string `json:"invite_code" binding:"max=32"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh request payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ProfileResponse represents the profile data in the response
type ProfileResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    string  `json:"full_name"`
	HouseholdID *string `json:"household_id,omitempty"`
}

// AuthResponse represents the authentication response with tokens
type AuthResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Profile      ProfileResponse `json:"profile"`
}

func toProfileResponse(profile *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID,
		Email:       profile.Email,
		FullName:    profile.FullName,
		HouseholdID: profile.HouseholdID,
	}
}

// Register handles profile registration and household provisioning
// @Summary     Register a new profile
// @Description Register a profile and provision (or join) its household with default wallets and categories
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "Registration data"
// @Success     201 {object} AuthResponse "Profile registered, household provisioned"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Provisioning incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.CreateProfile(req.Email, req.Password, req.FullName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if req.InviteCode != "" {
		profile, err = h.bootstrapService.JoinByInvite(profile.ID, req.InviteCode)
	} else {
		profile, err = h.bootstrapService.Provision(profile.ID, req.HouseholdName)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.issueTokens(c, http.StatusCreated, profile)
}

// Login handles profile login
// @Summary     Login
// @Description Authenticate a profile and get an access/refresh token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Login credentials"
// @Success     200 {object} AuthResponse "Authenticated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.GetProfileByEmail(req.Email)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}
	if !h.profileService.VerifyPassword(profile, req.Password) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	// Login is also a provisioning checkpoint: a profile that somehow lost the
	// bootstrap race window gets its household here, idempotently.
	profile, err = h.bootstrapService.Provision(profile.ID, "")
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.issueTokens(c, http.StatusOK, profile)
}

// RefreshToken exchanges a valid refresh token for a new token pair
// @Summary     Refresh session
// @Description Exchange a refresh token for a new access/refresh token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} AuthResponse "New token pair"
// @Failure     401 {object} ErrorResponse "Invalid or expired refresh token"
// @Router      /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := middleware.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	storedHash, err := h.profileService.GetRefreshTokenHash(claims.ProfileID)
	if err != nil || storedHash == "" || storedHash != middleware.HashToken(req.RefreshToken) {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	profile, err := h.profileService.GetProfileByID(claims.ProfileID)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	h.issueTokens(c, http.StatusOK, profile)
}

// GetProfile returns the authenticated profile
// @Summary     Current profile
// @Description Get the authenticated profile, including its household link
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ProfileResponse "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/me [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfileByID(profileID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *AuthHandler) issueTokens(c *gin.Context, status int, profile *models.Profile) {
	accessToken, err := middleware.GenerateAccessToken(profile)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	refreshToken, err := middleware.GenerateRefreshToken(profile)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if err := h.profileService.StoreRefreshTokenHash(profile.ID, middleware.HashToken(refreshToken)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(status, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      toProfileResponse(profile),
	})
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
