package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "focolare/internal/errors"
	"focolare/internal/services"
)

// HouseholdHandler handles household and membership requests.
type HouseholdHandler struct {
	profileService   services.ProfileServicer
	householdService services.HouseholdServicer
}

// NewHouseholdHandler creates a new HouseholdHandler.
func NewHouseholdHandler(profileService services.ProfileServicer, householdService services.HouseholdServicer) *HouseholdHandler {
	return &HouseholdHandler{profileService: profileService, householdService: householdService}
}

// RenameHouseholdRequest represents the rename request payload
type RenameHouseholdRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// HouseholdResponse represents a household in the response
type HouseholdResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InviteResponse represents an invite code in the response
type InviteResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GetHousehold returns the caller's household
// @Summary     Get household
// @Tags        household
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} HouseholdResponse "Household"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /household [get]
func (h *HouseholdHandler) GetHousehold(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	household, err := h.householdService.GetHousehold(scope)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, HouseholdResponse{ID: household.ID, Name: household.Name})
}

// RenameHousehold renames the caller's household
// @Summary     Rename household
// @Tags        household
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RenameHouseholdRequest true "New name"
// @Success     200 {object} HouseholdResponse "Renamed household"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /household [patch]
func (h *HouseholdHandler) RenameHousehold(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RenameHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	household, err := h.householdService.RenameHousehold(scope, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, HouseholdResponse{ID: household.ID, Name: household.Name})
}

// GetMembers lists the household's members
// @Summary     List household members
// @Tags        household
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} ProfileResponse "Members"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /household/members [get]
func (h *HouseholdHandler) GetMembers(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.householdService.GetMembers(scope)
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]ProfileResponse, 0, len(members))
	for i := range members {
		response = append(response, toProfileResponse(&members[i]))
	}
	c.JSON(http.StatusOK, response)
}

// CreateInvite issues an invite code for this household
// @Summary     Create household invite
// @Description Issue a time-limited code another person can register with to join this household
// @Tags        household
// @Produce     json
// @Security    BearerAuth
// @Success     201 {object} InviteResponse "Invite"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /household/invites [post]
func (h *HouseholdHandler) CreateInvite(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	invite, err := h.householdService.CreateInvite(scope)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, InviteResponse{Code: invite.Code, ExpiresAt: invite.ExpiresAt})
}
