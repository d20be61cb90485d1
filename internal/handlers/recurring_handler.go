package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
	"focolare/internal/services"
)

// RecurringHandler handles recurring expense template requests.
type RecurringHandler struct {
	profileService   services.ProfileServicer
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(profileService services.ProfileServicer, recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{profileService: profileService, recurringService: recurringService}
}

// CreateRecurringRequest represents the request payload for a recurring template
type CreateRecurringRequest struct {
	WalletID    string `json:"wallet_id" binding:"required,uuid"`
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,iso4217"`
	Description string `json:"description" binding:"max=500"`
	Rule        string `json:"rule" binding:"required,recurrence_rule"`
	StartDate   string `json:"start_date" binding:"required,calendar_date"`
}

// UpdateRecurringRequest represents the request payload for toggling a template
type UpdateRecurringRequest struct {
	IsActive *bool `json:"is_active"`
}

// RecurringResponse represents a recurring template in the response
type RecurringResponse struct {
	ID             string `json:"id"`
	WalletID       string `json:"wallet_id"`
	CategoryID     string `json:"category_id"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
	Description    string `json:"description"`
	Rule           string `json:"rule"`
	NextOccurrence string `json:"next_occurrence"`
	IsActive       bool   `json:"is_active"`
}

// RunDueResponse reports how many expenses a run materialized
type RunDueResponse struct {
	ExpensesCreated int `json:"expenses_created"`
}

func toRecurringResponse(r *models.RecurringExpense) RecurringResponse {
	return RecurringResponse{
		ID:             r.ID,
		WalletID:       r.WalletID,
		CategoryID:     r.CategoryID,
		AmountCents:    r.AmountCents,
		Currency:       r.Currency,
		Description:    r.Description,
		Rule:           string(r.Rule),
		NextOccurrence: r.NextOccurrence.Format(models.DateLayout),
		IsActive:       r.IsActive,
	}
}

// CreateRecurring registers a recurring expense template
// @Summary     Create a recurring template
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRecurringRequest true "Template details"
// @Success     201 {object} RecurringResponse "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /recurring [post]
func (h *RecurringHandler) CreateRecurring(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.CreateRecurring(scope, services.RecurringInput{
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Rule:        models.RecurrenceRule(req.Rule),
		StartDate:   req.StartDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRecurringResponse(recurring))
}

// ListRecurring lists the household's templates
// @Summary     List recurring templates
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} RecurringResponse "Templates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /recurring [get]
func (h *RecurringHandler) ListRecurring(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	templates, err := h.recurringService.ListRecurring(scope)
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]RecurringResponse, 0, len(templates))
	for i := range templates {
		response = append(response, toRecurringResponse(&templates[i]))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateRecurring toggles a template
// @Summary     Update a recurring template
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Param       request body UpdateRecurringRequest true "Fields to update"
// @Success     200 {object} RecurringResponse "Updated template"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Router      /recurring/{id} [patch]
func (h *RecurringHandler) UpdateRecurring(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.UpdateRecurring(scope, recurringID, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRecurringResponse(recurring))
}

// DeleteRecurring removes a template
// @Summary     Delete a recurring template
// @Tags        recurring
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Success     204 "Template deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Router      /recurring/{id} [delete]
func (h *RecurringHandler) DeleteRecurring(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteRecurring(scope, recurringID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RunDue materializes elapsed occurrences into expenses
// @Summary     Run due templates
// @Description Materialize every elapsed occurrence of the household's active templates into expenses
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} RunDueResponse "Run result"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /recurring/run [post]
func (h *RecurringHandler) RunDue(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	created, err := h.recurringService.RunDue(scope, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, RunDueResponse{ExpensesCreated: created})
}
