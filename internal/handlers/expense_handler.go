package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
	"focolare/internal/pagination"
	"focolare/internal/services"
)

// ExpenseHandler handles expense ledger requests.
type ExpenseHandler struct {
	profileService services.ProfileServicer
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(profileService services.ProfileServicer, expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{profileService: profileService, expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
// Amount is a positive decimal string ("12.50"); Date is YYYY-MM-DD.
type CreateExpenseRequest struct {
	WalletID    string `json:"wallet_id" binding:"required,uuid"`
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,iso4217"`
	Date        string `json:"date" binding:"required,calendar_date"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateExpenseRequest represents the request payload for updating an expense
type UpdateExpenseRequest struct {
	WalletID    string `json:"wallet_id" binding:"omitempty,uuid"`
	CategoryID  string `json:"category_id" binding:"omitempty,uuid"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency" binding:"omitempty,iso4217"`
	Date        string `json:"date" binding:"omitempty,calendar_date"`
	Description string `json:"description" binding:"max=500"`
}

// ExpenseResponse represents an expense in the response
type ExpenseResponse struct {
	ID          string `json:"id"`
	WalletID    string `json:"wallet_id"`
	CategoryID  string `json:"category_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Date        string `json:"date"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}

func toExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		WalletID:    e.WalletID,
		CategoryID:  e.CategoryID,
		AmountCents: e.AmountCents,
		Currency:    e.Currency,
		Date:        e.Date.Format(models.DateLayout),
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
	}
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Record an expense against a wallet and category of the caller's household
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseResponse "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet or category not found"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(scope, services.ExpenseInput{
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpense retrieves a single expense
// @Summary     Get an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} ExpenseResponse "Expense"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(scope, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// ListExpenses lists the household's expenses, paginated and filtered
// @Summary     List expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page (max 100)"
// @Param       category_id query string false "Filter by category"
// @Param       wallet_id query string false "Filter by wallet"
// @Param       from query string false "Earliest date (YYYY-MM-DD, inclusive)"
// @Param       to query string false "Latest date (YYYY-MM-DD, inclusive)"
// @Param       q query string false "Search in description"
// @Success     200 {object} pagination.PageResponse[ExpenseResponse] "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.ListExpenses(scope, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]ExpenseResponse, 0, len(result.Data))
	for i := range result.Data {
		items = append(items, toExpenseResponse(&result.Data[i]))
	}
	c.JSON(http.StatusOK, pagination.PageResponse[ExpenseResponse]{
		Data:       items,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

func parseExpenseFilter(c *gin.Context) (services.ExpenseFilter, error) {
	var filter services.ExpenseFilter
	if v := c.Query("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := c.Query("wallet_id"); v != "" {
		filter.WalletID = &v
	}
	if v := c.Query("from"); v != "" {
		from, err := models.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := models.ParseDate(v)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &to
	}
	if v := c.Query("q"); v != "" {
		filter.Search = &v
	}
	return filter, nil
}

// RecentExpenses lists the household's latest expenses
// @Summary     Recent expenses
// @Description Capped list of the latest expenses for dashboards
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Maximum items (default 50, max 100)"
// @Success     200 {array} ExpenseResponse "Expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /expenses/recent [get]
func (h *ExpenseHandler) RecentExpenses(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	expenses, err := h.expenseService.RecentExpenses(scope, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		response = append(response, toExpenseResponse(&expenses[i]))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateExpense modifies an expense authored by the caller
// @Summary     Update an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} ExpenseResponse "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [patch]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(scope, expenseID, services.ExpenseInput{
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense removes an expense authored by the caller
// @Summary     Delete an expense
// @Tags        expenses
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     204 "Expense deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the author"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(scope, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
