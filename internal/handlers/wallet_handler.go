package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
	"focolare/internal/services"
)

// WalletHandler handles wallet-related requests.
type WalletHandler struct {
	profileService services.ProfileServicer
	walletService  services.WalletServicer
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(profileService services.ProfileServicer, walletService services.WalletServicer) *WalletHandler {
	return &WalletHandler{profileService: profileService, walletService: walletService}
}

// CreateWalletRequest represents the request payload for creating a wallet
type CreateWalletRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Currency string `json:"currency" binding:"omitempty,iso4217"`
}

// UpdateWalletRequest represents the request payload for updating a wallet
type UpdateWalletRequest struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	IsActive *bool  `json:"is_active"`
}

// WalletResponse represents a wallet in the response
type WalletResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	IsActive bool   `json:"is_active"`
}

func toWalletResponse(w *models.Wallet) WalletResponse {
	return WalletResponse{ID: w.ID, Name: w.Name, Currency: w.Currency, IsActive: w.IsActive}
}

// CreateWallet handles the creation of a new wallet
// @Summary     Create a wallet
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateWalletRequest true "Wallet details"
// @Success     201 {object} WalletResponse "Wallet created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /wallets [post]
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	wallet, err := h.walletService.CreateWallet(scope, req.Name, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toWalletResponse(wallet))
}

// GetWallets lists the household's wallets
// @Summary     List wallets
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       active query bool false "Only active wallets"
// @Success     200 {array} WalletResponse "Wallets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /wallets [get]
func (h *WalletHandler) GetWallets(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	wallets, err := h.walletService.GetWallets(scope, c.Query("active") == "true")
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]WalletResponse, 0, len(wallets))
	for i := range wallets {
		response = append(response, toWalletResponse(&wallets[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetWallet retrieves a single wallet
// @Summary     Get a wallet
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     200 {object} WalletResponse "Wallet"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id} [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	walletID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	wallet, err := h.walletService.GetWalletByID(scope, walletID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWalletResponse(wallet))
}

// UpdateWallet renames and/or toggles a wallet
// @Summary     Update a wallet
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Param       request body UpdateWalletRequest true "Fields to update"
// @Success     200 {object} WalletResponse "Updated wallet"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id} [patch]
func (h *WalletHandler) UpdateWallet(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	walletID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	wallet, err := h.walletService.UpdateWallet(scope, walletID, req.Name, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWalletResponse(wallet))
}

// DeleteWallet removes a wallet without expense history
// @Summary     Delete a wallet
// @Tags        wallets
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     204 "Wallet deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Failure     409 {object} ErrorResponse "Wallet has expenses"
// @Router      /wallets/{id} [delete]
func (h *WalletHandler) DeleteWallet(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	walletID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.walletService.DeleteWallet(scope, walletID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
