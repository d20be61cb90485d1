package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "focolare/internal/errors"
	"focolare/internal/models"
	"focolare/internal/services"
)

// SummaryHandler handles aggregation requests.
type SummaryHandler struct {
	profileService services.ProfileServicer
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(profileService services.ProfileServicer, summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{profileService: profileService, summaryService: summaryService}
}

// SummaryResponse represents per-category totals over a closed date interval
type SummaryResponse struct {
	Start           string                   `json:"start"`
	End             string                   `json:"end"`
	Categories      []services.CategoryTotal `json:"categories"`
	GrandTotalCents int64                    `json:"grand_total_cents"`
}

func toSummaryResponse(summary *services.PeriodSummary) SummaryResponse {
	return SummaryResponse{
		Start:           summary.Start.Format(models.DateLayout),
		End:             summary.End.Format(models.DateLayout),
		Categories:      summary.Categories,
		GrandTotalCents: summary.GrandTotalCents,
	}
}

// CategorySummary totals expenses per category over [start, end]
// @Summary     Per-category totals
// @Description Total the household's expenses per category over a closed date interval. Both endpoints are inclusive; every matching expense contributes, no pagination.
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       start query string true "Interval start (YYYY-MM-DD, inclusive)"
// @Param       end query string true "Interval end (YYYY-MM-DD, inclusive)"
// @Param       wallet_id query string false "Restrict to one wallet"
// @Param       category_id query string false "Restrict to one category"
// @Success     200 {object} SummaryResponse "Totals, largest first"
// @Failure     400 {object} ErrorResponse "Invalid interval"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /summary [get]
func (h *SummaryHandler) CategorySummary(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, err := models.ParseDate(c.Query("start"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := models.ParseDate(c.Query("end"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	var filter services.SummaryFilter
	if v := c.Query("wallet_id"); v != "" {
		filter.WalletID = &v
	}
	if v := c.Query("category_id"); v != "" {
		filter.CategoryID = &v
	}

	summary, err := h.summaryService.CategorySummary(scope, start, end, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// MonthSummary totals a calendar month
// @Summary     Monthly totals
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       year query int true "Year"
// @Param       month query int true "Month (1-12)"
// @Success     200 {object} SummaryResponse "Totals, largest first"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "No household"
// @Router      /summary/month [get]
func (h *SummaryHandler) MonthSummary(c *gin.Context) {
	scope, err := requireScope(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month"))
		return
	}

	summary, err := h.summaryService.MonthSummary(scope, year, time.Month(month))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(summary))
}
