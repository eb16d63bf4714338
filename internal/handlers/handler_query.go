package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/financeapp/personal_finance_api/internal/core/ports/services"
	"github.com/financeapp/personal_finance_api/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	defaultLowBalanceThreshold = "100.00"
	defaultRecentDays          = 30
	defaultInactiveDays        = 90
)

// queryHandler handles the read-only aggregation endpoints.
type queryHandler struct {
	queryService portssvc.QuerySvcFacade
}

func newQueryHandler(qs portssvc.QuerySvcFacade) *queryHandler {
	return &queryHandler{
		queryService: qs,
	}
}

// registerQueryRoutes registers the aggregation routes under /accounts.
func registerQueryRoutes(rg *gin.RouterGroup, queryService portssvc.QuerySvcFacade) {
	h := newQueryHandler(queryService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/user/:userID/total-balance", h.totalBalance)
		accounts.GET("/user/:userID/type/:accountType/total-balance", h.totalBalanceByType)
		accounts.GET("/user/:userID/ordered-by-balance", h.orderedByBalance)
		accounts.GET("/low-balance", h.lowBalance)
		accounts.GET("/recent", h.recent)
		accounts.GET("/inactive", h.inactive)
		accounts.GET("/user/:userID/summary", h.summary)
		accounts.GET("/user/:userID/count", h.countByUser)
		accounts.GET("/stats", h.stats)
	}
}

func parseDaysQuery(c *gin.Context, fallback int) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return fallback, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days parameter: " + raw})
		return 0, false
	}
	return days, true
}

// totalBalance godoc
// @Summary Total balance across a user's accounts
// @Tags queries
// @Produce  json
// @Param   userID path int true "User ID"
// @Success 200 {object} dto.TotalBalanceResponse
// @Router /accounts/user/{userID}/total-balance [get]
func (h *queryHandler) totalBalance(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	total, err := h.queryService.TotalBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalBalanceResponse{UserID: userID, TotalBalance: total})
}

// totalBalanceByType godoc
// @Summary Total balance for a user's accounts of one type
// @Tags queries
// @Produce  json
// @Param   userID path int true "User ID"
// @Param   accountType path string true "Account type" Enums(CHECKING, SAVINGS, CREDIT_CARD, INVESTMENT)
// @Success 200 {object} dto.TotalBalanceResponse
// @Router /accounts/user/{userID}/type/{accountType}/total-balance [get]
func (h *queryHandler) totalBalanceByType(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}
	accountType, ok := parseTypeParam(c)
	if !ok {
		return
	}

	total, err := h.queryService.TotalBalanceByType(c.Request.Context(), userID, accountType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalBalanceResponse{UserID: userID, AccountType: accountType, TotalBalance: total})
}

// orderedByBalance godoc
// @Summary A user's accounts ordered by balance, highest first
// @Tags queries
// @Produce  json
// @Param   userID path int true "User ID"
// @Success 200 {array} dto.AccountResponse
// @Router /accounts/user/{userID}/ordered-by-balance [get]
func (h *queryHandler) orderedByBalance(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	accounts, err := h.queryService.AccountsOrderedByBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// lowBalance godoc
// @Summary Accounts below a balance threshold
// @Description Credit card accounts are excluded; their balance is debt, not savings.
// @Tags queries
// @Produce  json
// @Param   threshold query string false "Balance threshold" default(100.00)
// @Success 200 {array} dto.AccountResponse
// @Router /accounts/low-balance [get]
func (h *queryHandler) lowBalance(c *gin.Context) {
	raw := c.DefaultQuery("threshold", defaultLowBalanceThreshold)
	threshold, err := decimal.NewFromString(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid threshold parameter: " + raw})
		return
	}

	accounts, err := h.queryService.LowBalance(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// recent godoc
// @Summary Accounts created within the last N days
// @Tags queries
// @Produce  json
// @Param   days query int false "Lookback window in days" default(30)
// @Success 200 {array} dto.AccountResponse
// @Router /accounts/recent [get]
func (h *queryHandler) recent(c *gin.Context) {
	days, ok := parseDaysQuery(c, defaultRecentDays)
	if !ok {
		return
	}

	accounts, err := h.queryService.Recent(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// inactive godoc
// @Summary Accounts not modified within the last N days
// @Tags queries
// @Produce  json
// @Param   days query int false "Inactivity window in days" default(90)
// @Success 200 {array} dto.AccountResponse
// @Router /accounts/inactive [get]
func (h *queryHandler) inactive(c *gin.Context) {
	days, ok := parseDaysQuery(c, defaultInactiveDays)
	if !ok {
		return
	}

	accounts, err := h.queryService.Inactive(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// summary godoc
// @Summary Balance statistics for a user's accounts
// @Description Count, total, average, max and min; all zero when the user has no accounts.
// @Tags queries
// @Produce  json
// @Param   userID path int true "User ID"
// @Success 200 {object} dto.SummaryResponse
// @Router /accounts/user/{userID}/summary [get]
func (h *queryHandler) summary(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	summary, err := h.queryService.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SummaryResponse{UserID: userID, Summary: *summary})
}

// countByUser godoc
// @Summary Number of accounts owned by a user
// @Tags queries
// @Produce  json
// @Param   userID path int true "User ID"
// @Success 200 {object} dto.UserAccountCountResponse
// @Router /accounts/user/{userID}/count [get]
func (h *queryHandler) countByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	count, err := h.queryService.CountAccountsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserAccountCountResponse{UserID: userID, AccountCount: count})
}

// stats godoc
// @Summary Store-wide account counts
// @Tags queries
// @Produce  json
// @Success 200 {object} dto.StatsResponse
// @Router /accounts/stats [get]
func (h *queryHandler) stats(c *gin.Context) {
	total, err := h.queryService.CountAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	byType, err := h.queryService.CountByType(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	counts := make(map[string]int64, len(byType))
	for accountType, n := range byType {
		counts[string(accountType)] = n
	}
	c.JSON(http.StatusOK, dto.StatsResponse{TotalAccounts: total, CountByType: counts})
}
