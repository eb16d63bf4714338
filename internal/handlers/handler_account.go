package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/financeapp/personal_finance_api/internal/core/domain"
	portssvc "github.com/financeapp/personal_finance_api/internal/core/ports/services"
	"github.com/financeapp/personal_finance_api/internal/dto"
	"github.com/financeapp/personal_finance_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for account CRUD and balance mutations.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		ledgerService: ls,
	}
}

// registerAccountRoutes registers the account CRUD and mutation routes.
func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/number/:accountNumber", h.getAccountByNumber)
		accounts.GET("/user/:userID", h.listAccountsByUser)
		accounts.GET("/type/:accountType", h.listAccountsByType)
		accounts.GET("/user/:userID/type/:accountType", h.listAccountsByUserAndType)
		accounts.PUT("/:id", h.updateAccount)
		accounts.PATCH("/:id/balance", h.replaceBalance)
		accounts.PUT("/:id/credit", h.creditAccount)
		accounts.PUT("/:id/debit", h.debitAccount)
		accounts.POST("/transfer", h.transfer)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}

func parseTypeParam(c *gin.Context) (domain.AccountType, bool) {
	accountType := domain.AccountType(c.Param("accountType"))
	if !accountType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account type: " + string(accountType)})
		return "", false
	}
	return accountType, true
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new account owned by an existing user
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or unknown owner"
// @Failure 409 {object} map[string]string "Duplicate account number"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	newAccount, err := h.ledgerService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Account created successfully",
		slog.Int64("account_id", newAccount.ID),
		slog.String("account_number", newAccount.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves details for a specific account by its ID
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.ledgerService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountByNumber godoc
// @Summary Get an account by account number
// @Description Retrieves details for a specific account by its business number
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/number/{accountNumber} [get]
func (h *accountHandler) getAccountByNumber(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	account, err := h.ledgerService.GetAccountByNumber(c.Request.Context(), accountNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List all accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.ledgerService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// listAccountsByUser godoc
// @Summary List accounts owned by a user
// @Tags accounts
// @Produce  json
// @Param   userID path int true "User ID"
// @Success 200 {array} dto.AccountResponse
// @Router /accounts/user/{userID} [get]
func (h *accountHandler) listAccountsByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	accounts, err := h.ledgerService.ListAccountsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// listAccountsByType godoc
// @Summary List accounts of a given type
// @Tags accounts
// @Produce  json
// @Param   accountType path string true "Account type" Enums(CHECKING, SAVINGS, CREDIT_CARD, INVESTMENT)
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid account type"
// @Router /accounts/type/{accountType} [get]
func (h *accountHandler) listAccountsByType(c *gin.Context) {
	accountType, ok := parseTypeParam(c)
	if !ok {
		return
	}

	accounts, err := h.ledgerService.ListAccountsByType(c.Request.Context(), accountType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// listAccountsByUserAndType godoc
// @Summary List a user's accounts of a given type
// @Tags accounts
// @Produce  json
// @Param   userID path int true "User ID"
// @Param   accountType path string true "Account type" Enums(CHECKING, SAVINGS, CREDIT_CARD, INVESTMENT)
// @Success 200 {array} dto.AccountResponse
// @Router /accounts/user/{userID}/type/{accountType} [get]
func (h *accountHandler) listAccountsByUserAndType(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}
	accountType, ok := parseTypeParam(c)
	if !ok {
		return
	}

	accounts, err := h.ledgerService.ListAccountsByUserAndType(c.Request.Context(), userID, accountType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update account metadata
// @Description Edits name, number, type or currency. Balance changes must go through the balance endpoints.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Duplicate account number"
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// replaceBalance godoc
// @Summary Replace an account balance
// @Description Administrative override that sets the balance to an exact value
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   balance body dto.BalanceUpdateRequest true "New balance"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/balance [patch]
func (h *accountHandler) replaceBalance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.BalanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.ReplaceBalance(c.Request.Context(), id, req.NewBalance)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// creditAccount godoc
// @Summary Credit an account
// @Description Adds the amount to the balance. Non-positive amounts leave the account unchanged.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   amount body dto.AmountRequest true "Amount to add"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/credit [put]
func (h *accountHandler) creditAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.Credit(c.Request.Context(), id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// debitAccount godoc
// @Summary Debit an account
// @Description Subtracts the amount from the balance, failing when funds are insufficient
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   amount body dto.AmountRequest true "Amount to subtract"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /accounts/{id}/debit [put]
func (h *accountHandler) debitAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.Debit(c.Request.Context(), id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Atomically moves the amount from one account to another
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid amount or same source and destination"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /accounts/transfer [post]
func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.ledgerService.Transfer(c.Request.Context(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Transfer completed",
		slog.Int64("from_account_id", req.FromAccountID),
		slog.Int64("to_account_id", req.ToAccountID),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.TransferResponse{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Status:        "COMPLETED",
	})
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Removes an account whose balance is zero
// @Tags accounts
// @Param   id path int true "Account ID"
// @Success 204 "Account deleted"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Balance is not zero"
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.ledgerService.DeleteAccount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	logger.Info("Account deleted", slog.Int64("account_id", id))
	c.Status(http.StatusNoContent)
}
