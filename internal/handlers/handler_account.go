package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	transactionService portssvc.TransactionReaderSvc
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, transactionService portssvc.TransactionReaderSvc) {
	h := &accountHandler{accountService: accountService, transactionService: transactionService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.POST("/:accountID/reconcile", h.reconcileAccount)
		accounts.GET("/:accountID/transactions", h.listAccountTransactions)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new account for the logged-in user. The current balance starts at the initial balance.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}
	logger.Info("Received request to create account", slog.String("account_name", req.Name), slog.String("currency_code", req.CurrencyCode))

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts for the logged-in user
// @Description Retrieves the accounts owned by the logged-in user, ordered by name
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), userID, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates name, color or icon. Balances only move through transactions.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), userID, c.Param("accountID"), req)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account that no transaction references
// @Tags accounts
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Account still has transactions"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete account"
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), userID, c.Param("accountID")); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// reconcileAccount godoc
// @Summary Reconcile an account balance
// @Description Recomputes the current balance as initial balance plus credits minus debits
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ReconcileAccountResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to reconcile account"
// @Security BearerAuth
// @Router /accounts/{accountID}/reconcile [post]
func (h *accountHandler) reconcileAccount(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	resp, err := h.accountService.ReconcileAccount(c.Request.Context(), userID, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to reconcile account")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listAccountTransactions godoc
// @Summary List transactions for an account
// @Description Newest first, paginated with an opaque nextToken
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *accountHandler) listAccountTransactions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transactionService.ListAccountTransactions(c.Request.Context(), userID, c.Param("accountID"), params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}
