package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.monthView)
		txns.POST("", h.createTransaction)
		txns.GET("/:transactionID", h.getTransaction)
		txns.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// monthView godoc
// @Summary List a month of transactions
// @Description Transactions touching the user's accounts in one calendar month, newest first, with the month's rollup. A newer request from the same user supersedes an in-flight one.
// @Tags transactions
// @Produce  json
// @Param   month query string false "Month as YYYY-MM, defaults to the current month"
// @Param   type query string false "INCOME, EXPENSE or TRANSFER"
// @Param   q query string false "Case-insensitive description search"
// @Success 200 {object} dto.MonthViewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Superseded by a newer request"
// @Failure 500 {object} dto.ErrorResponse "Failed to load transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) monthView(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.MonthViewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	view, err := h.transactionService.MonthView(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to load transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthViewResponse(view))
}

// createTransaction godoc
// @Summary Record a transaction
// @Description EXPENSE needs paidFromAccountID, INCOME needs paidToAccountID, TRANSFER needs both. Account balances are updated atomically with the insert.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes the transaction and reverses its effect on account balances
// @Tags transactions
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("transactionID")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
