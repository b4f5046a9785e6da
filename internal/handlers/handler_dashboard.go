package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/utils/monthrange"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the landing view and its helpers.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
	now              func() time.Time
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc) {
	h := &dashboardHandler{dashboardService: dashboardService, now: time.Now}

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.getDashboard)
		dashboard.GET("/months", h.getMonthRange)
		dashboard.GET("/balances", h.getBalances)
	}
}

// getDashboard godoc
// @Summary Get the dashboard
// @Description Accounts, the five most recent transactions and this month's stats. On failure the zero-state dashboard is returned with an error message.
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 502 {object} dto.DashboardResponse "Zero-state dashboard with error"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to load dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.EmptyDashboardResponse(monthrange.FirstOfMonth(h.now()), "Failed to load dashboard data"))
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}

// getMonthRange godoc
// @Summary List selectable months
// @Description Months from the earliest transaction through twelve months ahead, capped at twenty-four months back
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.MonthRangeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to load month range"
// @Security BearerAuth
// @Router /dashboard/months [get]
func (h *dashboardHandler) getMonthRange(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	months, err := h.dashboardService.MonthRange(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load month range")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthRangeResponse(months, monthrange.FirstOfMonth(h.now())))
}

// getBalances godoc
// @Summary Multi-currency balances
// @Description Every account with its home-currency equivalent. hidden=true masks all amounts.
// @Tags dashboard
// @Produce  json
// @Param   hidden query bool false "Mask amounts"
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to load balances"
// @Security BearerAuth
// @Router /dashboard/balances [get]
func (h *dashboardHandler) getBalances(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.BalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.dashboardService.Balances(c.Request.Context(), userID, params.Hidden)
	if err != nil {
		respondError(c, err, "Failed to load balances")
		return
	}
	c.JSON(http.StatusOK, resp)
}
