package handlers

import (
	"fmt"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePNG  = "image/png"
)

type reportHandler struct {
	reportService portssvc.ReportSvc
}

func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvc) {
	h := &reportHandler{reportService: reportService}

	reports := rg.Group("/reports")
	{
		reports.GET("/categories", h.categoryBreakdown)
		reports.GET("/statement.xlsx", h.statement)
		reports.GET("/trend.png", h.trend)
	}
}

// categoryBreakdown godoc
// @Summary Expense breakdown by category
// @Tags reports
// @Produce  json
// @Param   month query string false "Month as YYYY-MM, defaults to the current month"
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid month"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to build report"
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportHandler) categoryBreakdown(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ReportMonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reportService.CategoryBreakdown(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to build report")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// statement godoc
// @Summary Export a monthly statement
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   month query string false "Month as YYYY-MM, defaults to the current month"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid month"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to export statement"
// @Security BearerAuth
// @Router /reports/statement.xlsx [get]
func (h *reportHandler) statement(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ReportMonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	data, filename, err := h.reportService.StatementXLSX(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to export statement")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

// trend godoc
// @Summary Income and expense trend chart
// @Tags reports
// @Produce image/png
// @Param   months query int false "Number of months, 1 to 24" default(6)
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid months"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to render chart"
// @Security BearerAuth
// @Router /reports/trend.png [get]
func (h *reportHandler) trend(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.TrendParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	png, err := h.reportService.TrendPNG(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to render chart")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentTypePNG, png)
}
