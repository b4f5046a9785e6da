package handlers

import (
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", getMe)
}

// getMe godoc
// @Summary Get the current user
// @Description Returns the user resolved from the bearer token
// @Tags users
// @Produce  json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /me [get]
func getMe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{UserID: userID, Authenticated: true})
}
