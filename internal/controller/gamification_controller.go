package controller

import (
	"pygely_backend/internal/service"
	"pygely_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	GamificationService *service.GamificationService
}

func NewGamificationController(gamificationService *service.GamificationService) *GamificationController {
	return &GamificationController{GamificationService: gamificationService}
}

// GetSummary godoc
// @Summary Points and badges
// @Tags Gamification
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.GamificationSummary}
// @Router /api/gamification [get]
func (c *GamificationController) GetSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	summary, err := c.GamificationService.Summary(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
