package controller

import (
	"pygely_backend/internal/service"
	"pygely_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HintController struct {
	HintService *service.HintService
}

func NewHintController(hintService *service.HintService) *HintController {
	return &HintController{HintService: hintService}
}

type HintRequest struct {
	ChallengeID uint `json:"challengeId" binding:"required"`
}

// RequestHint godoc
// @Summary Request a hint
// @Description The hint level grows with the caller's incorrect attempts on the challenge, up to level 3
// @Tags Hints
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body HintRequest true "Challenge"
// @Success 200 {object} util.Response{data=game.Hint}
// @Failure 400 {object} util.Response
// @Router /api/hints [post]
func (c *HintController) RequestHint(ctx *gin.Context) {
	var req HintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user := util.GetUserFromContext(ctx)

	hint, err := c.HintService.RequestHint(ctx.Request.Context(), user.UserID, req.ChallengeID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, hint)
}
