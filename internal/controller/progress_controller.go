package controller

import (
	"errors"

	"pygely_backend/internal/service"
	"pygely_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	WorldService *service.WorldService
}

func NewProgressController(worldService *service.WorldService) *ProgressController {
	return &ProgressController{WorldService: worldService}
}

type StartWorldRequest struct {
	WorldID uint `json:"worldId" binding:"required"`
}

// StartWorld godoc
// @Summary Start a world
// @Description Creates the caller's in-progress row for a world, or returns the existing one
// @Tags Progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartWorldRequest true "World to start"
// @Success 200 {object} util.Response{data=object} "Already started"
// @Success 201 {object} util.Response{data=object} "Started"
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/progress/start [post]
func (c *ProgressController) StartWorld(ctx *gin.Context) {
	var req StartWorldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user := util.GetUserFromContext(ctx)

	progress, created, err := c.WorldService.Start(ctx.Request.Context(), user.UserID, req.WorldID)
	if err != nil {
		if errors.Is(err, util.ErrWorldNotFound) {
			util.NotFound(ctx, "World not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if !created {
		util.Success(ctx, gin.H{"message": "World already started", "progress": progress})
		return
	}
	util.Created(ctx, gin.H{"message": "World started", "progressId": progress.ID})
}
