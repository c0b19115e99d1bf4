package controller

import (
	"errors"

	"pygely_backend/internal/service"
	"pygely_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WorldController struct {
	WorldService *service.WorldService
}

func NewWorldController(worldService *service.WorldService) *WorldController {
	return &WorldController{WorldService: worldService}
}

// ListWorlds godoc
// @Summary List worlds
// @Description Every world in order, marked active or blocked for the caller, with the caller's progress
// @Tags Worlds
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.WorldView}
// @Failure 401 {object} util.Response
// @Router /api/worlds [get]
func (c *WorldController) ListWorlds(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	worlds, err := c.WorldService.List(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, worlds)
}

// GetWorld godoc
// @Summary World detail
// @Description A world and its challenges
// @Tags Worlds
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "World ID"
// @Success 200 {object} util.Response{data=service.WorldDetail}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/worlds/{id} [get]
func (c *WorldController) GetWorld(ctx *gin.Context) {
	id, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid world id")
		return
	}

	detail, err := c.WorldService.Detail(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrWorldNotFound) {
			util.NotFound(ctx, "World not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}
