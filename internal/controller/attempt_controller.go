package controller

import (
	"errors"
	"strings"

	"pygely_backend/internal/game"
	"pygely_backend/internal/service"
	"pygely_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const maxIdempotencyKey = 64

type AttemptController struct {
	ProgressionService *service.ProgressionService
}

func NewAttemptController(progressionService *service.ProgressionService) *AttemptController {
	return &AttemptController{ProgressionService: progressionService}
}

// AttemptRequest defines model for an attempt submission
// swagger:model AttemptRequest
type AttemptRequest struct {
	ChallengeID      uint        `json:"challengeId" binding:"required"`
	SubmittedAnswer  game.Answer `json:"submittedAnswer" swaggertype:"string"`
	DistanceToTarget *float64    `json:"distanceToTarget"`
	ResponseTime     float64     `json:"responseTime" binding:"gte=0"`
	LeftLimit        *float64    `json:"leftLimit"`
	RightLimit       *float64    `json:"rightLimit"`
	ClientAttemptID  string      `json:"clientAttemptId" binding:"omitempty,max=64"`
}

// SubmitAttempt godoc
// @Summary Submit an attempt
// @Description Grades an answer. A correct answer completes the challenge's world, grants points and, once per world, a badge.
// @Description Sending the same Idempotency-Key again returns the stored result without new writes.
// @Tags Attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param Idempotency-Key header string false "Replay key"
// @Param body body AttemptRequest true "Submission"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Challenge not found"
// @Router /api/attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	var req AttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	key := strings.TrimSpace(ctx.GetHeader(util.IdempotencyHeader))
	if key == "" {
		key = strings.TrimSpace(req.ClientAttemptID)
	}
	if len(key) > maxIdempotencyKey {
		util.BadRequest(ctx, "Idempotency key too long")
		return
	}

	user := util.GetUserFromContext(ctx)
	result, err := c.ProgressionService.RegisterAttempt(ctx.Request.Context(), user.UserID, service.AttemptInput{
		ChallengeID: req.ChallengeID,
		Submission: game.Submission{
			Answer:           req.SubmittedAnswer,
			LeftLimit:        req.LeftLimit,
			RightLimit:       req.RightLimit,
			DistanceToTarget: req.DistanceToTarget,
			ResponseTime:     req.ResponseTime,
		},
		IdempotencyKey: key,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrChallengeNotFound):
			util.NotFound(ctx, "Challenge not found")
		case errors.Is(err, util.ErrIdempotencyKeyReused):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
