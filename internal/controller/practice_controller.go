package controller

import (
	"errors"

	"pygely_backend/internal/service"
	"pygely_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

type ExerciseQuery struct {
	Topic string `form:"topic" binding:"required,practice_topic"`
	Level string `form:"level" binding:"required,practice_level"`
}

type ValidateRequest struct {
	ExerciseID uint   `json:"exerciseId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// GetExercise godoc
// @Summary Random practice exercise
// @Tags Algebra
// @Produce json
// @Param topic query string true "factoring or rationalization"
// @Param level query string true "basic, intermediate or advanced"
// @Success 200 {object} util.Response{data=service.ExerciseView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/algebra/exercise [get]
func (c *PracticeController) GetExercise(ctx *gin.Context) {
	var q ExerciseQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.PracticeService.Exercise(ctx.Request.Context(), q.Topic, q.Level)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidPracticeTopic):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrExerciseNotFound):
			util.NotFound(ctx, "No exercise for this topic and level")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, exercise)
}

// ValidateAnswer godoc
// @Summary Check a practice answer
// @Description Authentication is optional; only authenticated answers are recorded
// @Tags Algebra
// @Accept json
// @Produce json
// @Param body body ValidateRequest true "Answer"
// @Success 200 {object} util.Response{data=service.PracticeVerdict}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/algebra/validate [post]
func (c *PracticeController) ValidateAnswer(ctx *gin.Context) {
	var req ValidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var studentID *uint
	if user := util.GetUserFromContext(ctx); user != nil {
		studentID = &user.UserID
	}

	verdict, err := c.PracticeService.Validate(ctx.Request.Context(), studentID, req.ExerciseID, req.Answer)
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx, "Exercise not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, verdict)
}

// PracticeStats godoc
// @Summary Practice statistics
// @Tags Algebra
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.PracticeTopicStat}
// @Router /api/algebra/stats [get]
func (c *PracticeController) PracticeStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	stats, err := c.PracticeService.Stats(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
