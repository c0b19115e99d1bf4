package controller

import (
	"pygely_backend/internal/service"
	"pygely_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService  *service.StatsService
	ReportService *service.ReportService
}

func NewStatsController(statsService *service.StatsService, reportService *service.ReportService) *StatsController {
	return &StatsController{StatsService: statsService, ReportService: reportService}
}

// StudentStats godoc
// @Summary Student statistics
// @Description Worlds started, average completion and total time per student. Teachers only.
// @Tags Stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudentStat}
// @Failure 403 {object} util.Response
// @Router /api/stats/students [get]
func (c *StatsController) StudentStats(ctx *gin.Context) {
	stats, err := c.StatsService.StudentStats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ExportStudentStats godoc
// @Summary Export student statistics
// @Description Writes the student statistics to an xlsx workbook and returns its URL. Teachers only.
// @Tags Stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response
// @Router /api/stats/students/export [get]
func (c *StatsController) ExportStudentStats(ctx *gin.Context) {
	url, err := c.ReportService.ExportStudentStats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
