package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"pygely_backend/internal/util"

	"github.com/xuri/excelize/v2"
)

const studentSheet = "Students"

type ReportService struct {
	Stats   *StatsService
	Storage *StorageService
	now     func() time.Time
}

func NewReportService(stats *StatsService, storage *StorageService) *ReportService {
	return &ReportService{Stats: stats, Storage: storage, now: time.Now}
}

// ExportStudentStats writes the teacher statistics to an xlsx workbook,
// stores it and returns its URL.
func (s *ReportService) ExportStudentStats(ctx context.Context) (string, error) {
	buf, err := s.StudentStatsWorkbook(ctx)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("reports/student-stats-%s.xlsx", s.now().Format("20060102-150405"))
	return s.Storage.Upload(ctx, name, buf, int64(buf.Len()), util.MimeXLSX)
}

func (s *ReportService) StudentStatsWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	stats, err := s.Stats.StudentStats(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", studentSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"ID", "Name", "Email", "Worlds started", "Average completion (%)", "Total time (s)"}
	if err := f.SetSheetRow(studentSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, st := range stats {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{st.ID, st.Name, st.Email, st.WorldsStarted, st.AverageCompletion, st.TotalTime}
		if err := f.SetSheetRow(studentSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetCellValue(studentSheet, "H1", "Generated"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(studentSheet, "I1", s.now().Format(util.TimeFormat)); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}
