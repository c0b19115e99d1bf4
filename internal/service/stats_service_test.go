package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pygely_backend/internal/config"
	"pygely_backend/internal/game"
	"pygely_backend/internal/model"
	"pygely_backend/internal/testutil"
	"pygely_backend/internal/util"

	"github.com/xuri/excelize/v2"
)

func seedStats(t *testing.T, f *fixture) (model.User, model.User) {
	t.Helper()
	ctx := context.Background()
	busy := testutil.SeedUser(t, f.db, "busy@example.com", model.Student)
	idle := testutil.SeedUser(t, f.db, "idle@example.com", model.Student)
	testutil.SeedUser(t, f.db, "prof@example.com", model.Teacher)
	testutil.SeedWorlds(t, f.db, 2)
	ch := testutil.SeedChallenge(t, f.db, 1, game.KindApproximation, nil, testutil.Float(4))

	if _, err := f.progression.RegisterAttempt(ctx, busy.ID, AttemptInput{ChallengeID: ch.ID, Submission: answer("4", 30)}); err != nil {
		t.Fatalf("RegisterAttempt: %v", err)
	}
	if _, _, err := f.worlds.Start(ctx, busy.ID, 2); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return *busy, *idle
}

func TestStudentStats(t *testing.T) {
	f := newFixture(t)
	busy, idle := seedStats(t, f)

	stats, err := f.stats.StudentStats(context.Background())
	if err != nil {
		t.Fatalf("StudentStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats rows = %d, want only students", len(stats))
	}

	byID := map[uint]model.StudentStat{}
	for _, s := range stats {
		byID[s.ID] = s
	}
	b := byID[busy.ID]
	if b.WorldsStarted != 2 || b.AverageCompletion != 50 || b.TotalTime != 30 {
		t.Fatalf("busy = %+v", b)
	}
	i := byID[idle.ID]
	if i.WorldsStarted != 0 || i.AverageCompletion != 0 || i.TotalTime != 0 {
		t.Fatalf("idle = %+v", i)
	}
}

func TestExportStudentStats(t *testing.T) {
	f := newFixture(t)
	seedStats(t, f)

	dir := t.TempDir()
	storage := NewStorageService(&config.StorageConfig{Type: "local", LocalPath: dir})
	reports := NewReportService(f.stats, storage)
	reports.now = func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) }

	url, err := reports.ExportStudentStats(context.Background())
	if err != nil {
		t.Fatalf("ExportStudentStats: %v", err)
	}
	if url != "/uploads/reports/student-stats-20261015-093000.xlsx" {
		t.Fatalf("url = %q", url)
	}

	path := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not written: %v", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()
	rows, err := wb.GetRows(studentSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "ID" || rows[1][2] != "busy@example.com" {
		t.Fatalf("rows = %v", rows)
	}

	label, err := wb.GetCellValue(studentSheet, "H1")
	if err != nil || label != "Generated" {
		t.Fatalf("H1 = %q, %v", label, err)
	}
	stamp, err := wb.GetCellValue(studentSheet, "I1")
	if err != nil || stamp != reports.now().Format(util.TimeFormat) {
		t.Fatalf("I1 = %q, %v", stamp, err)
	}
}

func TestStudentStatsWorkbookWithoutStudents(t *testing.T) {
	f := newFixture(t)
	reports := NewReportService(f.stats, nil)

	buf, err := reports.StudentStatsWorkbook(context.Background())
	if err != nil {
		t.Fatalf("StudentStatsWorkbook: %v", err)
	}
	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()
	rows, err := wb.GetRows(studentSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "ID" || rows[0][7] != "Generated" {
		t.Fatalf("rows = %v", rows)
	}
}
