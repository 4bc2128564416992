package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
)

func TestOverviewXLSX(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewExportService(repo, testCodec(), zap.NewNop())
	ctx := context.Background()

	subject := seedSubject(t, repo, "MATH101", "Calculus")
	seedUser(t, repo, "stud-1", "student1@college.edu", "Student One", model.RoleStudent)

	session := &model.AttendanceSession{
		SubjectID: subject.SubjectID,
		Date:      "2026-03-02",
		Period:    "I",
	}
	if err := repo.Session.Create(ctx, session); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	if err := repo.Entry.BatchCreate(ctx, []model.AttendanceEntry{
		{SessionID: session.SessionID, StudentID: "stud-1", Present: true},
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	buf, err := svc.OverviewXLSX(ctx, &dto.OverviewRequest{})
	if err != nil {
		t.Fatalf("OverviewXLSX: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[0][0] != "Roll No" {
		t.Errorf("header = %v", rows[0])
	}
	want := []string{"21BCS001", "Student One", "MATH101", "2026-03-02", "I", "present"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("row[%d] = %q, want %q", i, rows[1][i], cell)
		}
	}
}

func TestOverviewXLSXUnknownRoll(t *testing.T) {
	repo, _ := newTestRepo()
	svc := NewExportService(repo, testCodec(), zap.NewNop())

	_, err := svc.OverviewXLSX(context.Background(), &dto.OverviewRequest{RollNo: "21BCS999"})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("unenrolled roll: got %v, want ErrStudentNotFound", err)
	}

	_, err = svc.OverviewXLSX(context.Background(), &dto.OverviewRequest{RollNo: "garbage"})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("malformed roll: got %v, want ErrStudentNotFound", err)
	}
}
