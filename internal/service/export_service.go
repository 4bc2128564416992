package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
)

// ExportService renders attendance data as spreadsheet downloads.
type ExportService interface {
	// OverviewXLSX renders the admin overview feed as an .xlsx workbook.
	OverviewXLSX(ctx context.Context, req *dto.OverviewRequest) (*bytes.Buffer, error)
}

type exportService struct {
	repo   *repository.Repository
	codec  *RollNoCodec
	logger *zap.Logger
}

// NewExportService creates the export service.
func NewExportService(repo *repository.Repository, codec *RollNoCodec, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, codec: codec, logger: logger}
}

const exportSheet = "Attendance"

func (s *exportService) OverviewXLSX(ctx context.Context, req *dto.OverviewRequest) (*bytes.Buffer, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = overviewDefaultLimit
	}

	studentID := ""
	if req.RollNo != "" {
		email := s.codec.RollToEmail(req.RollNo)
		if email == "" {
			return nil, ErrStudentNotFound
		}
		student, err := s.repo.User.GetByEmail(ctx, email)
		if err != nil {
			return nil, ErrStudentNotFound
		}
		studentID = student.UserID
	}

	entries, err := s.repo.Entry.ListRecent(ctx, studentID, limit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"Roll No", "Student", "Subject", "Date", "Period", "Present"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, entry := range entries {
		rollNo, studentName := "", ""
		if entry.Student != nil {
			rollNo = s.codec.DeriveRollNumber(entry.Student.Email)
			studentName = entry.Student.Name
		}
		subjectCode, date, period := "", "", ""
		if entry.Session != nil {
			date = normalizeStoredDate(entry.Session.Date)
			period = entry.Session.Period
			if entry.Session.Subject != nil {
				subjectCode = entry.Session.Subject.Code
			}
		}
		present := "absent"
		if entry.Present {
			present = "present"
		}

		values := []interface{}{rollNo, studentName, subjectCode, date, period, present}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "F", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("overview exported", zap.Int("rows", len(entries)))
	return buf, nil
}
