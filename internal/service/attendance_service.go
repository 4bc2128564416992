package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionRefRequired = errors.New("session_id or (subject + date + period) required")
	ErrInvalidDate        = errors.New("date must be YYYY-MM-DD")
	ErrInvalidPeriod      = errors.New("unknown period")
	ErrNoEntries          = errors.New("entries must not be empty")
	ErrStudentNotFound    = errors.New("student not found")
)

const (
	dateLayout    = "2006-01-02"
	displayLayout = "02 Jan 2006"

	// Share of randomly-present students in generated entries.
	generatedPresentRate = 0.85

	// Default and hard cap for the admin overview feed.
	overviewDefaultLimit = 200
)

// AttendanceService implements week generation, entry replacement and
// the attendance read paths.
type AttendanceService interface {
	// GenerateWeek wipes the current week's sessions and regenerates
	// Monday..Saturday timetables with randomized entries, atomically.
	GenerateWeek(ctx context.Context, actorID string) (*dto.GenerateWeekResponse, error)
	// UpsertSession replaces every entry of one session in a transaction
	// and emits realtime events after commit.
	UpsertSession(ctx context.Context, req *dto.UpsertSessionRequest, actorID string) (*dto.UpsertSessionResponse, error)
	StaffTimetable(ctx context.Context, staffID string, req *dto.TimetableRequest) (*dto.TimetableResponse, error)
	StudentEntries(ctx context.Context, studentID string) ([]dto.EntryResponse, error)
	StudentSummary(ctx context.Context, studentID string) (*dto.SummaryResponse, error)
	SearchSessions(ctx context.Context, req *dto.SessionSearchRequest) ([]dto.SessionResponse, error)
	SessionEntries(ctx context.Context, sessionID string) ([]dto.EntryResponse, error)
	// StudentByRoll resolves a roll number to its student and history.
	StudentByRoll(ctx context.Context, rollNo string) (*dto.StudentWithEntries, error)
	// Overview returns the newest entries system-wide, optionally
	// filtered to one roll number.
	Overview(ctx context.Context, req *dto.OverviewRequest) ([]dto.OverviewEntry, error)
}

type attendanceService struct {
	repo     *repository.Repository
	codec    *RollNoCodec
	notifier Notifier
	logger   *zap.Logger
}

// NewAttendanceService creates the attendance service.
func NewAttendanceService(repo *repository.Repository, codec *RollNoCodec, notifier Notifier, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, codec: codec, notifier: notifier, logger: logger}
}

// ── week generation ──

var specialSubjectNames = map[string]string{
	model.SpecialCodeFree:    "Free Period",
	model.SpecialCodeLibrary: "Library",
	model.SpecialCodeOnline:  "Online Session",
}

func (s *attendanceService) GenerateWeek(ctx context.Context, actorID string) (*dto.GenerateWeekResponse, error) {
	// Sentinel subjects must exist before any timetable references them.
	specials := make([]*model.Subject, 0, len(model.SpecialSubjectCodes))
	for _, code := range model.SpecialSubjectCodes {
		subject := &model.Subject{
			Code:    code,
			Name:    specialSubjectNames[code],
			Section: model.SpecialSection,
		}
		if err := s.repo.Subject.EnsureByCode(ctx, subject); err != nil {
			return nil, err
		}
		specials = append(specials, subject)
	}

	// Regular pool: subjects some staff member teaches. When no
	// assignments exist yet, fall back to every non-sentinel subject.
	regulars, err := s.repo.Subject.ListStaffAssigned(ctx, model.SpecialSubjectCodes)
	if err != nil {
		return nil, err
	}
	if len(regulars) == 0 {
		regulars, err = s.repo.Subject.ListExcludingCodes(ctx, model.SpecialSubjectCodes)
		if err != nil {
			return nil, err
		}
	}

	// Every staff member sees the sentinel slots on their timetable.
	staff, err := s.repo.User.ListByRole(ctx, model.RoleStaff)
	if err != nil {
		return nil, err
	}
	for _, member := range staff {
		for _, subject := range specials {
			if err := s.repo.StaffSubject.EnsureLink(ctx, member.UserID, subject.SubjectID); err != nil {
				return nil, err
			}
		}
	}

	students, err := s.repo.User.ListByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}

	monday := weekMonday(time.Now())
	saturday := monday.AddDate(0, 0, 5)
	days := make([]string, 0, 6)
	for d := 0; d < 6; d++ {
		days = append(days, monday.AddDate(0, 0, d).Format(dateLayout))
	}

	actor := &actorID
	var entries []model.AttendanceEntry
	sessionCount := 0

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		// Destructive replace: everything from the weekend before
		// Monday through Saturday goes, entries cascade.
		wipeFrom := monday.AddDate(0, 0, -2).Format(dateLayout)
		if err := txRepo.Session.DeleteInDateRange(ctx, wipeFrom, saturday.Format(dateLayout)); err != nil {
			return err
		}

		addSession := func(subjectID, date, period string, alwaysPresent bool) error {
			session := &model.AttendanceSession{
				SubjectID: subjectID,
				Date:      date,
				Period:    period,
				BaseModel: model.BaseModel{CreatedBy: actor},
			}
			if err := txRepo.Session.Create(ctx, session); err != nil {
				return err
			}
			sessionCount++

			for _, student := range students {
				entries = append(entries, model.AttendanceEntry{
					SessionID: session.SessionID,
					StudentID: student.UserID,
					Present:   alwaysPresent || rand.Float64() < generatedPresentRate,
					BaseModel: model.BaseModel{CreatedBy: actor},
				})
			}
			return nil
		}

		for day, date := range days {
			// Periods I..V rotate through the regular pool so each
			// subject drifts one slot per day.
			for slot := 0; slot < model.RegularPeriodCount; slot++ {
				if len(regulars) == 0 {
					break
				}
				subject := regulars[(day*model.RegularPeriodCount+slot)%len(regulars)]
				if err := addSession(subject.SubjectID, date, model.PeriodOrder[slot], false); err != nil {
					return err
				}
			}
			// Periods VI..VIII are the fixed sentinel slots, everyone present.
			for i, subject := range specials {
				period := model.PeriodOrder[model.RegularPeriodCount+i]
				if err := addSession(subject.SubjectID, date, period, true); err != nil {
					return err
				}
			}
		}

		return txRepo.Entry.BatchCreate(ctx, entries)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("week generated",
		zap.String("monday", days[0]),
		zap.Int("sessions", sessionCount),
		zap.Int("entries", len(entries)))

	return &dto.GenerateWeekResponse{
		OK:       true,
		Sessions: sessionCount,
		Entries:  len(entries),
		Days:     days,
	}, nil
}

// weekMonday returns the Monday of the week containing now.
// Sunday belongs to the week that just ended.
func weekMonday(now time.Time) time.Time {
	offset := 1 - int(now.Weekday())
	if now.Weekday() == time.Sunday {
		offset = -6
	}
	day := now.AddDate(0, 0, offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

// ── entry replacement ──

func (s *attendanceService) UpsertSession(ctx context.Context, req *dto.UpsertSessionRequest, actorID string) (*dto.UpsertSessionResponse, error) {
	if len(req.Entries) == 0 {
		return nil, ErrNoEntries
	}

	// Last write wins when the same student appears twice in one request.
	byStudent := make(map[string]bool, len(req.Entries))
	order := make([]string, 0, len(req.Entries))
	for _, in := range req.Entries {
		if _, seen := byStudent[in.StudentID]; !seen {
			order = append(order, in.StudentID)
		}
		byStudent[in.StudentID] = in.Present
	}

	actor := &actorID
	var session *model.AttendanceSession
	var entries []model.AttendanceEntry

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		var err error
		session, err = s.resolveSession(ctx, txRepo, req, actorID)
		if err != nil {
			return err
		}

		if err := txRepo.Entry.DeleteBySession(ctx, session.SessionID); err != nil {
			return err
		}

		entries = make([]model.AttendanceEntry, 0, len(order))
		for _, studentID := range order {
			entries = append(entries, model.AttendanceEntry{
				SessionID: session.SessionID,
				StudentID: studentID,
				Present:   byStudent[studentID],
				BaseModel: model.BaseModel{CreatedBy: actor},
			})
		}
		return txRepo.Entry.BatchCreate(ctx, entries)
	})
	if err != nil {
		return nil, err
	}

	date := normalizeStoredDate(session.Date)
	for _, entry := range entries {
		s.notifier.AttendanceUpdated(AttendanceUpdatedEvent{
			SessionID: session.SessionID,
			StudentID: entry.StudentID,
			Present:   entry.Present,
			SubjectID: session.SubjectID,
			Date:      date,
			Period:    session.Period,
		})
	}
	s.notifier.SessionUpdated(SessionUpdatedEvent{
		SessionID: session.SessionID,
		SubjectID: session.SubjectID,
		Date:      date,
		Period:    session.Period,
	})

	s.logger.Info("session entries replaced",
		zap.String("session_id", session.SessionID),
		zap.Int("entries", len(entries)))

	return &dto.UpsertSessionResponse{OK: true, SessionID: session.SessionID}, nil
}

// resolveSession loads the addressed session, or finds/creates one from
// the (subject, date, period) natural key.
func (s *attendanceService) resolveSession(ctx context.Context, txRepo *repository.Repository, req *dto.UpsertSessionRequest, actorID string) (*model.AttendanceSession, error) {
	if req.SessionID != "" {
		session, err := txRepo.Session.GetByID(ctx, req.SessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, err
		}
		return session, nil
	}

	if req.SubjectRef.IsZero() || req.Date == "" || req.Period == "" {
		return nil, ErrSessionRefRequired
	}
	if !model.IsValidPeriod(req.Period) {
		return nil, ErrInvalidPeriod
	}
	date, err := normalizeDate(req.Date)
	if err != nil {
		return nil, err
	}

	subject, err := resolveSubjectRef(ctx, txRepo, req.SubjectRef)
	if err != nil {
		return nil, err
	}

	session, err := txRepo.Session.FindBySlot(ctx, subject.SubjectID, date, req.Period)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session = &model.AttendanceSession{
		SubjectID: subject.SubjectID,
		Date:      date,
		Period:    req.Period,
		BaseModel: model.BaseModel{CreatedBy: &actorID},
	}
	if err := txRepo.Session.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ── read paths ──

func (s *attendanceService) StaffTimetable(ctx context.Context, staffID string, req *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	staff, err := s.repo.User.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	links, err := s.repo.StaffSubject.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	subjectIDs := make([]string, 0, len(links))
	for _, link := range links {
		subjectIDs = append(subjectIDs, link.SubjectID)
	}

	monday := weekMonday(time.Now())
	startDate := monday.Format(dateLayout)
	endDate := monday.AddDate(0, 0, 5).Format(dateLayout)
	if req.StartDate != "" {
		if startDate, err = normalizeDate(req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != "" {
		if endDate, err = normalizeDate(req.EndDate); err != nil {
			return nil, err
		}
	}

	sessions, err := s.repo.Session.ListBySubjectsInRange(ctx, subjectIDs, startDate, endDate)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*dto.TimetableDay)
	var dayOrder []string
	for i := range sessions {
		session := &sessions[i]
		date := normalizeStoredDate(session.Date)

		day, ok := byDate[date]
		if !ok {
			day = &dto.TimetableDay{
				Date:    date,
				DayName: dayName(date),
				Periods: make(map[string]dto.TimetableSlot),
			}
			byDate[date] = day
			dayOrder = append(dayOrder, date)
		}

		slot := dto.TimetableSlot{SessionID: session.SessionID}
		if brief := subjectBrief(session.Subject); brief != nil {
			slot.Subject = *brief
		}
		day.Periods[session.Period] = slot
	}

	days := make([]dto.TimetableDay, 0, len(dayOrder))
	for _, date := range dayOrder {
		days = append(days, *byDate[date])
	}

	return &dto.TimetableResponse{
		Staff: dto.UserBrief{
			ID:    staff.UserID,
			Name:  staff.Name,
			Email: staff.Email,
			Role:  staff.Role,
		},
		PeriodOrder: model.PeriodOrder,
		Days:        days,
		Range:       dto.DateRange{StartDate: startDate, EndDate: endDate},
	}, nil
}

func (s *attendanceService) StudentEntries(ctx context.Context, studentID string) ([]dto.EntryResponse, error) {
	entries, err := s.repo.Entry.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return entryResponses(entries), nil
}

func (s *attendanceService) StudentSummary(ctx context.Context, studentID string) (*dto.SummaryResponse, error) {
	entries, err := s.repo.Entry.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	summary := &dto.SummaryResponse{StudentID: studentID, Total: len(entries)}
	for _, entry := range entries {
		if entry.Present {
			summary.Present++
		} else {
			summary.Absent++
		}
	}
	return summary, nil
}

func (s *attendanceService) SearchSessions(ctx context.Context, req *dto.SessionSearchRequest) ([]dto.SessionResponse, error) {
	subject, err := resolveSubjectRef(ctx, s.repo, req.SubjectRef)
	if err != nil {
		return nil, err
	}

	date := ""
	if req.Date != "" {
		if date, err = normalizeDate(req.Date); err != nil {
			return nil, err
		}
	}

	sessions, err := s.repo.Session.ListBySubject(ctx, subject.SubjectID, date)
	if err != nil {
		return nil, err
	}

	sessionIDs := make([]string, 0, len(sessions))
	for i := range sessions {
		sessionIDs = append(sessionIDs, sessions[i].SessionID)
	}
	counts, err := s.repo.Entry.CountsBySession(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		session := &sessions[i]
		sessionDate := normalizeStoredDate(session.Date)
		count := counts[session.SessionID]
		out = append(out, dto.SessionResponse{
			SessionID:   session.SessionID,
			SubjectID:   session.SubjectID,
			Date:        sessionDate,
			Period:      session.Period,
			Completed:   count > 0,
			EntryCount:  count,
			DisplayDate: displayDate(sessionDate),
			DayName:     dayName(sessionDate),
			Subject:     subjectBrief(session.Subject),
		})
	}
	return out, nil
}

func (s *attendanceService) SessionEntries(ctx context.Context, sessionID string) ([]dto.EntryResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	entries, err := s.repo.Entry.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	date := normalizeStoredDate(session.Date)
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.EntryResponse{
			EntryID:   entry.EntryID,
			SessionID: entry.SessionID,
			StudentID: entry.StudentID,
			Present:   entry.Present,
			Date:      date,
			Period:    session.Period,
			Subject:   subjectBrief(session.Subject),
		})
	}
	return out, nil
}

func (s *attendanceService) StudentByRoll(ctx context.Context, rollNo string) (*dto.StudentWithEntries, error) {
	email := s.codec.RollToEmail(rollNo)
	if email == "" {
		return nil, ErrStudentNotFound
	}

	student, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	entries, err := s.repo.Entry.ListByStudent(ctx, student.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentWithEntries{
		Student: dto.UserBrief{
			ID:     student.UserID,
			Name:   student.Name,
			Email:  student.Email,
			Role:   student.Role,
			RollNo: s.codec.DeriveRollNumber(student.Email),
		},
		Entries: entryResponses(entries),
	}, nil
}

func (s *attendanceService) Overview(ctx context.Context, req *dto.OverviewRequest) ([]dto.OverviewEntry, error) {
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
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStudentNotFound
			}
			return nil, err
		}
		studentID = student.UserID
	}

	entries, err := s.repo.Entry.ListRecent(ctx, studentID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.OverviewEntry, 0, len(entries))
	for _, entry := range entries {
		row := dto.OverviewEntry{
			EntryID:   entry.EntryID,
			SessionID: entry.SessionID,
			Present:   entry.Present,
		}
		if entry.Student != nil {
			row.Student = dto.UserBrief{
				ID:     entry.Student.UserID,
				Name:   entry.Student.Name,
				Email:  entry.Student.Email,
				Role:   entry.Student.Role,
				RollNo: s.codec.DeriveRollNumber(entry.Student.Email),
			}
		}
		if entry.Session != nil {
			row.Date = normalizeStoredDate(entry.Session.Date)
			row.Period = entry.Session.Period
			row.Subject = subjectBrief(entry.Session.Subject)
		}
		out = append(out, row)
	}
	return out, nil
}

// ── date helpers ──

// normalizeDate strips any time component and validates the day.
func normalizeDate(s string) (string, error) {
	s = normalizeStoredDate(s)
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}

// normalizeStoredDate truncates timestamps the database driver may
// render for DATE columns back to YYYY-MM-DD.
func normalizeStoredDate(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 'T' || s[i] == ' ' {
			return s[:i]
		}
	}
	return s
}

func dayName(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

func displayDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayLayout)
}

func entryResponses(entries []model.AttendanceEntry) []dto.EntryResponse {
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp := dto.EntryResponse{
			EntryID:   entry.EntryID,
			SessionID: entry.SessionID,
			StudentID: entry.StudentID,
			Present:   entry.Present,
		}
		if entry.Session != nil {
			resp.Date = normalizeStoredDate(entry.Session.Date)
			resp.Period = entry.Session.Period
			resp.Subject = subjectBrief(entry.Session.Subject)
		}
		out = append(out, resp)
	}
	return out
}
