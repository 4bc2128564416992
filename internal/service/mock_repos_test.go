package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/repository"
	pkgerrors "github.com/prasanthzodiac/College-connect-sub000/pkg/errors"
)

// memStore is the shared in-memory backing for every mock repository,
// so cross-repository reads (preloads, staff-assigned subjects) behave
// like the real schema.
type memStore struct {
	seq      int
	users    map[string]*model.User
	subjects []*model.Subject
	links    []model.StaffSubject
	rosters  []model.Enrollment
	sessions []*model.AttendanceSession
	entries  []*model.AttendanceEntry
	leaves   map[string]*model.LeaveRequest
	grvs     map[string]*model.Grievance
	certs    map[string]*model.CertificateRequest
	marks    []*model.InternalMark
	works    []*model.Assignment
	notices  []*model.Circular
	events   []*model.Event
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]*model.User),
		leaves: make(map[string]*model.LeaveRequest),
		grvs:   make(map[string]*model.Grievance),
		certs:  make(map[string]*model.CertificateRequest),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%04d", prefix, s.seq)
}

func (s *memStore) subjectByID(id string) *model.Subject {
	for _, sub := range s.subjects {
		if sub.SubjectID == id {
			return sub
		}
	}
	return nil
}

func (s *memStore) sessionByID(id string) *model.AttendanceSession {
	for _, sess := range s.sessions {
		if sess.SessionID == id {
			return sess
		}
	}
	return nil
}

// newTestRepo assembles a Repository over one shared memStore.
// The aggregate has no database attached, so Transaction runs the
// closure directly.
func newTestRepo() (*repository.Repository, *memStore) {
	s := newMemStore()
	return &repository.Repository{
		User:         &mockUserRepo{s},
		Subject:      &mockSubjectRepo{s},
		StaffSubject: &mockStaffSubjectRepo{s},
		Enrollment:   &mockEnrollmentRepo{s},
		Session:      &mockSessionRepo{s},
		Entry:        &mockEntryRepo{s},
		Leave:        &mockLeaveRepo{s},
		Grievance:    &mockGrievanceRepo{s},
		Certificate:  &mockCertificateRepo{s},
		Mark:         &mockMarkRepo{s},
		Assignment:   &mockAssignmentRepo{s},
		Circular:     &mockCircularRepo{s},
		Event:        &mockEventRepo{s},
	}, s
}

// ── mock UserRepository ──

type mockUserRepo struct{ s *memStore }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = m.s.nextID("user")
	}
	user.CreatedAt = time.Now()
	m.s.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.s.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.s.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.s.users {
		all = append(all, *u)
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── mock SubjectRepository ──

type mockSubjectRepo struct{ s *memStore }

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		subject.SubjectID = m.s.nextID("sub")
	}
	m.s.subjects = append(m.s.subjects, subject)
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if sub := m.s.subjectByID(id); sub != nil {
		return sub, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, code string) (*model.Subject, error) {
	for _, sub := range m.s.subjects {
		if sub.Code == code {
			return sub, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) EnsureByCode(ctx context.Context, subject *model.Subject) error {
	if existing, err := m.GetByCode(ctx, subject.Code); err == nil {
		*subject = *existing
		return nil
	}
	return m.Create(ctx, subject)
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	result := make([]model.Subject, 0, len(m.s.subjects))
	for _, sub := range m.s.subjects {
		result = append(result, *sub)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockSubjectRepo) ListStaffAssigned(_ context.Context, excludeCodes []string) ([]model.Subject, error) {
	assigned := make(map[string]bool)
	for _, link := range m.s.links {
		assigned[link.SubjectID] = true
	}

	var result []model.Subject
	for _, sub := range m.s.subjects {
		if assigned[sub.SubjectID] && !containsCode(excludeCodes, sub.Code) {
			result = append(result, *sub)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockSubjectRepo) ListExcludingCodes(_ context.Context, excludeCodes []string) ([]model.Subject, error) {
	var result []model.Subject
	for _, sub := range m.s.subjects {
		if !containsCode(excludeCodes, sub.Code) {
			result = append(result, *sub)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// ── mock StaffSubjectRepository ──

type mockStaffSubjectRepo struct{ s *memStore }

func (m *mockStaffSubjectRepo) EnsureLink(_ context.Context, staffID, subjectID string) error {
	for _, link := range m.s.links {
		if link.StaffID == staffID && link.SubjectID == subjectID {
			return nil
		}
	}
	m.s.links = append(m.s.links, model.StaffSubject{
		StaffSubjectID: m.s.nextID("ss"),
		StaffID:        staffID,
		SubjectID:      subjectID,
	})
	return nil
}

func (m *mockStaffSubjectRepo) ListByStaff(_ context.Context, staffID string) ([]model.StaffSubject, error) {
	var result []model.StaffSubject
	for _, link := range m.s.links {
		if link.StaffID == staffID {
			link.Subject = m.s.subjectByID(link.SubjectID)
			result = append(result, link)
		}
	}
	return result, nil
}

func (m *mockStaffSubjectRepo) DeleteLink(_ context.Context, staffID, subjectID string) error {
	kept := m.s.links[:0]
	for _, link := range m.s.links {
		if !(link.StaffID == staffID && link.SubjectID == subjectID) {
			kept = append(kept, link)
		}
	}
	m.s.links = kept
	return nil
}

// ── mock EnrollmentRepository ──

type mockEnrollmentRepo struct{ s *memStore }

func (m *mockEnrollmentRepo) EnsureLink(_ context.Context, subjectID, studentID string) error {
	for _, link := range m.s.rosters {
		if link.SubjectID == subjectID && link.StudentID == studentID {
			return nil
		}
	}
	m.s.rosters = append(m.s.rosters, model.Enrollment{
		EnrollmentID: m.s.nextID("enr"),
		SubjectID:    subjectID,
		StudentID:    studentID,
	})
	return nil
}

func (m *mockEnrollmentRepo) ListBySubject(_ context.Context, subjectID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, link := range m.s.rosters {
		if link.SubjectID == subjectID {
			link.Student = m.s.users[link.StudentID]
			result = append(result, link)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, link := range m.s.rosters {
		if link.StudentID == studentID {
			link.Subject = m.s.subjectByID(link.SubjectID)
			result = append(result, link)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) DeleteLink(_ context.Context, subjectID, studentID string) error {
	kept := m.s.rosters[:0]
	for _, link := range m.s.rosters {
		if !(link.SubjectID == subjectID && link.StudentID == studentID) {
			kept = append(kept, link)
		}
	}
	m.s.rosters = kept
	return nil
}

// ── mock AttendanceSessionRepository ──

type mockSessionRepo struct{ s *memStore }

func (m *mockSessionRepo) Create(_ context.Context, session *model.AttendanceSession) error {
	if session.SessionID == "" {
		session.SessionID = m.s.nextID("sess")
	}
	session.CreatedAt = time.Now()
	m.s.sessions = append(m.s.sessions, session)
	return nil
}

func (m *mockSessionRepo) BatchCreate(ctx context.Context, sessions []model.AttendanceSession) error {
	for i := range sessions {
		if err := m.Create(ctx, &sessions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.AttendanceSession, error) {
	if sess := m.s.sessionByID(id); sess != nil {
		sess.Subject = m.s.subjectByID(sess.SubjectID)
		return sess, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) FindBySlot(_ context.Context, subjectID, date, period string) (*model.AttendanceSession, error) {
	for _, sess := range m.s.sessions {
		if sess.SubjectID == subjectID && sess.Date == date && sess.Period == period {
			return sess, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ListBySubject(_ context.Context, subjectID, date string) ([]model.AttendanceSession, error) {
	var result []model.AttendanceSession
	for _, sess := range m.s.sessions {
		if sess.SubjectID != subjectID {
			continue
		}
		if date != "" && sess.Date != date {
			continue
		}
		copy := *sess
		copy.Subject = m.s.subjectByID(sess.SubjectID)
		result = append(result, copy)
	}
	return result, nil
}

func (m *mockSessionRepo) ListBySubjectsInRange(_ context.Context, subjectIDs []string, startDate, endDate string) ([]model.AttendanceSession, error) {
	wanted := make(map[string]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		wanted[id] = true
	}

	var result []model.AttendanceSession
	for _, sess := range m.s.sessions {
		if wanted[sess.SubjectID] && sess.Date >= startDate && sess.Date <= endDate {
			copy := *sess
			copy.Subject = m.s.subjectByID(sess.SubjectID)
			result = append(result, copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Period < result[j].Period
	})
	return result, nil
}

func (m *mockSessionRepo) DeleteInDateRange(_ context.Context, startDate, endDate string) error {
	removed := make(map[string]bool)
	kept := m.s.sessions[:0]
	for _, sess := range m.s.sessions {
		if sess.Date >= startDate && sess.Date <= endDate {
			removed[sess.SessionID] = true
			continue
		}
		kept = append(kept, sess)
	}
	m.s.sessions = kept

	// entries cascade
	keptEntries := m.s.entries[:0]
	for _, e := range m.s.entries {
		if !removed[e.SessionID] {
			keptEntries = append(keptEntries, e)
		}
	}
	m.s.entries = keptEntries
	return nil
}

// ── mock AttendanceEntryRepository ──

type mockEntryRepo struct{ s *memStore }

func (m *mockEntryRepo) BatchCreate(_ context.Context, entries []model.AttendanceEntry) error {
	for i := range entries {
		e := entries[i]
		if e.EntryID == "" {
			e.EntryID = m.s.nextID("entry")
			entries[i].EntryID = e.EntryID
		}
		e.CreatedAt = time.Now()
		m.s.entries = append(m.s.entries, &e)
	}
	return nil
}

func (m *mockEntryRepo) ListBySession(_ context.Context, sessionID string) ([]model.AttendanceEntry, error) {
	var result []model.AttendanceEntry
	for _, e := range m.s.entries {
		if e.SessionID == sessionID {
			copy := *e
			copy.Student = m.s.users[e.StudentID]
			result = append(result, copy)
		}
	}
	return result, nil
}

func (m *mockEntryRepo) ListByStudent(_ context.Context, studentID string) ([]model.AttendanceEntry, error) {
	var result []model.AttendanceEntry
	for i := len(m.s.entries) - 1; i >= 0; i-- {
		e := m.s.entries[i]
		if e.StudentID != studentID {
			continue
		}
		copy := *e
		if sess := m.s.sessionByID(e.SessionID); sess != nil {
			withSubject := *sess
			withSubject.Subject = m.s.subjectByID(sess.SubjectID)
			copy.Session = &withSubject
		}
		result = append(result, copy)
	}
	return result, nil
}

func (m *mockEntryRepo) ListRecent(_ context.Context, studentID string, limit int) ([]model.AttendanceEntry, error) {
	var result []model.AttendanceEntry
	for i := len(m.s.entries) - 1; i >= 0 && len(result) < limit; i-- {
		e := m.s.entries[i]
		if studentID != "" && e.StudentID != studentID {
			continue
		}
		copy := *e
		copy.Student = m.s.users[e.StudentID]
		if sess := m.s.sessionByID(e.SessionID); sess != nil {
			withSubject := *sess
			withSubject.Subject = m.s.subjectByID(sess.SubjectID)
			copy.Session = &withSubject
		}
		result = append(result, copy)
	}
	return result, nil
}

func (m *mockEntryRepo) CountsBySession(_ context.Context, sessionIDs []string) (map[string]int, error) {
	wanted := make(map[string]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		wanted[id] = true
	}
	counts := make(map[string]int)
	for _, e := range m.s.entries {
		if wanted[e.SessionID] {
			counts[e.SessionID]++
		}
	}
	return counts, nil
}

func (m *mockEntryRepo) DeleteBySession(_ context.Context, sessionID string) error {
	kept := m.s.entries[:0]
	for _, e := range m.s.entries {
		if e.SessionID != sessionID {
			kept = append(kept, e)
		}
	}
	m.s.entries = kept
	return nil
}

// ── mock LeaveRepository ──

type mockLeaveRepo struct{ s *memStore }

func (m *mockLeaveRepo) Create(_ context.Context, leave *model.LeaveRequest) error {
	if leave.LeaveID == "" {
		leave.LeaveID = m.s.nextID("leave")
	}
	leave.CreatedAt = time.Now()
	m.s.leaves[leave.LeaveID] = leave
	return nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id string) (*model.LeaveRequest, error) {
	if l, ok := m.s.leaves[id]; ok {
		copy := *l
		copy.Student = m.s.users[l.StudentID]
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) ListByStudent(_ context.Context, studentID string) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, l := range m.s.leaves {
		if l.StudentID == studentID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLeaveRepo) ListByStatus(_ context.Context, status string, offset, limit int) ([]model.LeaveRequest, int64, error) {
	var all []model.LeaveRequest
	for _, l := range m.s.leaves {
		if status == "" || l.Status == status {
			all = append(all, *l)
		}
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockLeaveRepo) UpdateDecision(_ context.Context, leave *model.LeaveRequest) error {
	stored, ok := m.s.leaves[leave.LeaveID]
	if !ok || stored.Version != leave.Version {
		return pkgerrors.ErrOptimisticLock
	}
	leave.Version++
	copy := *leave
	copy.Student = nil
	m.s.leaves[leave.LeaveID] = &copy
	return nil
}

// ── mock GrievanceRepository ──

type mockGrievanceRepo struct{ s *memStore }

func (m *mockGrievanceRepo) Create(_ context.Context, grievance *model.Grievance) error {
	if grievance.GrievanceID == "" {
		grievance.GrievanceID = m.s.nextID("grv")
	}
	grievance.CreatedAt = time.Now()
	m.s.grvs[grievance.GrievanceID] = grievance
	return nil
}

func (m *mockGrievanceRepo) GetByID(_ context.Context, id string) (*model.Grievance, error) {
	if g, ok := m.s.grvs[id]; ok {
		copy := *g
		copy.Student = m.s.users[g.StudentID]
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGrievanceRepo) ListByStudent(_ context.Context, studentID string) ([]model.Grievance, error) {
	var result []model.Grievance
	for _, g := range m.s.grvs {
		if g.StudentID == studentID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGrievanceRepo) ListByStatus(_ context.Context, status string, offset, limit int) ([]model.Grievance, int64, error) {
	var all []model.Grievance
	for _, g := range m.s.grvs {
		if status == "" || g.Status == status {
			all = append(all, *g)
		}
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockGrievanceRepo) UpdateResolution(_ context.Context, grievance *model.Grievance) error {
	stored, ok := m.s.grvs[grievance.GrievanceID]
	if !ok || stored.Version != grievance.Version {
		return pkgerrors.ErrOptimisticLock
	}
	grievance.Version++
	copy := *grievance
	copy.Student = nil
	m.s.grvs[grievance.GrievanceID] = &copy
	return nil
}

// ── mock CertificateRepository ──

type mockCertificateRepo struct{ s *memStore }

func (m *mockCertificateRepo) Create(_ context.Context, cert *model.CertificateRequest) error {
	if cert.CertificateID == "" {
		cert.CertificateID = m.s.nextID("cert")
	}
	cert.CreatedAt = time.Now()
	m.s.certs[cert.CertificateID] = cert
	return nil
}

func (m *mockCertificateRepo) GetByID(_ context.Context, id string) (*model.CertificateRequest, error) {
	if c, ok := m.s.certs[id]; ok {
		copy := *c
		copy.Student = m.s.users[c.StudentID]
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCertificateRepo) ListByStudent(_ context.Context, studentID string) ([]model.CertificateRequest, error) {
	var result []model.CertificateRequest
	for _, c := range m.s.certs {
		if c.StudentID == studentID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCertificateRepo) ListByStatus(_ context.Context, status string, offset, limit int) ([]model.CertificateRequest, int64, error) {
	var all []model.CertificateRequest
	for _, c := range m.s.certs {
		if status == "" || c.Status == status {
			all = append(all, *c)
		}
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockCertificateRepo) UpdateDecision(_ context.Context, cert *model.CertificateRequest) error {
	stored, ok := m.s.certs[cert.CertificateID]
	if !ok || stored.Version != cert.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cert.Version++
	copy := *cert
	copy.Student = nil
	m.s.certs[cert.CertificateID] = &copy
	return nil
}

// ── mock MarkRepository ──

type mockMarkRepo struct{ s *memStore }

func (m *mockMarkRepo) Upsert(_ context.Context, mark *model.InternalMark) error {
	for _, stored := range m.s.marks {
		if stored.SubjectID == mark.SubjectID && stored.StudentID == mark.StudentID && stored.Exam == mark.Exam {
			stored.Marks = mark.Marks
			stored.MaxMarks = mark.MaxMarks
			stored.UpdatedBy = mark.UpdatedBy
			mark.MarkID = stored.MarkID
			return nil
		}
	}
	if mark.MarkID == "" {
		mark.MarkID = m.s.nextID("mark")
	}
	mark.CreatedAt = time.Now()
	copy := *mark
	m.s.marks = append(m.s.marks, &copy)
	return nil
}

func (m *mockMarkRepo) ListByStudent(_ context.Context, studentID string) ([]model.InternalMark, error) {
	var result []model.InternalMark
	for _, mk := range m.s.marks {
		if mk.StudentID == studentID {
			copy := *mk
			copy.Subject = m.s.subjectByID(mk.SubjectID)
			result = append(result, copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Exam < result[j].Exam })
	return result, nil
}

func (m *mockMarkRepo) ListBySubject(_ context.Context, subjectID, exam string) ([]model.InternalMark, error) {
	var result []model.InternalMark
	for _, mk := range m.s.marks {
		if mk.SubjectID != subjectID {
			continue
		}
		if exam != "" && mk.Exam != exam {
			continue
		}
		copy := *mk
		copy.Student = m.s.users[mk.StudentID]
		result = append(result, copy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Exam < result[j].Exam })
	return result, nil
}

// ── mock AssignmentRepository ──

type mockAssignmentRepo struct{ s *memStore }

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = m.s.nextID("asgn")
	}
	assignment.CreatedAt = time.Now()
	m.s.works = append(m.s.works, assignment)
	return nil
}

func (m *mockAssignmentRepo) ListBySubject(_ context.Context, subjectID string) ([]model.Assignment, error) {
	return m.ListBySubjects(context.Background(), []string{subjectID})
}

func (m *mockAssignmentRepo) ListBySubjects(_ context.Context, subjectIDs []string) ([]model.Assignment, error) {
	wanted := make(map[string]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		wanted[id] = true
	}
	var result []model.Assignment
	for _, a := range m.s.works {
		if wanted[a.SubjectID] {
			copy := *a
			copy.Subject = m.s.subjectByID(a.SubjectID)
			result = append(result, copy)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DueDate < result[j].DueDate })
	return result, nil
}

// ── mock CircularRepository ──

type mockCircularRepo struct{ s *memStore }

func (m *mockCircularRepo) Create(_ context.Context, circular *model.Circular) error {
	if circular.CircularID == "" {
		circular.CircularID = m.s.nextID("circ")
	}
	circular.CreatedAt = time.Now()
	m.s.notices = append(m.s.notices, circular)
	return nil
}

func (m *mockCircularRepo) ListForAudiences(_ context.Context, audiences []string, offset, limit int) ([]model.Circular, int64, error) {
	wanted := make(map[string]bool, len(audiences))
	for _, a := range audiences {
		wanted[a] = true
	}
	var all []model.Circular
	for i := len(m.s.notices) - 1; i >= 0; i-- {
		if c := m.s.notices[i]; wanted[c.Audience] {
			all = append(all, *c)
		}
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── mock EventRepository ──

type mockEventRepo struct{ s *memStore }

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		event.EventID = m.s.nextID("event")
	}
	event.CreatedAt = time.Now()
	m.s.events = append(m.s.events, event)
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	for _, e := range m.s.events {
		if e.EventID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context) ([]model.Event, error) {
	result := make([]model.Event, 0, len(m.s.events))
	for _, e := range m.s.events {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartsAt.Before(result[j].StartsAt) })
	return result, nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	kept := m.s.events[:0]
	for _, e := range m.s.events {
		if e.EventID != id {
			kept = append(kept, e)
		}
	}
	m.s.events = kept
	return nil
}
