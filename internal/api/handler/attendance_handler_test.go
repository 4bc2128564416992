package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/prasanthzodiac/College-connect-sub000/internal/dto"
	"github.com/prasanthzodiac/College-connect-sub000/internal/model"
	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors the unified response shape for assertions.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// identity injects an authenticated caller the way JWTAuth would.
func identity(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("email", userID+"@college.edu")
		c.Set("role", role)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// mockAttendanceService stubs the attendance service with function fields.
type mockAttendanceService struct {
	generateWeekFn  func(ctx context.Context, actorID string) (*dto.GenerateWeekResponse, error)
	upsertSessionFn func(ctx context.Context, req *dto.UpsertSessionRequest, actorID string) (*dto.UpsertSessionResponse, error)
	studentByRollFn func(ctx context.Context, rollNo string) (*dto.StudentWithEntries, error)
	entriesFn       func(ctx context.Context, studentID string) ([]dto.EntryResponse, error)
	summaryFn       func(ctx context.Context, studentID string) (*dto.SummaryResponse, error)
}

func (m *mockAttendanceService) GenerateWeek(ctx context.Context, actorID string) (*dto.GenerateWeekResponse, error) {
	return m.generateWeekFn(ctx, actorID)
}

func (m *mockAttendanceService) UpsertSession(ctx context.Context, req *dto.UpsertSessionRequest, actorID string) (*dto.UpsertSessionResponse, error) {
	return m.upsertSessionFn(ctx, req, actorID)
}

func (m *mockAttendanceService) StaffTimetable(context.Context, string, *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	return &dto.TimetableResponse{}, nil
}

func (m *mockAttendanceService) StudentEntries(ctx context.Context, studentID string) ([]dto.EntryResponse, error) {
	if m.entriesFn != nil {
		return m.entriesFn(ctx, studentID)
	}
	return nil, nil
}

func (m *mockAttendanceService) StudentSummary(ctx context.Context, studentID string) (*dto.SummaryResponse, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, studentID)
	}
	return &dto.SummaryResponse{StudentID: studentID}, nil
}

func (m *mockAttendanceService) SearchSessions(context.Context, *dto.SessionSearchRequest) ([]dto.SessionResponse, error) {
	return nil, nil
}

func (m *mockAttendanceService) SessionEntries(context.Context, string) ([]dto.EntryResponse, error) {
	return nil, nil
}

func (m *mockAttendanceService) StudentByRoll(ctx context.Context, rollNo string) (*dto.StudentWithEntries, error) {
	return m.studentByRollFn(ctx, rollNo)
}

func (m *mockAttendanceService) Overview(context.Context, *dto.OverviewRequest) ([]dto.OverviewEntry, error) {
	return nil, nil
}

func TestUpsertSessionHandler(t *testing.T) {
	var gotActor string
	var gotReq *dto.UpsertSessionRequest
	mock := &mockAttendanceService{
		upsertSessionFn: func(_ context.Context, req *dto.UpsertSessionRequest, actorID string) (*dto.UpsertSessionResponse, error) {
			gotActor = actorID
			gotReq = req
			return &dto.UpsertSessionResponse{OK: true, SessionID: "sess-1"}, nil
		},
	}
	h := NewAttendanceHandler(mock)

	r := gin.New()
	r.POST("/sessions", identity("staff-1", model.RoleStaff), h.UpsertSession)

	w, env := doJSON(r, http.MethodPost, "/sessions", gin.H{
		"subject_code": "MATH101",
		"date":         "2026-03-02",
		"period":       "I",
		"entries": []gin.H{
			{"student_id": "2a0b6e2e-6f3f-4f39-9e9f-000000000001", "present": true},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if env.Code != 0 {
		t.Errorf("code %d, want 0", env.Code)
	}
	if gotActor != "staff-1" {
		t.Errorf("actor %q, want staff-1", gotActor)
	}
	if gotReq == nil || gotReq.SubjectCode != "MATH101" || len(gotReq.Entries) != 1 {
		t.Errorf("unexpected bound request: %+v", gotReq)
	}
}

func TestUpsertSessionHandlerErrors(t *testing.T) {
	mock := &mockAttendanceService{
		upsertSessionFn: func(context.Context, *dto.UpsertSessionRequest, string) (*dto.UpsertSessionResponse, error) {
			return nil, service.ErrSessionNotFound
		},
	}
	h := NewAttendanceHandler(mock)

	r := gin.New()
	r.POST("/sessions", identity("staff-1", model.RoleStaff), h.UpsertSession)

	// Binding failure never reaches the service.
	w, env := doJSON(r, http.MethodPost, "/sessions", gin.H{"entries": []gin.H{}})
	if w.Code != http.StatusBadRequest || env.Code != 10001 {
		t.Errorf("empty entries: status %d code %d, want 400/10001", w.Code, env.Code)
	}

	w, env = doJSON(r, http.MethodPost, "/sessions", gin.H{
		"session_id": "2a0b6e2e-6f3f-4f39-9e9f-000000000009",
		"entries": []gin.H{
			{"student_id": "2a0b6e2e-6f3f-4f39-9e9f-000000000001", "present": true},
		},
	})
	if w.Code != http.StatusNotFound || env.Code != 13001 {
		t.Errorf("missing session: status %d code %d, want 404/13001", w.Code, env.Code)
	}
}

func TestGenerateWeekHandler(t *testing.T) {
	mock := &mockAttendanceService{
		generateWeekFn: func(_ context.Context, actorID string) (*dto.GenerateWeekResponse, error) {
			return &dto.GenerateWeekResponse{OK: true, Sessions: 48, Entries: 144}, nil
		},
	}
	h := NewAttendanceHandler(mock)

	r := gin.New()
	r.POST("/generate-week", identity("admin-1", model.RoleAdmin), h.GenerateWeek)

	w, env := doJSON(r, http.MethodPost, "/generate-week", nil)
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("status %d code %d, want 200/0", w.Code, env.Code)
	}

	var resp dto.GenerateWeekResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.Sessions != 48 || resp.Entries != 144 {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestStudentEntriesSelfOrStaff(t *testing.T) {
	mock := &mockAttendanceService{
		entriesFn: func(_ context.Context, studentID string) ([]dto.EntryResponse, error) {
			return []dto.EntryResponse{{StudentID: studentID}}, nil
		},
	}
	h := NewAttendanceHandler(mock)

	tests := []struct {
		name       string
		userID     string
		role       string
		path       string
		wantStatus int
	}{
		{"student reads self", "stud-1", model.RoleStudent, "/students/stud-1/entries", http.StatusOK},
		{"student reads me alias", "stud-1", model.RoleStudent, "/students/me/entries", http.StatusOK},
		{"student reads other", "stud-1", model.RoleStudent, "/students/stud-2/entries", http.StatusForbidden},
		{"staff reads other", "staff-1", model.RoleStaff, "/students/stud-2/entries", http.StatusOK},
		{"admin reads other", "admin-1", model.RoleAdmin, "/students/stud-2/entries", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/students/:id/entries", identity(tt.userID, tt.role), h.StudentEntries)

			w, _ := doJSON(r, http.MethodGet, tt.path, nil)
			if w.Code != tt.wantStatus {
				t.Errorf("status %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestStudentSummaryAnyAuthenticated(t *testing.T) {
	mock := &mockAttendanceService{
		summaryFn: func(_ context.Context, studentID string) (*dto.SummaryResponse, error) {
			return &dto.SummaryResponse{StudentID: studentID}, nil
		},
	}
	h := NewAttendanceHandler(mock)

	tests := []struct {
		name        string
		userID      string
		role        string
		path        string
		wantStudent string
	}{
		{"student reads self", "stud-1", model.RoleStudent, "/students/stud-1/summary", "stud-1"},
		{"student reads me alias", "stud-1", model.RoleStudent, "/students/me/summary", "stud-1"},
		{"student reads classmate", "stud-1", model.RoleStudent, "/students/stud-2/summary", "stud-2"},
		{"staff reads student", "staff-1", model.RoleStaff, "/students/stud-2/summary", "stud-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/students/:id/summary", identity(tt.userID, tt.role), h.StudentSummary)

			w, env := doJSON(r, http.MethodGet, tt.path, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status %d, want 200", w.Code)
			}

			var resp dto.SummaryResponse
			if err := json.Unmarshal(env.Data, &resp); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if resp.StudentID != tt.wantStudent {
				t.Errorf("student %q, want %q", resp.StudentID, tt.wantStudent)
			}
		})
	}
}

func TestStudentByRollHandler(t *testing.T) {
	mock := &mockAttendanceService{
		studentByRollFn: func(_ context.Context, rollNo string) (*dto.StudentWithEntries, error) {
			if rollNo != "21BCS007" {
				return nil, service.ErrStudentNotFound
			}
			return &dto.StudentWithEntries{Student: dto.UserBrief{ID: "stud-7", RollNo: rollNo}}, nil
		},
	}
	h := NewAttendanceHandler(mock)

	r := gin.New()
	r.GET("/roll/:roll_no", identity("staff-1", model.RoleStaff), h.StudentByRoll)

	w, env := doJSON(r, http.MethodGet, "/roll/21BCS007", nil)
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Errorf("known roll: status %d code %d", w.Code, env.Code)
	}

	w, env = doJSON(r, http.MethodGet, "/roll/21BCS999", nil)
	if w.Code != http.StatusNotFound || env.Code != 13006 {
		t.Errorf("unknown roll: status %d code %d, want 404/13006", w.Code, env.Code)
	}
}
