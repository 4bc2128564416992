package dto

// EntryInput is one student's presence flag in an upsert request.
type EntryInput struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Present   bool   `json:"present"`
}

// UpsertSessionRequest replaces every entry of one session.
// Either session_id or (subject ref + date + period) must be supplied.
type UpsertSessionRequest struct {
	SessionID string `json:"session_id" binding:"omitempty,uuid"`
	SubjectRef
	Date    string       `json:"date"    binding:"omitempty"`
	Period  string       `json:"period"  binding:"omitempty"`
	Entries []EntryInput `json:"entries" binding:"required,min=1,dive"`
}

// UpsertSessionResponse acknowledges an upsert.
type UpsertSessionResponse struct {
	OK        bool   `json:"ok"`
	SessionID string `json:"session_id"`
}

// GenerateWeekResponse reports what the week generator materialized.
type GenerateWeekResponse struct {
	OK       bool     `json:"ok"`
	Sessions int      `json:"sessions"`
	Entries  int      `json:"entries"`
	Days     []string `json:"days"`
}

// TimetableRequest bounds the staff timetable query.
type TimetableRequest struct {
	StartDate string `form:"start_date" binding:"omitempty"`
	EndDate   string `form:"end_date"   binding:"omitempty"`
}

// TimetableSlot is one populated period of a timetable day.
type TimetableSlot struct {
	SessionID string       `json:"session_id"`
	Subject   SubjectBrief `json:"subject"`
}

// TimetableDay groups a day's populated slots by period label.
type TimetableDay struct {
	Date    string                   `json:"date"`
	DayName string                   `json:"day_name"`
	Periods map[string]TimetableSlot `json:"periods"`
}

// DateRange is an inclusive date interval.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TimetableResponse is the staff timetable.
type TimetableResponse struct {
	Staff       UserBrief      `json:"staff"`
	PeriodOrder []string       `json:"period_order"`
	Days        []TimetableDay `json:"days"`
	Range       DateRange      `json:"range"`
}

// EntryResponse is one attendance entry enriched with its session's subject.
type EntryResponse struct {
	EntryID   string        `json:"entry_id"`
	SessionID string        `json:"session_id"`
	StudentID string        `json:"student_id"`
	Present   bool          `json:"present"`
	Date      string        `json:"date"`
	Period    string        `json:"period"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
}

// SummaryResponse is a student's present/absent tally.
type SummaryResponse struct {
	StudentID string `json:"student_id"`
	Present   int    `json:"present"`
	Absent    int    `json:"absent"`
	Total     int    `json:"total"`
}

// SessionSearchRequest filters the session listing.
type SessionSearchRequest struct {
	SubjectRef
	Date string `form:"date" binding:"omitempty"`
}

// SessionResponse is one session with its completion state.
type SessionResponse struct {
	SessionID   string        `json:"session_id"`
	SubjectID   string        `json:"subject_id"`
	Date        string        `json:"date"`
	Period      string        `json:"period"`
	Completed   bool          `json:"completed"` // at least one entry recorded
	EntryCount  int           `json:"entry_count"`
	DisplayDate string        `json:"display_date"`
	DayName     string        `json:"day_name"`
	Subject     *SubjectBrief `json:"subject,omitempty"`
}

// OverviewRequest filters the admin-wide entry feed.
type OverviewRequest struct {
	RollNo string `form:"roll_no" binding:"omitempty,max=20"`
	Limit  int    `form:"limit"   binding:"omitempty,min=1,max=500"`
}

// OverviewEntry is one row of the admin overview feed.
type OverviewEntry struct {
	EntryID   string        `json:"entry_id"`
	SessionID string        `json:"session_id"`
	Present   bool          `json:"present"`
	Date      string        `json:"date"`
	Period    string        `json:"period"`
	Student   UserBrief     `json:"student"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
}

// StudentWithEntries pairs a student with their attendance history.
type StudentWithEntries struct {
	Student UserBrief       `json:"student"`
	Entries []EntryResponse `json:"entries"`
}
