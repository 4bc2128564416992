package dto

// SubjectRef identifies a subject by opaque ID or by human code —
// explicitly, never by sniffing the string shape. A legacy "SUBJ-"
// prefix on the code is tolerated and stripped.
type SubjectRef struct {
	SubjectID   string `json:"subject_id"   form:"subject_id"   binding:"omitempty,uuid"`
	SubjectCode string `json:"subject_code" form:"subject_code" binding:"omitempty,max=30"`
}

// IsZero reports whether neither field is set.
func (r *SubjectRef) IsZero() bool {
	return r.SubjectID == "" && r.SubjectCode == ""
}

// CreateSubjectRequest creates a subject.
type CreateSubjectRequest struct {
	Code    string `json:"code"    binding:"required,max=20"`
	Name    string `json:"name"    binding:"required,max=100"`
	Section string `json:"section" binding:"omitempty,max=20"`
}

// AssignStaffRequest links a staff member to a subject.
type AssignStaffRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
}

// EnrollStudentRequest adds a student to a subject's roster.
type EnrollStudentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// SubjectResponse is the full subject shape.
type SubjectResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Section string `json:"section"`
	Special bool   `json:"special"`
}
