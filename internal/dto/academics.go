package dto

// MarkInput is one student's score in a mark-posting request.
type MarkInput struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Marks     int    `json:"marks"      binding:"min=0"`
}

// PostMarksRequest records one exam's internal marks for a subject.
// Re-posting the same exam overwrites earlier scores.
type PostMarksRequest struct {
	SubjectRef
	Exam     string      `json:"exam"      binding:"required,max=20"`
	MaxMarks int         `json:"max_marks" binding:"omitempty,min=1"`
	Marks    []MarkInput `json:"marks"     binding:"required,min=1,dive"`
}

// MarkResponse is one internal mark enriched with its subject.
type MarkResponse struct {
	ID        string        `json:"id"`
	StudentID string        `json:"student_id"`
	Exam      string        `json:"exam"`
	Marks     int           `json:"marks"`
	MaxMarks  int           `json:"max_marks"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
}

// CreateAssignmentRequest creates an assignment for a subject.
type CreateAssignmentRequest struct {
	SubjectRef
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	DueDate     string `json:"due_date"    binding:"required"`
}

// AssignmentResponse is one assignment.
type AssignmentResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	DueDate     string        `json:"due_date"`
	Subject     *SubjectBrief `json:"subject,omitempty"`
	CreatedAt   string        `json:"created_at"`
}
