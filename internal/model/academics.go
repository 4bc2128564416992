package model

// InternalMark — internal_marks table.
// One assessment result per (subject, student, exam); re-posting the
// same exam overwrites the marks (upsert by the unique triple).
type InternalMark struct {
	MarkID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"mark_id"`
	SubjectID string `gorm:"type:uuid;not null;uniqueIndex:uq_mark"         json:"subject_id"`
	StudentID string `gorm:"type:uuid;not null;uniqueIndex:uq_mark;index"   json:"student_id"`
	Exam      string `gorm:"type:varchar(20);not null;uniqueIndex:uq_mark"  json:"exam"`
	Marks     int    `gorm:"not null;default:0"                             json:"marks"`
	MaxMarks  int    `gorm:"not null;default:100"                           json:"max_marks"`
	BaseModel

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Student *User    `gorm:"foreignKey:StudentID;references:UserID"    json:"student,omitempty"`
}

func (InternalMark) TableName() string { return "internal_marks" }

// Assignment — assignments table.
type Assignment struct {
	AssignmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	SubjectID    string `gorm:"type:uuid;not null;index"                       json:"subject_id"`
	Title        string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description  string `gorm:"type:varchar(2000);not null;default:''"         json:"description"`
	DueDate      string `gorm:"type:date;not null"                             json:"due_date"`
	BaseModel

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

func (Assignment) TableName() string { return "assignments" }
