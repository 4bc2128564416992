package model

// Codes of the three sentinel non-academic subjects that fill the
// fixed VI/VII/VIII slots of every generated day.
const (
	SpecialCodeFree    = "FREE001"
	SpecialCodeLibrary = "LIB001"
	SpecialCodeOnline  = "ONL001"

	SpecialSection = "ALL"
)

// SpecialSubjectCodes lists the sentinel codes in slot order (VI, VII, VIII).
var SpecialSubjectCodes = []string{SpecialCodeFree, SpecialCodeLibrary, SpecialCodeOnline}

// Subject — subjects table.
type Subject struct {
	SubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Code      string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Section   string `gorm:"type:varchar(20);not null;default:''"           json:"section"`
	BaseModel
}

func (Subject) TableName() string { return "subjects" }

// IsSpecial reports whether the subject is one of the sentinel rows.
func (s *Subject) IsSpecial() bool {
	for _, code := range SpecialSubjectCodes {
		if s.Code == code {
			return true
		}
	}
	return false
}

// StaffSubject — staff_subjects join table. A staff member's timetable is
// the set of subjects reachable through this join.
type StaffSubject struct {
	StaffSubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_subject_id"`
	StaffID        string `gorm:"type:uuid;not null;uniqueIndex:uq_staff_subject" json:"staff_id"`
	SubjectID      string `gorm:"type:uuid;not null;uniqueIndex:uq_staff_subject" json:"subject_id"`

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Staff   *User    `gorm:"foreignKey:StaffID;references:UserID"      json:"staff,omitempty"`
}

func (StaffSubject) TableName() string { return "staff_subjects" }

// Enrollment — enrollments join table, the attendance roster of a subject.
type Enrollment struct {
	EnrollmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"enrollment_id"`
	SubjectID    string `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment"    json:"subject_id"`
	StudentID    string `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment"    json:"student_id"`

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Student *User    `gorm:"foreignKey:StudentID;references:UserID"    json:"student,omitempty"`
}

func (Enrollment) TableName() string { return "enrollments" }
