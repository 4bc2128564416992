package model

// PeriodOrder is the fixed set of teaching slots per day.
// I..V are regular teaching periods; VI/VII/VIII are the
// Free/Library/Online slots filled by the sentinel subjects.
var PeriodOrder = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}

// RegularPeriodCount is how many of the leading periods carry regular subjects.
const RegularPeriodCount = 5

// IsValidPeriod reports whether p is one of the eight known periods.
func IsValidPeriod(p string) bool {
	for _, v := range PeriodOrder {
		if v == p {
			return true
		}
	}
	return false
}

// AttendanceSession — attendance_sessions table.
// One teaching slot of one subject on one date. Uniqueness over
// (subject_id, date, period) is a database constraint.
type AttendanceSession struct {
	SessionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"session_id"`
	SubjectID string `gorm:"type:uuid;not null;uniqueIndex:uq_session_slot"       json:"subject_id"`
	Date      string `gorm:"type:date;not null;uniqueIndex:uq_session_slot;index" json:"date"`
	Period    string `gorm:"type:varchar(4);not null;uniqueIndex:uq_session_slot" json:"period"`
	BaseModel

	Subject *Subject          `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Entries []AttendanceEntry `gorm:"foreignKey:SessionID"                      json:"entries,omitempty"`
}

func (AttendanceSession) TableName() string { return "attendance_sessions" }

// AttendanceEntry — attendance_entries table.
// One student's presence record within a session; at most one per
// (session_id, student_id), enforced by a database constraint.
type AttendanceEntry struct {
	EntryID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	SessionID string `gorm:"type:uuid;not null;uniqueIndex:uq_entry"        json:"session_id"`
	StudentID string `gorm:"type:uuid;not null;uniqueIndex:uq_entry;index"  json:"student_id"`
	Present   bool   `gorm:"not null;default:false"                         json:"present"`
	BaseModel

	Session *AttendanceSession `gorm:"foreignKey:SessionID;references:SessionID" json:"session,omitempty"`
	Student *User              `gorm:"foreignKey:StudentID;references:UserID"    json:"student,omitempty"`
}

func (AttendanceEntry) TableName() string { return "attendance_entries" }
