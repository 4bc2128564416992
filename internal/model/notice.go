package model

import "time"

// Circular audiences.
const (
	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceStaff    = "staff"
)

// Circular — circulars table.
type Circular struct {
	CircularID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"circular_id"`
	Title      string `gorm:"type:varchar(200);not null"                     json:"title"`
	Body       string `gorm:"type:varchar(5000);not null"                    json:"body"`
	Audience   string `gorm:"type:varchar(20);not null;default:'all'"        json:"audience"`
	BaseModel
}

func (Circular) TableName() string { return "circulars" }

// Event — events table.
type Event struct {
	EventID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:varchar(2000);not null;default:''"         json:"description"`
	Venue       string    `gorm:"type:varchar(200);not null;default:''"          json:"venue"`
	StartsAt    time.Time `gorm:"not null"                                       json:"starts_at"`
	EndsAt      time.Time `gorm:"not null"                                       json:"ends_at"`
	BaseModel
}

func (Event) TableName() string { return "events" }
