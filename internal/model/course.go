package model

import "time"

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

// swagger:model Course
type Course struct {
	UUIDBase
	CourseCode        string       `gorm:"size:20;uniqueIndex" json:"courseCode"`
	Title             string       `gorm:"size:255;not null" json:"title"`
	Description       string       `gorm:"type:text" json:"description"`
	Category          string       `gorm:"size:100" json:"category"`
	TemplateType      string       `gorm:"size:50" json:"templateType"`
	Difficulty        string       `gorm:"size:20" json:"difficulty"`
	EstimatedDuration int          `gorm:"default:0" json:"estimatedDuration"` // Minutes
	Status            CourseStatus `gorm:"size:20;default:'draft'" json:"status"`
	PublishedAt       *time.Time   `json:"publishedAt,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseSection is one ordered subunit of a course; progress is tracked
// against sections, never against the course directly.
type CourseSection struct {
	UUIDBase
	CourseID   string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title      string `gorm:"size:255;not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	VideoURL   string `gorm:"size:512" json:"videoUrl,omitempty"`
	ImageURL   string `gorm:"size:512" json:"imageUrl,omitempty"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
	Duration   int    `gorm:"default:0" json:"duration"` // Seconds
}

func (CourseSection) TableName() string {
	return "course_sections"
}
