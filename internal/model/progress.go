package model

import "time"

// StudentProgress marks one student's completion of one course section.
// (student, course, section) is unique; re-completing refreshes CompletedAt
// and adds to TimeSpent instead of creating a second row.
// swagger:model StudentProgress
type StudentProgress struct {
	UUIDBase
	StudentID   string     `gorm:"index:idx_student_course_section,unique;type:varchar(36);not null" json:"studentId"`
	CourseID    string     `gorm:"index:idx_student_course_section,unique;type:varchar(36);not null" json:"courseId"`
	SectionID   string     `gorm:"index:idx_student_course_section,unique;type:varchar(36);not null" json:"sectionId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	TimeSpent   int        `gorm:"default:0" json:"timeSpent"` // Seconds, cumulative
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

// CourseProgress is computed from StudentProgress rows on every read, never
// stored.
type CourseProgress struct {
	CompletedSections  int `json:"completedSections"`
	TotalSections      int `json:"totalSections"`
	ProgressPercentage int `json:"progressPercentage"`
}
