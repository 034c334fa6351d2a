package model

import "time"

// CourseAssignment records that a course was assigned to one student, either
// directly or fanned out from a batch. (course, student) is unique; assigning
// again keeps the original AssignedAt.
// swagger:model CourseAssignment
type CourseAssignment struct {
	UUIDBase
	CourseID   string     `gorm:"index:idx_course_student,unique;type:varchar(36);not null" json:"courseId"`
	StudentID  string     `gorm:"index:idx_course_student,unique;type:varchar(36);not null" json:"studentId"`
	AssignedAt time.Time  `json:"assignedAt"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
}

func (CourseAssignment) TableName() string {
	return "course_assignments"
}
