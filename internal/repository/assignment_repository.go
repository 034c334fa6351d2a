package repository

import (
	"time"

	"tms_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// AssignToStudent creates the (course, student) assignment if absent.
// Re-assigning keeps the original AssignedAt and due date, matching
// set-on-insert semantics.
func (r *AssignmentRepository) AssignToStudent(courseID, studentID string, dueDate *time.Time) error {
	var existing model.CourseAssignment
	err := r.DB.Where("course_id = ? AND student_id = ?", courseID, studentID).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	assignment := &model.CourseAssignment{
		CourseID:   courseID,
		StudentID:  studentID,
		AssignedAt: time.Now(),
		DueDate:    dueDate,
	}
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) ListByStudent(studentID string) ([]model.CourseAssignment, error) {
	var assignments []model.CourseAssignment
	err := r.DB.Where("student_id = ?", studentID).Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) CountByCourse(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseAssignment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *AssignmentRepository) ListStudentIDsByCourse(courseID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.CourseAssignment{}).Where("course_id = ?", courseID).Pluck("student_id", &ids).Error
	return ids, err
}
