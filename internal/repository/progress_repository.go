package repository

import (
	"time"

	"tms_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// CompleteSection upserts the one progress row for the (student, course,
// section) triple. The time_spent increment runs inside the UPDATE so
// concurrent completions both land; the unique index guards the insert race,
// with a duplicate-key fallback onto the UPDATE path.
func (r *ProgressRepository) CompleteSection(studentID, courseID, sectionID string, elapsed int) (*model.StudentProgress, error) {
	now := time.Now()

	update := func() (bool, error) {
		res := r.DB.Model(&model.StudentProgress{}).
			Where("student_id = ? AND course_id = ? AND section_id = ?", studentID, courseID, sectionID).
			Updates(map[string]interface{}{
				"completed":    true,
				"completed_at": now,
				"time_spent":   gorm.Expr("time_spent + ?", elapsed),
			})
		if res.Error != nil {
			return false, res.Error
		}
		return res.RowsAffected > 0, nil
	}

	updated, err := update()
	if err != nil {
		return nil, err
	}
	if !updated {
		record := &model.StudentProgress{
			StudentID:   studentID,
			CourseID:    courseID,
			SectionID:   sectionID,
			Completed:   true,
			CompletedAt: &now,
			TimeSpent:   elapsed,
		}
		if err := r.DB.Create(record).Error; err != nil {
			// Lost the insert race; the row exists now, so increment it.
			if _, uerr := update(); uerr != nil {
				return nil, uerr
			}
		}
	}

	return r.Find(studentID, courseID, sectionID)
}

func (r *ProgressRepository) Find(studentID, courseID, sectionID string) (*model.StudentProgress, error) {
	var record model.StudentProgress
	err := r.DB.Where("student_id = ? AND course_id = ? AND section_id = ?", studentID, courseID, sectionID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ProgressRepository) ListByStudentCourse(studentID, courseID string) ([]model.StudentProgress, error) {
	var records []model.StudentProgress
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) ListByStudentCourses(studentID string, courseIDs []string) ([]model.StudentProgress, error) {
	var records []model.StudentProgress
	err := r.DB.Where("student_id = ? AND course_id IN ?", studentID, courseIDs).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) CountCompleted(studentID, courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudentProgress{}).
		Where("student_id = ? AND course_id = ? AND completed = ?", studentID, courseID, true).
		Count(&count).Error
	return count, err
}
