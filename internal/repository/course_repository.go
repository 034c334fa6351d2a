package repository

import (
	"time"

	"tms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) List(status model.CourseStatus) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Model(&model.Course{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at desc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByIDs(ids []string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("id IN ?", ids).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Publish(id string) (*model.Course, error) {
	now := time.Now()
	res := r.DB.Model(&model.Course{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       model.CoursePublished,
			"published_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

// Count tallies courses, optionally restricted to one status.
func (r *CourseRepository) Count(status model.CourseStatus) (int64, error) {
	var count int64
	query := r.DB.Model(&model.Course{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *CourseRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Section methods

func (r *CourseRepository) CreateSection(section *model.CourseSection) error {
	return r.DB.Create(section).Error
}

func (r *CourseRepository) FindSectionByID(id string) (*model.CourseSection, error) {
	var section model.CourseSection
	err := r.DB.Where("id = ?", id).First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *CourseRepository) UpdateSection(section *model.CourseSection) error {
	return r.DB.Save(section).Error
}

func (r *CourseRepository) ListSections(courseID string) ([]model.CourseSection, error) {
	var sections []model.CourseSection
	err := r.DB.Where("course_id = ?", courseID).Order("order_index asc").Find(&sections).Error
	return sections, err
}

func (r *CourseRepository) ListSectionsByCourses(courseIDs []string) ([]model.CourseSection, error) {
	var sections []model.CourseSection
	err := r.DB.Where("course_id IN ?", courseIDs).Find(&sections).Error
	return sections, err
}

func (r *CourseRepository) CountSections(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseSection{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
