package repository

import (
	"tms_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.Where("id = ?", id).First(&test).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) ListByCourse(courseID string) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Where("course_id = ?", courseID).Order("created_at asc").Find(&tests).Error
	return tests, err
}

func (r *TestRepository) CreateQuestion(q *model.TestQuestion) error {
	return r.DB.Create(q).Error
}

func (r *TestRepository) ListQuestions(testID string) ([]model.TestQuestion, error) {
	var qs []model.TestQuestion
	err := r.DB.Where("test_id = ?", testID).Order("order_index asc").Find(&qs).Error
	return qs, err
}

func (r *TestRepository) DeleteQuestion(id string) error {
	return r.DB.Delete(&model.TestQuestion{}, "id = ?", id).Error
}
