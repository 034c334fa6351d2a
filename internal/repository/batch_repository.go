package repository

import (
	"tms_backend/internal/model"

	"gorm.io/gorm"
)

type BatchRepository struct {
	DB *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{DB: db}
}

func (r *BatchRepository) Create(batch *model.Batch) error {
	return r.DB.Create(batch).Error
}

func (r *BatchRepository) FindByID(id string) (*model.Batch, error) {
	var batch model.Batch
	err := r.DB.Where("id = ?", id).First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *BatchRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Batch{}).Count(&count).Error
	return count, err
}

// BatchListRow pairs a batch with its membership aggregates for list views.
type BatchListRow struct {
	model.Batch
	StudentCount int64 `json:"studentCount" gorm:"-"`
	CourseCount  int64 `json:"courseCount" gorm:"-"`
}

func (r *BatchRepository) List(status string, page, limit int) ([]BatchListRow, int64, error) {
	var batches []model.Batch
	var total int64
	query := r.DB.Model(&model.Batch{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&batches).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]BatchListRow, 0, len(batches))
	for _, b := range batches {
		var studentCount int64
		if err := r.DB.Model(&model.StudentBatch{}).Where("batch_id = ?", b.ID).Count(&studentCount).Error; err != nil {
			return nil, 0, err
		}
		// Distinct courses assigned to any member of the batch.
		members := r.DB.Model(&model.StudentBatch{}).Select("student_id").Where("batch_id = ?", b.ID)
		var courseCount int64
		if err := r.DB.Model(&model.CourseAssignment{}).Where("student_id IN (?)", members).
			Distinct("course_id").Count(&courseCount).Error; err != nil {
			return nil, 0, err
		}
		rows = append(rows, BatchListRow{Batch: b, StudentCount: studentCount, CourseCount: courseCount})
	}
	return rows, total, nil
}

// AssignStudent links a student to a batch; the unique pair index makes
// repeated assignment a no-op.
func (r *BatchRepository) AssignStudent(studentID, batchID string) error {
	var existing model.StudentBatch
	err := r.DB.Where("student_id = ? AND batch_id = ?", studentID, batchID).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.DB.Create(&model.StudentBatch{StudentID: studentID, BatchID: batchID}).Error
}

func (r *BatchRepository) ListStudentIDs(batchID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.StudentBatch{}).Where("batch_id = ?", batchID).Pluck("student_id", &ids).Error
	return ids, err
}
