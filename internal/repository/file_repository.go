package repository

import (
	"tms_backend/internal/model"

	"gorm.io/gorm"
)

type FileRepository struct {
	DB *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) Create(f *model.FileRecord) error {
	return r.DB.Create(f).Error
}

func (r *FileRepository) FindByID(id string) (*model.FileRecord, error) {
	var f model.FileRecord
	err := r.DB.Where("id = ?", id).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FileRepository) UpdateStatus(id, status string) error {
	return r.DB.Model(&model.FileRecord{}).Where("id = ?", id).Update("status", status).Error
}
