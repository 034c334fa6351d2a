package model

import "time"

// swagger:model Batch
type Batch struct {
	UUIDBase
	BatchCode   string     `gorm:"size:20;uniqueIndex" json:"batchCode"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      string     `gorm:"size:20;default:'active'" json:"status"`
}

func (Batch) TableName() string {
	return "batches"
}

// StudentBatch links a student to a batch; (student, batch) is unique so
// re-assigning is a no-op.
type StudentBatch struct {
	UUIDBase
	StudentID string `gorm:"index:idx_student_batch,unique;type:varchar(36);not null" json:"studentId"`
	BatchID   string `gorm:"index:idx_student_batch,unique;type:varchar(36);not null" json:"batchId"`
}

func (StudentBatch) TableName() string {
	return "student_batches"
}
