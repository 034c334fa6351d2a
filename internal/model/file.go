package model

// swagger:model FileRecord
type FileRecord struct {
	UUIDBase
	FileName   string `gorm:"size:255;not null" json:"fileName"`
	ObjectKey  string `gorm:"size:512;not null" json:"-"`
	FileType   string `gorm:"size:100" json:"fileType"`
	FileSize   int64  `gorm:"default:0" json:"fileSize"`
	UploadedBy string `gorm:"index;type:varchar(36)" json:"uploadedBy"`
	Status     string `gorm:"size:20;default:'uploaded'" json:"status"` // uploaded, processing, ready, failed
	URL        string `gorm:"size:512" json:"url,omitempty"`
}

func (FileRecord) TableName() string {
	return "files"
}
