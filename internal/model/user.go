package model

type UserRole string

const (
	Admin   UserRole = "admin"
	Teacher UserRole = "teacher"
	Student UserRole = "student"
)

// swagger:model User
type User struct {
	UUIDBase
	Email        string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	FirstName    string   `gorm:"size:100" json:"firstName"`
	LastName     string   `gorm:"size:100" json:"lastName"`
	Role         UserRole `gorm:"size:20;default:'student'" json:"role"`
	Phone        string   `gorm:"size:30" json:"phone,omitempty"`
}

func (User) TableName() string {
	return "users"
}
