package model

import "time"

const (
	QuestionTypeMCQ  = "mcq"
	QuestionTypeText = "text"
)

const (
	SubmissionSubmitted = "submitted"
	SubmissionGraded    = "graded"
)

// swagger:model Test
type Test struct {
	UUIDBase
	CourseID     string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Duration     int    `gorm:"default:0" json:"duration"` // Minutes
	PassingScore int    `gorm:"default:70" json:"passingScore"`
}

func (Test) TableName() string {
	return "tests"
}

// TestQuestion holds one question of a test. MCQ questions carry up to four
// labeled options and the correct label; text questions have no answer key
// and are graded manually.
type TestQuestion struct {
	UUIDBase
	TestID        string `gorm:"index;type:varchar(36);not null" json:"testId"`
	QuestionType  string `gorm:"size:20;not null" json:"questionType"` // mcq, text
	QuestionText  string `gorm:"type:text;not null" json:"questionText"`
	OptionA       string `gorm:"type:text" json:"optionA,omitempty"`
	OptionB       string `gorm:"type:text" json:"optionB,omitempty"`
	OptionC       string `gorm:"type:text" json:"optionC,omitempty"`
	OptionD       string `gorm:"type:text" json:"optionD,omitempty"`
	CorrectAnswer string `gorm:"size:10" json:"-"` // A/B/C/D, empty for text
	Points        int    `gorm:"default:0" json:"points"`
	OrderIndex    int    `gorm:"default:0" json:"orderIndex"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}

// TestSubmission is one student's one attempt at a test. MaxScore always sums
// the points of every question in the test; Score holds only auto-graded
// points until manual grading adds the rest.
type TestSubmission struct {
	UUIDBase
	TestID      string    `gorm:"index;type:varchar(36);not null" json:"testId"`
	StudentID   string    `gorm:"index;type:varchar(36);not null" json:"studentId"`
	Status      string    `gorm:"size:20;default:'submitted'" json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
	Score       int       `gorm:"default:0" json:"score"`
	MaxScore    int       `gorm:"default:0" json:"maxScore"`
}

func (TestSubmission) TableName() string {
	return "test_submissions"
}

// TestAnswer records one graded answer. IsCorrect stays nil for text
// questions until a manual grading pass fills it in.
type TestAnswer struct {
	UUIDBase
	SubmissionID string `gorm:"index;type:varchar(36);not null" json:"submissionId"`
	QuestionID   string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	AnswerText   string `gorm:"type:text" json:"answerText"`
	IsCorrect    *bool  `json:"isCorrect"`
	PointsEarned int    `gorm:"default:0" json:"pointsEarned"`
}

func (TestAnswer) TableName() string {
	return "test_answers"
}
