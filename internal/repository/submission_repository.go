package repository

import (
	"tms_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// CreateGraded persists a submission together with its answer rows in one
// transaction, so a failed answer write rolls the submission back too.
func (r *SubmissionRepository) CreateGraded(s *model.TestSubmission, answers []model.TestAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].SubmissionID = s.ID
			if err := tx.Create(&answers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SubmissionRepository) UpdateScores(submissionID string, score, maxScore int) error {
	return r.DB.Model(&model.TestSubmission{}).Where("id = ?", submissionID).
		Updates(map[string]interface{}{"score": score, "max_score": maxScore}).Error
}

func (r *SubmissionRepository) Find(testID, submissionID string) (*model.TestSubmission, error) {
	var sub model.TestSubmission
	err := r.DB.Where("id = ? AND test_id = ?", submissionID, testID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) FindByID(submissionID string) (*model.TestSubmission, error) {
	var sub model.TestSubmission
	err := r.DB.Where("id = ?", submissionID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) ListAnswers(submissionID string) ([]model.TestAnswer, error) {
	var answers []model.TestAnswer
	err := r.DB.Where("submission_id = ?", submissionID).Find(&answers).Error
	return answers, err
}

func (r *SubmissionRepository) FindAnswer(submissionID, questionID string) (*model.TestAnswer, error) {
	var answer model.TestAnswer
	err := r.DB.Where("submission_id = ? AND question_id = ?", submissionID, questionID).First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *SubmissionRepository) UpdateAnswer(a *model.TestAnswer) error {
	return r.DB.Save(a).Error
}

func (r *SubmissionRepository) UpdateStatus(submissionID, status string) error {
	return r.DB.Model(&model.TestSubmission{}).Where("id = ?", submissionID).
		Update("status", status).Error
}

func (r *SubmissionRepository) CountPendingAnswers(submissionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TestAnswer{}).
		Where("submission_id = ? AND is_correct IS NULL", submissionID).
		Count(&count).Error
	return count, err
}

// SumEarnedPoints totals the points earned across all answers of one
// submission, used after a manual grading pass.
func (r *SubmissionRepository) SumEarnedPoints(submissionID string) (int, error) {
	var total int64
	err := r.DB.Model(&model.TestAnswer{}).Where("submission_id = ?", submissionID).
		Select("COALESCE(SUM(points_earned), 0)").Scan(&total).Error
	return int(total), err
}
