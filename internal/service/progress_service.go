package service

import (
	"math"
	"time"

	"tms_backend/internal/model"
	"tms_backend/internal/repository"
	"tms_backend/internal/util"
	"tms_backend/pkg/logger"
	"tms_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, courseRepo *repository.CourseRepository) *ProgressService {
	return &ProgressService{ProgressRepo: progressRepo, CourseRepo: courseRepo}
}

type CompleteSectionResult struct {
	ProgressID     string                `json:"progressId"`
	SectionID      string                `json:"sectionId"`
	Completed      bool                  `json:"completed"`
	CompletedAt    *time.Time            `json:"completedAt"`
	TimeSpent      int                   `json:"timeSpent"`
	CourseProgress *model.CourseProgress `json:"courseProgress"`
}

// CompleteSection marks one section done for a student and returns the
// freshly recomputed course progress. Completing the same section again adds
// the elapsed time onto the existing record instead of duplicating it.
func (s *ProgressService) CompleteSection(studentID, courseID, sectionID string, elapsed int) (*CompleteSectionResult, error) {
	if elapsed < 0 {
		return nil, util.InvalidInputErr("elapsed time must be non-negative")
	}

	exists, err := s.CourseRepo.Exists(courseID)
	if err != nil {
		return nil, util.StoreErr("course", err)
	}
	if !exists {
		return nil, util.NotFoundErr("course", courseID)
	}

	record, err := s.ProgressRepo.CompleteSection(studentID, courseID, sectionID, elapsed)
	if err != nil {
		return nil, util.StoreErr("student_progress", err)
	}

	progress, err := s.CourseProgress(studentID, courseID)
	if err != nil {
		return nil, err
	}

	monitoring.SectionsCompleted.Inc()
	logger.Log.Info("section completed",
		zap.String("studentId", studentID),
		zap.String("courseId", courseID),
		zap.String("sectionId", sectionID),
		zap.Int("progressPercentage", progress.ProgressPercentage),
	)

	return &CompleteSectionResult{
		ProgressID:     record.ID,
		SectionID:      record.SectionID,
		Completed:      record.Completed,
		CompletedAt:    record.CompletedAt,
		TimeSpent:      record.TimeSpent,
		CourseProgress: progress,
	}, nil
}

// CourseProgress recomputes the snapshot from completion rows on every call;
// nothing is cached, so the percentage can never drift from the stored facts.
func (s *ProgressService) CourseProgress(studentID, courseID string) (*model.CourseProgress, error) {
	total, err := s.CourseRepo.CountSections(courseID)
	if err != nil {
		return nil, util.StoreErr("course_section", err)
	}
	completed, err := s.ProgressRepo.CountCompleted(studentID, courseID)
	if err != nil {
		return nil, util.StoreErr("student_progress", err)
	}

	return &model.CourseProgress{
		CompletedSections:  int(completed),
		TotalSections:      int(total),
		ProgressPercentage: progressPercent(int(completed), int(total)),
	}, nil
}

type ProgressEntry struct {
	SectionID   string     `json:"sectionId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	TimeSpent   int        `json:"timeSpent"`
}

// GetStudentProgress lists every tracked section record for the pair. No
// records is not an error, just an empty result.
func (s *ProgressService) GetStudentProgress(studentID, courseID string) ([]ProgressEntry, error) {
	records, err := s.ProgressRepo.ListByStudentCourse(studentID, courseID)
	if err != nil {
		return nil, util.StoreErr("student_progress", err)
	}

	entries := make([]ProgressEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, ProgressEntry{
			SectionID:   r.SectionID,
			Completed:   r.Completed,
			CompletedAt: r.CompletedAt,
			TimeSpent:   r.TimeSpent,
		})
	}
	return entries, nil
}

// progressPercent rounds completed/total to an integer percentage, clamped
// to [0, 100] so anomalous data can never push the value out of range.
func progressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
