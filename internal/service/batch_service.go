package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"tms_backend/internal/model"
	"tms_backend/internal/repository"
	"tms_backend/internal/util"

	"gorm.io/gorm"
)

type BatchService struct {
	BatchRepo *repository.BatchRepository
	UserSvc   *UserService
}

func NewBatchService(batchRepo *repository.BatchRepository, userSvc *UserService) *BatchService {
	return &BatchService{BatchRepo: batchRepo, UserSvc: userSvc}
}

type CreateBatchReq struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate" binding:"required"`
	EndDate     *time.Time `json:"endDate"`
}

func (s *BatchService) CreateBatch(req CreateBatchReq) (*model.Batch, error) {
	batch := &model.Batch{
		BatchCode:   "BAT-" + strings.ToUpper(model.GenerateUUID()[:8]),
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      "active",
	}
	if err := s.BatchRepo.Create(batch); err != nil {
		return nil, util.StoreErr("batch", err)
	}
	return batch, nil
}

// BatchListItem is one batch of a list view with its enrollment aggregates.
type BatchListItem struct {
	repository.BatchListRow
	AverageProgress int `json:"averageProgress"`
}

func (s *BatchService) ListBatches(status string, page, limit int) ([]BatchListItem, int64, error) {
	rows, total, err := s.BatchRepo.List(status, page, limit)
	if err != nil {
		return nil, 0, util.StoreErr("batch", err)
	}

	items := make([]BatchListItem, 0, len(rows))
	for _, row := range rows {
		studentIDs, err := s.BatchRepo.ListStudentIDs(row.ID)
		if err != nil {
			return nil, 0, util.StoreErr("student_batch", err)
		}
		avg, _, err := s.memberProgress(studentIDs)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, BatchListItem{BatchListRow: row, AverageProgress: avg})
	}
	return items, total, nil
}

type AssignStudentsResult struct {
	BatchID       string   `json:"batchId"`
	AssignedCount int      `json:"assignedCount"`
	StudentIDs    []string `json:"studentIds"`
}

func (s *BatchService) AssignStudents(batchID string, studentIDs []string) (*AssignStudentsResult, error) {
	if _, err := s.findBatch(batchID); err != nil {
		return nil, err
	}

	for _, studentID := range studentIDs {
		if err := s.BatchRepo.AssignStudent(studentID, batchID); err != nil {
			return nil, util.StoreErr("student_batch", err)
		}
	}
	return &AssignStudentsResult{
		BatchID:       batchID,
		AssignedCount: len(studentIDs),
		StudentIDs:    studentIDs,
	}, nil
}

type StudentBatchProgress struct {
	StudentID        string `json:"studentId"`
	AverageProgress  int    `json:"averageProgress"`
	CompletedCourses int    `json:"completedCourses"`
}

type BatchProgressReport struct {
	BatchID         string                 `json:"batchId"`
	StudentCount    int                    `json:"studentCount"`
	AverageProgress int                    `json:"averageProgress"`
	Students        []StudentBatchProgress `json:"students"`
}

// BatchProgress aggregates every member's course progress into one report.
// Like all progress reads it is recomputed from completion records, never
// cached.
func (s *BatchService) BatchProgress(batchID string) (*BatchProgressReport, error) {
	if _, err := s.findBatch(batchID); err != nil {
		return nil, err
	}

	studentIDs, err := s.BatchRepo.ListStudentIDs(batchID)
	if err != nil {
		return nil, util.StoreErr("student_batch", err)
	}

	avg, students, err := s.memberProgress(studentIDs)
	if err != nil {
		return nil, err
	}

	return &BatchProgressReport{
		BatchID:         batchID,
		StudentCount:    len(studentIDs),
		AverageProgress: avg,
		Students:        students,
	}, nil
}

// memberProgress resolves per-student dashboard stats and the batch average,
// recomputed from completion records on every call.
func (s *BatchService) memberProgress(studentIDs []string) (int, []StudentBatchProgress, error) {
	students := make([]StudentBatchProgress, 0, len(studentIDs))
	totalAvg := 0
	for _, studentID := range studentIDs {
		stats, err := s.UserSvc.GetDashboardStats(studentID)
		if err != nil {
			return 0, nil, err
		}
		students = append(students, StudentBatchProgress{
			StudentID:        studentID,
			AverageProgress:  stats.AverageProgress,
			CompletedCourses: stats.CompletedCourses,
		})
		totalAvg += stats.AverageProgress
	}
	avg := 0
	if len(studentIDs) > 0 {
		avg = int(math.Round(float64(totalAvg) / float64(len(studentIDs))))
	}
	return avg, students, nil
}

func (s *BatchService) findBatch(batchID string) (*model.Batch, error) {
	batch, err := s.BatchRepo.FindByID(batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundErr("batch", batchID)
		}
		return nil, util.StoreErr("batch", err)
	}
	return batch, nil
}
