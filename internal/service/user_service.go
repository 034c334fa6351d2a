package service

import (
	"math"
	"time"

	"tms_backend/internal/repository"
	"tms_backend/internal/util"
)

type UserService struct {
	UserRepo       *repository.UserRepository
	AssignmentRepo *repository.AssignmentRepository
	CourseRepo     *repository.CourseRepository
	ProgressRepo   *repository.ProgressRepository
}

func NewUserService(userRepo *repository.UserRepository, assignmentRepo *repository.AssignmentRepository,
	courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository) *UserService {
	return &UserService{
		UserRepo:       userRepo,
		AssignmentRepo: assignmentRepo,
		CourseRepo:     courseRepo,
		ProgressRepo:   progressRepo,
	}
}

const (
	CourseNotStarted = "not-started"
	CourseInProgress = "in-progress"
	CourseCompleted  = "completed"
)

// StudentCourseView is one row of a student's course listing, with progress
// recomputed from completion records at call time.
type StudentCourseView struct {
	ID                string     `json:"id"`
	CourseCode        string     `json:"courseCode"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	TemplateType      string     `json:"templateType"`
	EstimatedDuration int        `json:"estimatedDuration"`
	Progress          int        `json:"progress"`
	SectionsCompleted int        `json:"sectionsCompleted"`
	TotalSections     int        `json:"totalSections"`
	Status            string     `json:"status"`
	AssignedAt        time.Time  `json:"assignedAt"`
	LastAccessed      *time.Time `json:"lastAccessed,omitempty"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
}

// StudentCourses resolves every course assigned to the student (directly or
// fanned out from a batch upstream) and derives per-course progress and
// status.
func (s *UserService) StudentCourses(studentID string) ([]StudentCourseView, error) {
	assignments, err := s.AssignmentRepo.ListByStudent(studentID)
	if err != nil {
		return nil, util.StoreErr("course_assignment", err)
	}
	if len(assignments) == 0 {
		return []StudentCourseView{}, nil
	}

	courseIDs := make([]string, 0, len(assignments))
	seen := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if !seen[a.CourseID] {
			seen[a.CourseID] = true
			courseIDs = append(courseIDs, a.CourseID)
		}
	}

	courses, err := s.CourseRepo.FindByIDs(courseIDs)
	if err != nil {
		return nil, util.StoreErr("course", err)
	}
	sections, err := s.CourseRepo.ListSectionsByCourses(courseIDs)
	if err != nil {
		return nil, util.StoreErr("course_section", err)
	}
	progress, err := s.ProgressRepo.ListByStudentCourses(studentID, courseIDs)
	if err != nil {
		return nil, util.StoreErr("student_progress", err)
	}

	sectionCount := make(map[string]int)
	for _, sec := range sections {
		sectionCount[sec.CourseID]++
	}

	completedCount := make(map[string]int)
	lastAccessed := make(map[string]*time.Time)
	for i := range progress {
		p := &progress[i]
		if p.Completed {
			completedCount[p.CourseID]++
		}
		if p.CompletedAt != nil {
			if cur := lastAccessed[p.CourseID]; cur == nil || p.CompletedAt.After(*cur) {
				lastAccessed[p.CourseID] = p.CompletedAt
			}
		}
	}

	views := make([]StudentCourseView, 0, len(courses))
	for _, course := range courses {
		total := sectionCount[course.ID]
		completed := completedCount[course.ID]
		pct := progressPercent(completed, total)

		var assignedAt time.Time
		var dueDate *time.Time
		for _, a := range assignments {
			if a.CourseID != course.ID {
				continue
			}
			if assignedAt.IsZero() || a.AssignedAt.Before(assignedAt) {
				assignedAt = a.AssignedAt
			}
			if dueDate == nil {
				dueDate = a.DueDate
			}
		}

		views = append(views, StudentCourseView{
			ID:                course.ID,
			CourseCode:        course.CourseCode,
			Title:             course.Title,
			Description:       course.Description,
			Category:          course.Category,
			TemplateType:      course.TemplateType,
			EstimatedDuration: course.EstimatedDuration,
			Progress:          pct,
			SectionsCompleted: completed,
			TotalSections:     total,
			Status:            courseStatus(pct),
			AssignedAt:        assignedAt,
			LastAccessed:      lastAccessed[course.ID],
			DueDate:           dueDate,
		})
	}

	return views, nil
}

type DashboardStats struct {
	EnrolledCourses  int `json:"enrolledCourses"`
	CompletedCourses int `json:"completedCourses"`
	AverageProgress  int `json:"averageProgress"`
}

func (s *UserService) GetDashboardStats(studentID string) (*DashboardStats, error) {
	courses, err := s.StudentCourses(studentID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{EnrolledCourses: len(courses)}
	totalProgress := 0
	for _, c := range courses {
		totalProgress += c.Progress
		if c.Progress == 100 {
			stats.CompletedCourses++
		}
	}
	if len(courses) > 0 {
		stats.AverageProgress = int(math.Round(float64(totalProgress) / float64(len(courses))))
	}
	return stats, nil
}

func courseStatus(pct int) string {
	switch {
	case pct >= 100:
		return CourseCompleted
	case pct > 0:
		return CourseInProgress
	default:
		return CourseNotStarted
	}
}
