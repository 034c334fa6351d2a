package service

import (
	"tms_backend/internal/model"
	"tms_backend/internal/repository"
	"tms_backend/internal/util"
)

const recentStudentsLimit = 5

// ReportService serves the staff dashboards: cheap count aggregates over
// batches, students and courses.
type ReportService struct {
	UserRepo   *repository.UserRepository
	CourseRepo *repository.CourseRepository
	BatchRepo  *repository.BatchRepository
}

func NewReportService(userRepo *repository.UserRepository, courseRepo *repository.CourseRepository,
	batchRepo *repository.BatchRepository) *ReportService {
	return &ReportService{UserRepo: userRepo, CourseRepo: courseRepo, BatchRepo: batchRepo}
}

type TeacherOverview struct {
	TotalBatches  int64 `json:"totalBatches"`
	TotalStudents int64 `json:"totalStudents"`
	TotalCourses  int64 `json:"totalCourses"`
	ActiveCourses int64 `json:"activeCourses"`
}

// TeacherDashboard counts the teaching surface; active courses are the
// published ones.
func (s *ReportService) TeacherDashboard() (*TeacherOverview, error) {
	batches, err := s.BatchRepo.Count()
	if err != nil {
		return nil, util.StoreErr("batch", err)
	}
	students, err := s.UserRepo.CountByRole(model.Student)
	if err != nil {
		return nil, util.StoreErr("user", err)
	}
	courses, err := s.CourseRepo.Count("")
	if err != nil {
		return nil, util.StoreErr("course", err)
	}
	active, err := s.CourseRepo.Count(model.CoursePublished)
	if err != nil {
		return nil, util.StoreErr("course", err)
	}
	return &TeacherOverview{
		TotalBatches:  batches,
		TotalStudents: students,
		TotalCourses:  courses,
		ActiveCourses: active,
	}, nil
}

type AdminDashboard struct {
	TotalStudents    int64        `json:"totalStudents"`
	TotalTeachers    int64        `json:"totalTeachers"`
	TotalBatches     int64        `json:"totalBatches"`
	TotalCourses     int64        `json:"totalCourses"`
	PublishedCourses int64        `json:"publishedCourses"`
	RecentStudents   []model.User `json:"recentStudents"`
}

func (s *ReportService) AdminDashboardStats() (*AdminDashboard, error) {
	students, err := s.UserRepo.CountByRole(model.Student)
	if err != nil {
		return nil, util.StoreErr("user", err)
	}
	teachers, err := s.UserRepo.CountByRole(model.Teacher)
	if err != nil {
		return nil, util.StoreErr("user", err)
	}
	batches, err := s.BatchRepo.Count()
	if err != nil {
		return nil, util.StoreErr("batch", err)
	}
	courses, err := s.CourseRepo.Count("")
	if err != nil {
		return nil, util.StoreErr("course", err)
	}
	published, err := s.CourseRepo.Count(model.CoursePublished)
	if err != nil {
		return nil, util.StoreErr("course", err)
	}
	recent, _, err := s.UserRepo.ListByRole(model.Student, 1, recentStudentsLimit)
	if err != nil {
		return nil, util.StoreErr("user", err)
	}

	return &AdminDashboard{
		TotalStudents:    students,
		TotalTeachers:    teachers,
		TotalBatches:     batches,
		TotalCourses:     courses,
		PublishedCourses: published,
		RecentStudents:   recent,
	}, nil
}
