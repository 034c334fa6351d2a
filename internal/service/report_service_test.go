package service

import (
	"testing"
	"time"

	"tms_backend/internal/model"
	"tms_backend/internal/repository"

	"gorm.io/gorm"
)

func newReportService(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewReportService(
		repository.NewUserRepository(db),
		repository.NewCourseRepository(db),
		repository.NewBatchRepository(db),
	)
	return svc, db
}

func seedReportData(t *testing.T, db *gorm.DB) {
	t.Helper()

	users := []model.User{
		{Email: "s1@test.local", PasswordHash: "x", FirstName: "S", LastName: "One", Role: model.Student},
		{Email: "s2@test.local", PasswordHash: "x", FirstName: "S", LastName: "Two", Role: model.Student},
		{Email: "s3@test.local", PasswordHash: "x", FirstName: "S", LastName: "Three", Role: model.Student},
		{Email: "t1@test.local", PasswordHash: "x", FirstName: "T", LastName: "One", Role: model.Teacher},
		{Email: "a1@test.local", PasswordHash: "x", FirstName: "A", LastName: "One", Role: model.Admin},
	}
	for i := range users {
		mustCreate(t, db, &users[i])
	}

	for _, name := range []string{"Cohort A", "Cohort B"} {
		mustCreate(t, db, &model.Batch{
			BatchCode: "BAT-" + name,
			Name:      name,
			StartDate: time.Now(),
			Status:    "active",
		})
	}

	seedCourse(t, db, 0) // published
	mustCreate(t, db, &model.Course{
		CourseCode: "CRS-DRAFT1",
		Title:      "Unpublished",
		Status:     model.CourseDraft,
	})
}

func TestTeacherDashboardCounts(t *testing.T) {
	svc, db := newReportService(t)
	seedReportData(t, db)

	overview, err := svc.TeacherDashboard()
	if err != nil {
		t.Fatalf("teacher dashboard: %v", err)
	}
	if overview.TotalBatches != 2 {
		t.Errorf("total batches = %d, want 2", overview.TotalBatches)
	}
	if overview.TotalStudents != 3 {
		t.Errorf("total students = %d, want 3", overview.TotalStudents)
	}
	if overview.TotalCourses != 2 {
		t.Errorf("total courses = %d, want 2", overview.TotalCourses)
	}
	if overview.ActiveCourses != 1 {
		t.Errorf("active courses = %d, want 1", overview.ActiveCourses)
	}
}

func TestAdminDashboardStats(t *testing.T) {
	svc, db := newReportService(t)
	seedReportData(t, db)

	stats, err := svc.AdminDashboardStats()
	if err != nil {
		t.Fatalf("admin dashboard: %v", err)
	}
	if stats.TotalStudents != 3 || stats.TotalTeachers != 1 {
		t.Errorf("students/teachers = %d/%d, want 3/1", stats.TotalStudents, stats.TotalTeachers)
	}
	if stats.TotalBatches != 2 {
		t.Errorf("total batches = %d, want 2", stats.TotalBatches)
	}
	if stats.TotalCourses != 2 || stats.PublishedCourses != 1 {
		t.Errorf("courses = %d/%d published, want 2/1", stats.TotalCourses, stats.PublishedCourses)
	}
	if len(stats.RecentStudents) != 3 {
		t.Fatalf("recent students len = %d, want 3", len(stats.RecentStudents))
	}
	for _, u := range stats.RecentStudents {
		if u.Role != model.Student {
			t.Errorf("recent list leaked role %q", u.Role)
		}
	}
}

func TestDashboardsOnEmptyStore(t *testing.T) {
	svc, _ := newReportService(t)

	overview, err := svc.TeacherDashboard()
	if err != nil {
		t.Fatalf("teacher dashboard: %v", err)
	}
	if overview.TotalBatches != 0 || overview.TotalStudents != 0 || overview.TotalCourses != 0 {
		t.Errorf("empty overview = %+v, want zeroes", overview)
	}

	stats, err := svc.AdminDashboardStats()
	if err != nil {
		t.Fatalf("admin dashboard: %v", err)
	}
	if len(stats.RecentStudents) != 0 {
		t.Errorf("recent students len = %d, want 0", len(stats.RecentStudents))
	}
}
