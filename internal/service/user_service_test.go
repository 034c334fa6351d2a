package service

import (
	"testing"
	"time"

	"tms_backend/internal/repository"
)

func TestStudentCoursesDerivesProgressAndStatus(t *testing.T) {
	svc, db := newUserService(t)
	progressRepo := repository.NewProgressRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	started, startedSections := seedCourse(t, db, 4)
	untouched, _ := seedCourse(t, db, 2)
	finished, finishedSections := seedCourse(t, db, 1)

	due := time.Now().Add(7 * 24 * time.Hour)
	for _, courseID := range []string{started.ID, untouched.ID, finished.ID} {
		if err := assignmentRepo.AssignToStudent(courseID, "student-1", &due); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}

	if _, err := progressRepo.CompleteSection("student-1", started.ID, startedSections[0].ID, 120); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := progressRepo.CompleteSection("student-1", finished.ID, finishedSections[0].ID, 60); err != nil {
		t.Fatalf("complete: %v", err)
	}

	views, err := svc.StudentCourses("student-1")
	if err != nil {
		t.Fatalf("student courses: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("courses = %d, want 3", len(views))
	}

	byID := make(map[string]StudentCourseView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	if v := byID[started.ID]; v.Status != CourseInProgress || v.Progress != 25 || v.SectionsCompleted != 1 {
		t.Errorf("started course = %s %d%% (%d done), want in-progress 25%% (1 done)",
			v.Status, v.Progress, v.SectionsCompleted)
	}
	if v := byID[untouched.ID]; v.Status != CourseNotStarted || v.Progress != 0 {
		t.Errorf("untouched course = %s %d%%, want not-started 0%%", v.Status, v.Progress)
	}
	if v := byID[finished.ID]; v.Status != CourseCompleted || v.Progress != 100 {
		t.Errorf("finished course = %s %d%%, want completed 100%%", v.Status, v.Progress)
	}

	if v := byID[finished.ID]; v.LastAccessed == nil {
		t.Error("finished course should carry a last accessed timestamp")
	}
	if v := byID[started.ID]; v.DueDate == nil {
		t.Error("due date lost on the way through")
	}
	if v := byID[started.ID]; v.AssignedAt.IsZero() {
		t.Error("assigned at lost on the way through")
	}
}

func TestStudentCoursesEmptyAssignments(t *testing.T) {
	svc, _ := newUserService(t)

	views, err := svc.StudentCourses("nobody")
	if err != nil {
		t.Fatalf("student courses: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("views = %#v, want empty non-nil slice", views)
	}
}

func TestDuplicateAssignmentKeepsOneCourseRow(t *testing.T) {
	svc, db := newUserService(t)
	assignmentRepo := repository.NewAssignmentRepository(db)

	course, _ := seedCourse(t, db, 1)
	if err := assignmentRepo.AssignToStudent(course.ID, "student-1", nil); err != nil {
		t.Fatalf("assign: %v", err)
	}
	// Re-assigning is a no-op, not a duplicate listing.
	if err := assignmentRepo.AssignToStudent(course.ID, "student-1", nil); err != nil {
		t.Fatalf("re-assign: %v", err)
	}

	views, err := svc.StudentCourses("student-1")
	if err != nil {
		t.Fatalf("student courses: %v", err)
	}
	if len(views) != 1 {
		t.Errorf("courses = %d, want 1", len(views))
	}
}

func TestGetDashboardStats(t *testing.T) {
	svc, db := newUserService(t)
	progressRepo := repository.NewProgressRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	half, halfSections := seedCourse(t, db, 2)
	done, doneSections := seedCourse(t, db, 1)

	for _, courseID := range []string{half.ID, done.ID} {
		if err := assignmentRepo.AssignToStudent(courseID, "student-1", nil); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}
	if _, err := progressRepo.CompleteSection("student-1", half.ID, halfSections[0].ID, 60); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := progressRepo.CompleteSection("student-1", done.ID, doneSections[0].ID, 60); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stats, err := svc.GetDashboardStats("student-1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.EnrolledCourses != 2 {
		t.Errorf("enrolled = %d, want 2", stats.EnrolledCourses)
	}
	if stats.CompletedCourses != 1 {
		t.Errorf("completed = %d, want 1", stats.CompletedCourses)
	}
	// (50 + 100) / 2
	if stats.AverageProgress != 75 {
		t.Errorf("average progress = %d, want 75", stats.AverageProgress)
	}
}

func TestGetDashboardStatsNoCourses(t *testing.T) {
	svc, _ := newUserService(t)

	stats, err := svc.GetDashboardStats("nobody")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.EnrolledCourses != 0 || stats.CompletedCourses != 0 || stats.AverageProgress != 0 {
		t.Errorf("stats = %+v, want all zero", stats)
	}
}
