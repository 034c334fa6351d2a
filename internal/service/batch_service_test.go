package service

import (
	"errors"
	"testing"
	"time"

	"tms_backend/internal/model"
	"tms_backend/internal/repository"
	"tms_backend/internal/util"

	"gorm.io/gorm"
)

func newBatchService(t *testing.T) (*BatchService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	userSvc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewProgressRepository(db),
	)
	return NewBatchService(repository.NewBatchRepository(db), userSvc), db
}

func TestCreateBatchDefaults(t *testing.T) {
	svc, _ := newBatchService(t)

	batch, err := svc.CreateBatch(CreateBatchReq{Name: "Spring cohort", StartDate: time.Now()})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if batch.Status != "active" {
		t.Errorf("status = %q, want active", batch.Status)
	}
	if batch.BatchCode == "" {
		t.Error("batch code not generated")
	}
}

func TestAssignStudentsIsIdempotent(t *testing.T) {
	svc, db := newBatchService(t)

	batch, err := svc.CreateBatch(CreateBatchReq{Name: "Cohort", StartDate: time.Now()})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}

	if _, err := svc.AssignStudents(batch.ID, []string{"s1", "s2"}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.AssignStudents(batch.ID, []string{"s1"}); err != nil {
		t.Fatalf("re-assign: %v", err)
	}

	var count int64
	db.Model(&model.StudentBatch{}).Where("batch_id = ?", batch.ID).Count(&count)
	if count != 2 {
		t.Errorf("membership rows = %d, want 2", count)
	}

	if _, err := svc.AssignStudents("missing", []string{"s1"}); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("missing batch err = %v, want not-found", err)
	}
}

func TestListBatchesIncludesEnrollmentAggregates(t *testing.T) {
	svc, db := newBatchService(t)
	progressRepo := repository.NewProgressRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	cohort, err := svc.CreateBatch(CreateBatchReq{Name: "Cohort", StartDate: time.Now()})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if _, err := svc.AssignStudents(cohort.ID, []string{"s1", "s2"}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	course, sections := seedCourse(t, db, 2)
	for _, studentID := range []string{"s1", "s2"} {
		if err := assignmentRepo.AssignToStudent(course.ID, studentID, nil); err != nil {
			t.Fatalf("assign course: %v", err)
		}
	}
	// s1 finishes the course, s2 gets halfway.
	for _, section := range sections {
		if _, err := progressRepo.CompleteSection("s1", course.ID, section.ID, 60); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}
	if _, err := progressRepo.CompleteSection("s2", course.ID, sections[0].ID, 60); err != nil {
		t.Fatalf("complete: %v", err)
	}

	empty, err := svc.CreateBatch(CreateBatchReq{Name: "Empty cohort", StartDate: time.Now()})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}

	items, total, err := svc.ListBatches("", 1, 20)
	if err != nil {
		t.Fatalf("list batches: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}

	byID := make(map[string]BatchListItem)
	for _, item := range items {
		byID[item.ID] = item
	}
	got := byID[cohort.ID]
	if got.StudentCount != 2 {
		t.Errorf("student count = %d, want 2", got.StudentCount)
	}
	if got.CourseCount != 1 {
		t.Errorf("course count = %d, want 1", got.CourseCount)
	}
	// (100 + 50) / 2
	if got.AverageProgress != 75 {
		t.Errorf("average progress = %d, want 75", got.AverageProgress)
	}
	if e := byID[empty.ID]; e.StudentCount != 0 || e.CourseCount != 0 || e.AverageProgress != 0 {
		t.Errorf("empty batch aggregates = %d/%d/%d, want all zero",
			e.StudentCount, e.CourseCount, e.AverageProgress)
	}
}

func TestBatchProgressAggregatesMembers(t *testing.T) {
	svc, db := newBatchService(t)
	progressRepo := repository.NewProgressRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	batch, err := svc.CreateBatch(CreateBatchReq{Name: "Cohort", StartDate: time.Now()})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if _, err := svc.AssignStudents(batch.ID, []string{"s1", "s2"}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	course, sections := seedCourse(t, db, 2)
	for _, studentID := range []string{"s1", "s2"} {
		if err := assignmentRepo.AssignToStudent(course.ID, studentID, nil); err != nil {
			t.Fatalf("assign course: %v", err)
		}
	}
	// s1 finishes the course, s2 gets halfway.
	for _, section := range sections {
		if _, err := progressRepo.CompleteSection("s1", course.ID, section.ID, 60); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}
	if _, err := progressRepo.CompleteSection("s2", course.ID, sections[0].ID, 60); err != nil {
		t.Fatalf("complete: %v", err)
	}

	report, err := svc.BatchProgress(batch.ID)
	if err != nil {
		t.Fatalf("batch progress: %v", err)
	}
	if report.StudentCount != 2 {
		t.Errorf("student count = %d, want 2", report.StudentCount)
	}
	// (100 + 50) / 2
	if report.AverageProgress != 75 {
		t.Errorf("average progress = %d, want 75", report.AverageProgress)
	}

	byStudent := make(map[string]StudentBatchProgress)
	for _, s := range report.Students {
		byStudent[s.StudentID] = s
	}
	if byStudent["s1"].CompletedCourses != 1 {
		t.Errorf("s1 completed courses = %d, want 1", byStudent["s1"].CompletedCourses)
	}
	if byStudent["s2"].AverageProgress != 50 {
		t.Errorf("s2 average progress = %d, want 50", byStudent["s2"].AverageProgress)
	}
}
