package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tms_backend/internal/config"
	"tms_backend/internal/model"
	"tms_backend/internal/repository"
	"tms_backend/internal/util"

	"gorm.io/gorm"
)

func newCourseService(t *testing.T) (*CourseService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewBatchRepository(db),
		repository.NewFileRepository(db),
		NewStorageService(cfg),
		nil, // no redis in tests, listing falls through to the store
	), db
}

func TestCreateCourseDefaults(t *testing.T) {
	svc, _ := newCourseService(t)

	course, err := svc.CreateCourse(CreateCourseReq{Title: "Intro", TemplateType: "standard"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if course.Status != model.CourseDraft {
		t.Errorf("status = %q, want draft", course.Status)
	}
	if course.CourseCode == "" {
		t.Error("course code not generated")
	}
}

func TestGetCourseWithSections(t *testing.T) {
	svc, _ := newCourseService(t)

	course, err := svc.CreateCourse(CreateCourseReq{Title: "Intro", TemplateType: "standard"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	for i, dur := range []int{120, 180} {
		if _, err := svc.AddSection(course.ID, AddSectionReq{Title: "S", OrderIndex: i, Duration: dur}); err != nil {
			t.Fatalf("add section: %v", err)
		}
	}

	view, err := svc.GetCourse(course.ID, true)
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	if view.TotalSections != 2 {
		t.Errorf("total sections = %d, want 2", view.TotalSections)
	}
	if view.TotalDuration != 300 {
		t.Errorf("total duration = %d, want 300", view.TotalDuration)
	}

	if _, err := svc.GetCourse("missing", false); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("missing course err = %v, want not-found", err)
	}
}

func TestPublishCourse(t *testing.T) {
	svc, _ := newCourseService(t)

	course, err := svc.CreateCourse(CreateCourseReq{Title: "Intro", TemplateType: "standard"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	published, err := svc.PublishCourse(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.Status != model.CoursePublished {
		t.Errorf("status = %q, want published", published.Status)
	}
	if published.PublishedAt == nil {
		t.Error("publishedAt not set")
	}

	if _, err := svc.PublishCourse(context.Background(), "missing"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("missing course err = %v, want not-found", err)
	}
}

func TestListCoursesByStatus(t *testing.T) {
	svc, _ := newCourseService(t)

	if _, err := svc.CreateCourse(CreateCourseReq{Title: "Draft", TemplateType: "standard"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	live, err := svc.CreateCourse(CreateCourseReq{Title: "Live", TemplateType: "standard"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.PublishCourse(context.Background(), live.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}

	published, err := svc.ListCourses(context.Background(), model.CoursePublished)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(published) != 1 || published[0].ID != live.ID {
		t.Errorf("published listing = %d courses, want just %s", len(published), live.ID)
	}

	all, err := svc.ListCourses(context.Background(), "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all listing = %d courses, want 2", len(all))
	}
}

func TestCourseAssigneesListsAssignedStudents(t *testing.T) {
	svc, _ := newCourseService(t)

	course, err := svc.CreateCourse(CreateCourseReq{Title: "Intro", TemplateType: "standard"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if _, err := svc.AssignCourse(course.ID, AssignCourseReq{
		AssignmentType: "individual",
		StudentIDs:     []string{"s1", "s2"},
	}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	view, err := svc.CourseAssignees(course.ID)
	if err != nil {
		t.Fatalf("course assignees: %v", err)
	}
	if view.Total != 2 || len(view.StudentIDs) != 2 {
		t.Errorf("assignees = %d total, %d ids, want 2/2", view.Total, len(view.StudentIDs))
	}

	if _, err := svc.CourseAssignees("missing"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("missing course err = %v, want not-found", err)
	}
}

func TestAssignCourseIndividual(t *testing.T) {
	svc, db := newCourseService(t)

	course, err := svc.CreateCourse(CreateCourseReq{Title: "Intro", TemplateType: "standard"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	due := time.Now().Add(48 * time.Hour)
	result, err := svc.AssignCourse(course.ID, AssignCourseReq{
		AssignmentType: "individual",
		StudentIDs:     []string{"s1", "s2"},
		DueDate:        &due,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if result.AssignedCount != 2 {
		t.Errorf("assigned = %d, want 2", result.AssignedCount)
	}

	// Re-assigning keeps the original AssignedAt.
	var before model.CourseAssignment
	if err := db.First(&before, "course_id = ? AND student_id = ?", course.ID, "s1").Error; err != nil {
		t.Fatalf("load assignment: %v", err)
	}
	if _, err := svc.AssignCourse(course.ID, AssignCourseReq{
		AssignmentType: "individual",
		StudentIDs:     []string{"s1"},
	}); err != nil {
		t.Fatalf("re-assign: %v", err)
	}

	var after model.CourseAssignment
	var count int64
	db.Model(&model.CourseAssignment{}).Where("course_id = ?", course.ID).Count(&count)
	if count != 2 {
		t.Errorf("assignment rows = %d, want 2", count)
	}
	if err := db.First(&after, "course_id = ? AND student_id = ?", course.ID, "s1").Error; err != nil {
		t.Fatalf("reload assignment: %v", err)
	}
	if !after.AssignedAt.Equal(before.AssignedAt) {
		t.Error("re-assignment moved AssignedAt")
	}
}

func TestAssignCourseBatchFanOut(t *testing.T) {
	svc, db := newCourseService(t)
	batchRepo := repository.NewBatchRepository(db)

	course, err := svc.CreateCourse(CreateCourseReq{Title: "Intro", TemplateType: "standard"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	batch := &model.Batch{BatchCode: "BAT-TEST01", Name: "Cohort", StartDate: time.Now(), Status: "active"}
	mustCreate(t, db, batch)
	for _, id := range []string{"s1", "s2", "s3"} {
		if err := batchRepo.AssignStudent(id, batch.ID); err != nil {
			t.Fatalf("assign student to batch: %v", err)
		}
	}

	result, err := svc.AssignCourse(course.ID, AssignCourseReq{
		AssignmentType: "batch",
		BatchIDs:       []string{batch.ID},
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if result.AssignedCount != 3 || result.BatchCount != 1 {
		t.Errorf("assigned/batches = %d/%d, want 3/1", result.AssignedCount, result.BatchCount)
	}

	var count int64
	db.Model(&model.CourseAssignment{}).Where("course_id = ?", course.ID).Count(&count)
	if count != 3 {
		t.Errorf("assignment rows = %d, want 3", count)
	}
}

func TestAssignCourseRejectsUnknownType(t *testing.T) {
	svc, _ := newCourseService(t)

	course, err := svc.CreateCourse(CreateCourseReq{Title: "Intro", TemplateType: "standard"})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	if _, err := svc.AssignCourse(course.ID, AssignCourseReq{AssignmentType: "everyone"}); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("err = %v, want invalid-input", err)
	}
}
