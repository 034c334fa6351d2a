package service

import (
	"errors"
	"testing"

	"tms_backend/internal/model"
	"tms_backend/internal/util"
)

func TestCompleteSectionUpsertsAndAccumulatesTime(t *testing.T) {
	svc, db := newProgressService(t)
	course, sections := seedCourse(t, db, 4)

	first, err := svc.CompleteSection("student-1", course.ID, sections[0].ID, 300)
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if !first.Completed || first.CompletedAt == nil {
		t.Error("completion flags not set")
	}
	if first.TimeSpent != 300 {
		t.Errorf("time spent = %d, want 300", first.TimeSpent)
	}
	if first.CourseProgress.ProgressPercentage != 25 {
		t.Errorf("progress = %d%%, want 25", first.CourseProgress.ProgressPercentage)
	}

	// Completing the same section again updates the row in place.
	second, err := svc.CompleteSection("student-1", course.ID, sections[0].ID, 200)
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if second.TimeSpent != 500 {
		t.Errorf("accumulated time = %d, want 500", second.TimeSpent)
	}
	if second.ProgressID != first.ProgressID {
		t.Error("re-completion created a second progress row")
	}
	if second.CourseProgress.CompletedSections != 1 {
		t.Errorf("completed sections = %d, want 1", second.CourseProgress.CompletedSections)
	}

	var count int64
	db.Model(&model.StudentProgress{}).
		Where("student_id = ? AND course_id = ?", "student-1", course.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("progress rows = %d, want 1", count)
	}
}

func TestCompleteSectionProgressPercentage(t *testing.T) {
	svc, db := newProgressService(t)
	course, sections := seedCourse(t, db, 4)

	if _, err := svc.CompleteSection("student-1", course.ID, sections[0].ID, 60); err != nil {
		t.Fatalf("complete: %v", err)
	}
	result, err := svc.CompleteSection("student-1", course.ID, sections[1].ID, 60)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	cp := result.CourseProgress
	if cp.CompletedSections != 2 || cp.TotalSections != 4 || cp.ProgressPercentage != 50 {
		t.Errorf("progress = %d/%d = %d%%, want 2/4 = 50%%",
			cp.CompletedSections, cp.TotalSections, cp.ProgressPercentage)
	}
}

func TestCompleteSectionRejectsNegativeElapsed(t *testing.T) {
	svc, db := newProgressService(t)
	course, sections := seedCourse(t, db, 1)

	_, err := svc.CompleteSection("student-1", course.ID, sections[0].ID, -1)
	if !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("err = %v, want invalid-input", err)
	}
}

func TestCompleteSectionUnknownCourse(t *testing.T) {
	svc, _ := newProgressService(t)

	_, err := svc.CompleteSection("student-1", "missing", "section-1", 60)
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestCourseProgressZeroSections(t *testing.T) {
	svc, db := newProgressService(t)
	course, _ := seedCourse(t, db, 0)

	cp, err := svc.CourseProgress("student-1", course.ID)
	if err != nil {
		t.Fatalf("course progress: %v", err)
	}
	if cp.ProgressPercentage != 0 {
		t.Errorf("progress for empty course = %d%%, want 0", cp.ProgressPercentage)
	}
}

func TestGetStudentProgressEmpty(t *testing.T) {
	svc, db := newProgressService(t)
	course, _ := seedCourse(t, db, 2)

	entries, err := svc.GetStudentProgress("student-1", course.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %#v, want empty non-nil slice", entries)
	}
}

func TestProgressPercentClamps(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 4, 0},
		{1, 4, 25},
		{1, 3, 33},
		{2, 3, 67},
		{4, 4, 100},
		{5, 4, 100}, // stale rows beyond the section count stay clamped
		{1, 0, 0},
		{-1, 4, 0},
	}
	for _, c := range cases {
		if got := progressPercent(c.completed, c.total); got != c.want {
			t.Errorf("progressPercent(%d, %d) = %d, want %d", c.completed, c.total, got, c.want)
		}
	}
}
