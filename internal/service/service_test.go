package service

import (
	"testing"

	"tms_backend/internal/model"
	"tms_backend/internal/repository"
	"tms_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// The pool must stay on a single connection or each one gets its own
	// in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (*TestService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewTestService(repository.NewTestRepository(db), repository.NewSubmissionRepository(db)), db
}

func newProgressService(t *testing.T) (*ProgressService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewProgressService(repository.NewProgressRepository(db), repository.NewCourseRepository(db)), db
}

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewProgressRepository(db),
	), db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func seedCourse(t *testing.T, db *gorm.DB, sectionCount int) (*model.Course, []model.CourseSection) {
	t.Helper()

	course := &model.Course{
		CourseCode: "CRS-" + model.GenerateUUID()[:8],
		Title:      "Go Fundamentals",
		Status:     model.CoursePublished,
	}
	mustCreate(t, db, course)

	sections := make([]model.CourseSection, 0, sectionCount)
	for i := 0; i < sectionCount; i++ {
		section := model.CourseSection{
			CourseID:   course.ID,
			Title:      "Section",
			OrderIndex: i,
		}
		mustCreate(t, db, &section)
		sections = append(sections, section)
	}
	return course, sections
}
