// 演示数据种子脚本
//
// 在空数据库上创建一名教师、三名学生、一门带章节的课程和一份测验，
// 便于本地联调前端。重复执行是安全的：已存在的邮箱会被跳过。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"log"
	"os"
	"time"

	"tms_backend/internal/config"
	"tms_backend/internal/model"
	"tms_backend/pkg/database"
	"tms_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	database.SeedAdmin(db)

	teacher := seedUser(db, "teacher@tms.local", "teacher123", "Demo", "Teacher", model.Teacher)
	students := []*model.User{
		seedUser(db, "student1@tms.local", "student123", "Demo", "StudentOne", model.Student),
		seedUser(db, "student2@tms.local", "student123", "Demo", "StudentTwo", model.Student),
		seedUser(db, "student3@tms.local", "student123", "Demo", "StudentThree", model.Student),
	}

	course := &model.Course{
		CourseCode:        "CRS-DEMO001",
		Title:             "Go 入门",
		Description:       "Demo course seeded for local development",
		Category:          "programming",
		TemplateType:      "standard",
		Difficulty:        "beginner",
		EstimatedDuration: 120,
		Status:            model.CoursePublished,
	}
	now := time.Now()
	course.PublishedAt = &now
	findOrCreate(db, course, "course_code = ?", course.CourseCode)

	sectionTitles := []string{"环境搭建", "基础语法", "并发入门", "标准库漫游"}
	for i, title := range sectionTitles {
		section := &model.CourseSection{
			CourseID:   course.ID,
			Title:      title,
			OrderIndex: i,
			Duration:   600,
		}
		findOrCreate(db, section, "course_id = ? AND order_index = ?", course.ID, i)
	}

	test := &model.Test{
		CourseID:     course.ID,
		Title:        "入门测验",
		Duration:     30,
		PassingScore: 70,
	}
	findOrCreate(db, test, "course_id = ? AND title = ?", course.ID, test.Title)

	questions := []*model.TestQuestion{
		{TestID: test.ID, QuestionType: model.QuestionTypeMCQ, QuestionText: "Go 的并发原语是什么？",
			OptionA: "goroutine", OptionB: "thread", OptionC: "process", OptionD: "fiber",
			CorrectAnswer: "A", Points: 5, OrderIndex: 0},
		{TestID: test.ID, QuestionType: model.QuestionTypeMCQ, QuestionText: "哪个关键字声明常量？",
			OptionA: "var", OptionB: "const", OptionC: "let", OptionD: "final",
			CorrectAnswer: "B", Points: 5, OrderIndex: 1},
		{TestID: test.ID, QuestionType: model.QuestionTypeText, QuestionText: "简述 channel 的用途。",
			Points: 10, OrderIndex: 2},
	}
	for _, q := range questions {
		findOrCreate(db, q, "test_id = ? AND order_index = ?", test.ID, q.OrderIndex)
	}

	for _, student := range students {
		assignment := &model.CourseAssignment{
			CourseID:   course.ID,
			StudentID:  student.ID,
			AssignedAt: now,
		}
		findOrCreate(db, assignment, "course_id = ? AND student_id = ?", course.ID, student.ID)
	}

	log.Printf("演示数据就绪: 教师 %s, 课程 %s, 测验 %s", teacher.Email, course.CourseCode, test.Title)
}

func seedUser(db *gorm.DB, email, password, first, last string, role model.UserRole) *model.User {
	var existing model.User
	if err := db.First(&existing, "email = ?", email).Error; err == nil {
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		log.Fatalf("创建用户 %s 失败: %v", email, err)
	}
	return user
}

func findOrCreate(db *gorm.DB, value interface{}, query string, args ...interface{}) {
	err := db.Where(query, args...).First(value).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("查询失败: %v", err)
	}
	if err := db.Create(value).Error; err != nil {
		log.Fatalf("创建记录失败: %v", err)
	}
}
