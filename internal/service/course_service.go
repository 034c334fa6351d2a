package service

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"tms_backend/internal/model"
	"tms_backend/internal/repository"
	"tms_backend/internal/util"
	"tms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const publishedCoursesCacheKey = "courses:published"
const publishedCoursesCacheTTL = 5 * time.Minute

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	AssignmentRepo *repository.AssignmentRepository
	BatchRepo      *repository.BatchRepository
	FileRepo       *repository.FileRepository
	Storage        *StorageService
	Redis          *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, assignmentRepo *repository.AssignmentRepository,
	batchRepo *repository.BatchRepository, fileRepo *repository.FileRepository,
	storage *StorageService, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		AssignmentRepo: assignmentRepo,
		BatchRepo:      batchRepo,
		FileRepo:       fileRepo,
		Storage:        storage,
		Redis:          rdb,
	}
}

type CreateCourseReq struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	TemplateType      string `json:"templateType" binding:"required"`
	Difficulty        string `json:"difficulty"`
	EstimatedDuration int    `json:"estimatedDuration"`
}

func (s *CourseService) CreateCourse(req CreateCourseReq) (*model.Course, error) {
	course := &model.Course{
		CourseCode:        "CRS-" + strings.ToUpper(model.GenerateUUID()[:8]),
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		TemplateType:      req.TemplateType,
		Difficulty:        req.Difficulty,
		EstimatedDuration: req.EstimatedDuration,
		Status:            model.CourseDraft,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, util.StoreErr("course", err)
	}
	return course, nil
}

type CourseView struct {
	Course        *model.Course         `json:"course"`
	Sections      []model.CourseSection `json:"sections,omitempty"`
	TotalSections int                   `json:"totalSections,omitempty"`
	TotalDuration int                   `json:"totalDuration,omitempty"`
}

func (s *CourseService) GetCourse(courseID string, includeSections bool) (*CourseView, error) {
	course, err := s.findCourse(courseID)
	if err != nil {
		return nil, err
	}

	view := &CourseView{Course: course}
	if includeSections {
		sections, err := s.CourseRepo.ListSections(courseID)
		if err != nil {
			return nil, util.StoreErr("course_section", err)
		}
		view.Sections = sections
		view.TotalSections = len(sections)
		for _, sec := range sections {
			view.TotalDuration += sec.Duration
		}
	}
	return view, nil
}

// ListCourses serves the published listing from redis when possible; it is
// the landing-page query and changes rarely.
func (s *CourseService) ListCourses(ctx context.Context, status model.CourseStatus) ([]model.Course, error) {
	cacheable := status == model.CoursePublished && s.Redis != nil

	if cacheable {
		if cached, err := s.Redis.Get(ctx, publishedCoursesCacheKey).Result(); err == nil {
			var courses []model.Course
			if jsonErr := json.Unmarshal([]byte(cached), &courses); jsonErr == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.CourseRepo.List(status)
	if err != nil {
		return nil, util.StoreErr("course", err)
	}

	if cacheable {
		if payload, err := json.Marshal(courses); err == nil {
			s.Redis.Set(ctx, publishedCoursesCacheKey, payload, publishedCoursesCacheTTL)
		}
	}
	return courses, nil
}

type AddSectionReq struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	VideoURL   string `json:"videoUrl"`
	ImageURL   string `json:"imageUrl"`
	OrderIndex int    `json:"orderIndex"`
	Duration   int    `json:"duration"`
}

func (s *CourseService) AddSection(courseID string, req AddSectionReq) (*model.CourseSection, error) {
	if _, err := s.findCourse(courseID); err != nil {
		return nil, err
	}

	section := &model.CourseSection{
		CourseID:   courseID,
		Title:      req.Title,
		Content:    req.Content,
		VideoURL:   req.VideoURL,
		ImageURL:   req.ImageURL,
		OrderIndex: req.OrderIndex,
		Duration:   req.Duration,
	}
	if err := s.CourseRepo.CreateSection(section); err != nil {
		return nil, util.StoreErr("course_section", err)
	}
	return section, nil
}

func (s *CourseService) PublishCourse(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.Publish(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundErr("course", courseID)
		}
		return nil, util.StoreErr("course", err)
	}

	if s.Redis != nil {
		s.Redis.Del(ctx, publishedCoursesCacheKey)
	}
	return course, nil
}

type AssignCourseReq struct {
	AssignmentType string     `json:"assignmentType" binding:"required,oneof=individual batch"`
	StudentIDs     []string   `json:"studentIds"`
	BatchIDs       []string   `json:"batchIds"`
	DueDate        *time.Time `json:"dueDate"`
}

type AssignCourseResult struct {
	CourseID      string `json:"courseId"`
	AssignedCount int    `json:"assignedCount"`
	BatchCount    int    `json:"batchCount,omitempty"`
}

// AssignCourse fans a course out to students, either by explicit ids or by
// expanding batches into their members. Assignments are set-on-insert, so
// assigning twice never moves AssignedAt.
func (s *CourseService) AssignCourse(courseID string, req AssignCourseReq) (*AssignCourseResult, error) {
	if _, err := s.findCourse(courseID); err != nil {
		return nil, err
	}

	result := &AssignCourseResult{CourseID: courseID}

	switch req.AssignmentType {
	case "individual":
		for _, studentID := range req.StudentIDs {
			if err := s.AssignmentRepo.AssignToStudent(courseID, studentID, req.DueDate); err != nil {
				return nil, util.StoreErr("course_assignment", err)
			}
		}
		result.AssignedCount = len(req.StudentIDs)

	case "batch":
		for _, batchID := range req.BatchIDs {
			studentIDs, err := s.BatchRepo.ListStudentIDs(batchID)
			if err != nil {
				return nil, util.StoreErr("student_batch", err)
			}
			for _, studentID := range studentIDs {
				if err := s.AssignmentRepo.AssignToStudent(courseID, studentID, req.DueDate); err != nil {
					return nil, util.StoreErr("course_assignment", err)
				}
			}
			result.AssignedCount += len(studentIDs)
		}
		result.BatchCount = len(req.BatchIDs)

	default:
		return nil, util.InvalidInputErr("assignmentType must be individual or batch")
	}

	logger.Log.Info("course assigned",
		zap.String("courseId", courseID),
		zap.String("type", req.AssignmentType),
		zap.Int("assignedCount", result.AssignedCount),
	)
	return result, nil
}

type CourseAssigneesView struct {
	CourseID   string   `json:"courseId"`
	Total      int64    `json:"total"`
	StudentIDs []string `json:"studentIds"`
}

// CourseAssignees lists every student the course has been assigned to.
func (s *CourseService) CourseAssignees(courseID string) (*CourseAssigneesView, error) {
	if _, err := s.findCourse(courseID); err != nil {
		return nil, err
	}

	total, err := s.AssignmentRepo.CountByCourse(courseID)
	if err != nil {
		return nil, util.StoreErr("course_assignment", err)
	}
	studentIDs, err := s.AssignmentRepo.ListStudentIDsByCourse(courseID)
	if err != nil {
		return nil, util.StoreErr("course_assignment", err)
	}
	return &CourseAssigneesView{
		CourseID:   courseID,
		Total:      total,
		StudentIDs: studentIDs,
	}, nil
}

type UploadMediaResult struct {
	FileID   string  `json:"fileId"`
	FileName string  `json:"fileName"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration,omitempty"`
}

// UploadSectionMedia stores an uploaded video or image for a section and, for
// videos, probes the duration so the section does not need it hand-entered.
func (s *CourseService) UploadSectionMedia(ctx context.Context, sectionID string, header *multipart.FileHeader, localTmpPath, uploadedBy string) (*UploadMediaResult, error) {
	section, err := s.CourseRepo.FindSectionByID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundErr("course_section", sectionID)
		}
		return nil, util.StoreErr("course_section", err)
	}

	contentType := header.Header.Get("Content-Type")
	objectKey := "sections/" + sectionID + "/" + model.GenerateUUID() + filepath.Ext(header.Filename)

	record := &model.FileRecord{
		FileName:   header.Filename,
		ObjectKey:  objectKey,
		FileType:   contentType,
		FileSize:   header.Size,
		UploadedBy: uploadedBy,
		Status:     "processing",
	}
	if err := s.FileRepo.Create(record); err != nil {
		return nil, util.StoreErr("file", err)
	}

	url, err := s.Storage.Provider.UploadFile(ctx, objectKey, localTmpPath, contentType)
	if err != nil {
		s.FileRepo.UpdateStatus(record.ID, "failed")
		return nil, util.StoreErr("file", err)
	}

	result := &UploadMediaResult{FileID: record.ID, FileName: record.FileName, URL: url}

	if strings.HasPrefix(contentType, "video/") {
		section.VideoURL = url
		if info, probeErr := util.ProbeVideo(localTmpPath); probeErr == nil {
			section.Duration = int(info.Duration)
			result.Duration = info.Duration
		} else {
			logger.Log.Warn("video probe failed", zap.String("sectionId", sectionID), zap.Error(probeErr))
		}
	} else {
		section.ImageURL = url
	}

	if err := s.CourseRepo.UpdateSection(section); err != nil {
		return nil, util.StoreErr("course_section", err)
	}
	if err := s.FileRepo.UpdateStatus(record.ID, "ready"); err != nil {
		return nil, util.StoreErr("file", err)
	}

	return result, nil
}

func (s *CourseService) findCourse(courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundErr("course", courseID)
		}
		return nil, util.StoreErr("course", err)
	}
	return course, nil
}
