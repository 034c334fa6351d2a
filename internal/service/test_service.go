package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"tms_backend/internal/model"
	"tms_backend/internal/repository"
	"tms_backend/internal/util"
	"tms_backend/pkg/logger"
	"tms_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TestService struct {
	TestRepo       *repository.TestRepository
	SubmissionRepo *repository.SubmissionRepository
}

func NewTestService(testRepo *repository.TestRepository, submissionRepo *repository.SubmissionRepository) *TestService {
	return &TestService{TestRepo: testRepo, SubmissionRepo: submissionRepo}
}

type TestQuestionReq struct {
	QuestionType  string `json:"questionType" binding:"required,oneof=mcq text"`
	QuestionText  string `json:"questionText" binding:"required"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
	Points        int    `json:"points"`
	OrderIndex    int    `json:"orderIndex"`
}

type CreateTestReq struct {
	CourseID     string `json:"courseId" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Duration     int    `json:"duration"`
	PassingScore int    `json:"passingScore"`
}

func (s *TestService) CreateTest(req CreateTestReq) (*model.Test, error) {
	test := &model.Test{
		CourseID:     req.CourseID,
		Title:        req.Title,
		Description:  req.Description,
		Duration:     req.Duration,
		PassingScore: req.PassingScore,
	}
	if test.PassingScore == 0 {
		test.PassingScore = 70
	}
	if err := s.TestRepo.Create(test); err != nil {
		return nil, util.StoreErr("test", err)
	}
	return test, nil
}

func (s *TestService) AddQuestions(testID string, reqs []TestQuestionReq) ([]model.TestQuestion, error) {
	if _, err := s.findTest(testID); err != nil {
		return nil, err
	}

	qs := make([]model.TestQuestion, 0, len(reqs))
	for _, req := range reqs {
		if req.QuestionType == model.QuestionTypeMCQ && req.CorrectAnswer == "" {
			return nil, util.InvalidInputErr("mcq question requires a correct answer label")
		}
		if req.Points < 0 {
			return nil, util.InvalidInputErr("question points must be non-negative")
		}
		q := model.TestQuestion{
			TestID:        testID,
			QuestionType:  req.QuestionType,
			QuestionText:  req.QuestionText,
			OptionA:       req.OptionA,
			OptionB:       req.OptionB,
			OptionC:       req.OptionC,
			OptionD:       req.OptionD,
			CorrectAnswer: req.CorrectAnswer,
			Points:        req.Points,
			OrderIndex:    req.OrderIndex,
		}
		if err := s.TestRepo.CreateQuestion(&q); err != nil {
			return nil, util.StoreErr("test_question", err)
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// DeleteQuestion removes one question from a test. Scores of existing
// submissions are untouched, they reflect the question set at submit time.
func (s *TestService) DeleteQuestion(testID, questionID string) error {
	if _, err := s.findTest(testID); err != nil {
		return err
	}

	questions, err := s.TestRepo.ListQuestions(testID)
	if err != nil {
		return util.StoreErr("test_question", err)
	}
	found := false
	for i := range questions {
		if questions[i].ID == questionID {
			found = true
			break
		}
	}
	if !found {
		return util.NotFoundErr("question", questionID)
	}

	if err := s.TestRepo.DeleteQuestion(questionID); err != nil {
		return util.StoreErr("test_question", err)
	}
	return nil
}

type TestView struct {
	Test           *model.Test          `json:"test"`
	Questions      []model.TestQuestion `json:"questions,omitempty"`
	TotalQuestions int                  `json:"totalQuestions,omitempty"`
	TotalPoints    int                  `json:"totalPoints,omitempty"`
}

func (s *TestService) GetTest(testID string, includeQuestions bool) (*TestView, error) {
	test, err := s.findTest(testID)
	if err != nil {
		return nil, err
	}

	view := &TestView{Test: test}
	if includeQuestions {
		qs, err := s.TestRepo.ListQuestions(testID)
		if err != nil {
			return nil, util.StoreErr("test_question", err)
		}
		view.Questions = qs
		view.TotalQuestions = len(qs)
		for _, q := range qs {
			view.TotalPoints += q.Points
		}
	}
	return view, nil
}

func (s *TestService) ListByCourse(courseID string) ([]model.Test, error) {
	tests, err := s.TestRepo.ListByCourse(courseID)
	if err != nil {
		return nil, util.StoreErr("test", err)
	}
	return tests, nil
}

// SubmittedAnswer is one (question, raw answer) pair of a submission attempt.
type SubmittedAnswer struct {
	QuestionID string `json:"questionId" binding:"required"`
	AnswerText string `json:"answerText"`
}

type AnswerDetail struct {
	QuestionID    string `json:"questionId"`
	IsCorrect     *bool  `json:"isCorrect"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

type SubmitResult struct {
	SubmissionID         string         `json:"submissionId"`
	TestID               string         `json:"testId"`
	StudentID            string         `json:"studentId"`
	SubmittedAt          time.Time      `json:"submittedAt"`
	Status               string         `json:"status"`
	AutoGradedScore      int            `json:"autoGradedScore"`
	MaxAutoGradedScore   int            `json:"maxAutoGradedScore"`
	PendingManualGrading int            `json:"pendingManualGrading"`
	CorrectCount         int            `json:"correctCount"`
	TotalQuestions       int            `json:"totalQuestions"`
	AnswerDetails        []AnswerDetail `json:"answerDetails"`
}

// Submit grades one attempt. MCQ answers are compared trimmed and
// case-insensitively against the stored label; text answers stay ungraded
// until a manual pass. Pairs whose question id is not part of the test are
// skipped silently: partial submissions are expected learner behavior, not
// an error. Each call creates a new submission, resubmission policy is the
// caller's concern.
func (s *TestService) Submit(testID, studentID string, answers []SubmittedAnswer) (*SubmitResult, error) {
	if _, err := s.findTest(testID); err != nil {
		return nil, err
	}

	questions, err := s.TestRepo.ListQuestions(testID)
	if err != nil {
		return nil, util.StoreErr("test_question", err)
	}

	questionByID := make(map[string]*model.TestQuestion, len(questions))
	maxAuto := 0
	pendingManual := 0
	for i := range questions {
		q := &questions[i]
		questionByID[q.ID] = q
		// Score pools cover the whole question set, not just answered pairs.
		if q.QuestionType == model.QuestionTypeMCQ {
			maxAuto += q.Points
		} else {
			pendingManual += q.Points
		}
	}

	achieved := 0
	correctCount := 0
	graded := make([]model.TestAnswer, 0, len(answers))
	details := make([]AnswerDetail, 0, len(answers))

	for _, a := range answers {
		q, ok := questionByID[a.QuestionID]
		if !ok {
			continue
		}

		var isCorrect *bool
		pointsEarned := 0
		correctLabel := ""

		if q.QuestionType == model.QuestionTypeMCQ {
			match := answersEqual(a.AnswerText, q.CorrectAnswer)
			isCorrect = &match
			correctLabel = q.CorrectAnswer
			if match {
				pointsEarned = q.Points
				achieved += pointsEarned
				correctCount++
			}
		}

		graded = append(graded, model.TestAnswer{
			QuestionID:   q.ID,
			AnswerText:   a.AnswerText,
			IsCorrect:    isCorrect,
			PointsEarned: pointsEarned,
		})
		details = append(details, AnswerDetail{
			QuestionID:    q.ID,
			IsCorrect:     isCorrect,
			UserAnswer:    a.AnswerText,
			CorrectAnswer: correctLabel,
		})
	}

	now := time.Now()
	maxScore := maxAuto + pendingManual
	submission := &model.TestSubmission{
		TestID:      testID,
		StudentID:   studentID,
		Status:      model.SubmissionSubmitted,
		SubmittedAt: now,
		Score:       achieved,
		MaxScore:    maxScore,
	}
	// One transaction: a failed answer write must not leave a headless
	// zero-score submission behind.
	if err := s.SubmissionRepo.CreateGraded(submission, graded); err != nil {
		return nil, util.StoreErr("test_submission", err)
	}

	monitoring.SubmissionsGraded.WithLabelValues(testID).Inc()
	logger.Log.Info("test submission graded",
		zap.String("testId", testID),
		zap.String("submissionId", submission.ID),
		zap.Int("score", achieved),
		zap.Int("maxScore", maxScore),
	)

	return &SubmitResult{
		SubmissionID:         submission.ID,
		TestID:               testID,
		StudentID:            studentID,
		SubmittedAt:          now,
		Status:               submission.Status,
		AutoGradedScore:      achieved,
		MaxAutoGradedScore:   maxAuto,
		PendingManualGrading: pendingManual,
		CorrectCount:         correctCount,
		TotalQuestions:       len(questions),
		AnswerDetails:        details,
	}, nil
}

type SubmissionAnswerView struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
	AnswerText   string `json:"answerText"`
	IsCorrect    *bool  `json:"isCorrect"`
	PointsEarned int    `json:"pointsEarned"`
	MaxPoints    int    `json:"maxPoints"`
}

type SubmissionView struct {
	SubmissionID string                 `json:"submissionId"`
	TestID       string                 `json:"testId"`
	StudentID    string                 `json:"studentId"`
	SubmittedAt  time.Time              `json:"submittedAt"`
	Status       string                 `json:"status"`
	Score        int                    `json:"score"`
	MaxScore     int                    `json:"maxScore"`
	Percentage   int                    `json:"percentage"`
	Passed       bool                   `json:"passed"`
	Answers      []SubmissionAnswerView `json:"answers"`
}

func (s *TestService) GetSubmission(testID, submissionID string) (*SubmissionView, error) {
	test, err := s.findTest(testID)
	if err != nil {
		return nil, err
	}

	sub, err := s.SubmissionRepo.Find(testID, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundErr("submission", submissionID)
		}
		return nil, util.StoreErr("test_submission", err)
	}

	answers, err := s.SubmissionRepo.ListAnswers(submissionID)
	if err != nil {
		return nil, util.StoreErr("test_answer", err)
	}

	questions, err := s.TestRepo.ListQuestions(testID)
	if err != nil {
		return nil, util.StoreErr("test_question", err)
	}
	questionByID := make(map[string]*model.TestQuestion, len(questions))
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
	}

	percentage := 0
	if sub.MaxScore > 0 {
		percentage = int(math.Round(float64(sub.Score) / float64(sub.MaxScore) * 100))
	}

	view := &SubmissionView{
		SubmissionID: sub.ID,
		TestID:       sub.TestID,
		StudentID:    sub.StudentID,
		SubmittedAt:  sub.SubmittedAt,
		Status:       sub.Status,
		Score:        sub.Score,
		MaxScore:     sub.MaxScore,
		Percentage:   percentage,
		Passed:       sub.MaxScore > 0 && percentage >= test.PassingScore,
	}

	for _, a := range answers {
		av := SubmissionAnswerView{
			QuestionID:   a.QuestionID,
			AnswerText:   a.AnswerText,
			IsCorrect:    a.IsCorrect,
			PointsEarned: a.PointsEarned,
		}
		if q, ok := questionByID[a.QuestionID]; ok {
			av.QuestionText = q.QuestionText
			av.MaxPoints = q.Points
		}
		view.Answers = append(view.Answers, av)
	}

	return view, nil
}

// GradeAnswer is the manual grading pass for text answers: it sets the
// correctness and earned points of one answer and recomputes the
// submission's total. MaxScore is unchanged, it already included the text
// question's points.
func (s *TestService) GradeAnswer(submissionID, questionID string, correct bool, points int) (*model.TestSubmission, error) {
	sub, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundErr("submission", submissionID)
		}
		return nil, util.StoreErr("test_submission", err)
	}

	answer, err := s.SubmissionRepo.FindAnswer(submissionID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundErr("answer", questionID)
		}
		return nil, util.StoreErr("test_answer", err)
	}

	if points < 0 {
		return nil, util.InvalidInputErr("points must be non-negative")
	}
	questions, err := s.TestRepo.ListQuestions(sub.TestID)
	if err != nil {
		return nil, util.StoreErr("test_question", err)
	}
	for i := range questions {
		if questions[i].ID == questionID && points > questions[i].Points {
			return nil, util.InvalidInputErr("points exceed the question's point value")
		}
	}

	answer.IsCorrect = &correct
	if !correct {
		points = 0
	}
	answer.PointsEarned = points
	if err := s.SubmissionRepo.UpdateAnswer(answer); err != nil {
		return nil, util.StoreErr("test_answer", err)
	}

	total, err := s.SubmissionRepo.SumEarnedPoints(submissionID)
	if err != nil {
		return nil, util.StoreErr("test_answer", err)
	}
	if err := s.SubmissionRepo.UpdateScores(submissionID, total, sub.MaxScore); err != nil {
		return nil, util.StoreErr("test_submission", err)
	}

	pending, err := s.SubmissionRepo.CountPendingAnswers(submissionID)
	if err != nil {
		return nil, util.StoreErr("test_answer", err)
	}
	if pending == 0 {
		if err := s.SubmissionRepo.UpdateStatus(submissionID, model.SubmissionGraded); err != nil {
			return nil, util.StoreErr("test_submission", err)
		}
	}

	return s.SubmissionRepo.FindByID(submissionID)
}

func (s *TestService) findTest(testID string) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundErr("test", testID)
		}
		return nil, util.StoreErr("test", err)
	}
	return test, nil
}

func answersEqual(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}
