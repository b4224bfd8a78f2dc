package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/auth"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/repository"
	"github.com/lshigami/classquiz/internal/storage"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService records quiz and essay answers.
type SubmissionService interface {
	SubmitQuiz(p *auth.Principal, slug string, rawData []byte) (*dto.ResultResponse, error)
	PreviewQuiz(p *auth.Principal, slug string, rawData []byte) (*dto.ResultResponse, error)
	SubmitEssay(p *auth.Principal, slug string, req dto.SubmitEssayRequest, file *multipart.FileHeader) (*dto.ResultResponse, error)
	// Drain waits for background essay reviews. When ctx ends first the reviews are cancelled.
	Drain(ctx context.Context) error
}

// errResultTaken reports that another request created the user's result header first.
var errResultTaken = errors.New("result header already exists")

type submissionService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	engine       GradingEngine
	reviewer     EssayReviewer
	files        storage.FileStore
	db           *gorm.DB
	now          func() time.Time

	reviews       sync.WaitGroup
	reviewCtx     context.Context
	cancelReviews context.CancelFunc
}

func NewSubmissionService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	engine GradingEngine,
	reviewer EssayReviewer,
	files storage.FileStore,
	db *gorm.DB,
) SubmissionService {
	reviewCtx, cancel := context.WithCancel(context.Background())
	return &submissionService{
		reviewCtx:     reviewCtx,
		cancelReviews: cancel,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		engine:       engine,
		reviewer:     reviewer,
		files:        files,
		db:           db,
		now:          time.Now,
	}
}

// gate rejects submissions to the wrong kind of quiz or after the deadline.
func (s *submissionService) gate(quiz *model.Quiz, kind model.QuizType) error {
	if quiz.Type != kind {
		return apperror.BusinessRule(apperror.MsgSubmitFailed, apperror.MsgWrongQuizType)
	}
	if !quiz.Open(s.now()) {
		return apperror.DeadlinePassed()
	}
	return nil
}

func (s *submissionService) SubmitQuiz(p *auth.Principal, slug string, rawData []byte) (*dto.ResultResponse, error) {
	quiz, err := s.quizRepo.FindBySlugWithQuestions(slug, false)
	if err != nil {
		return nil, lookupError(err)
	}

	submitted, err := s.resultRepo.ExistsForUserAndQuiz(p.UserID, quiz.ID)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgAnswersNotSaved)
	}
	if submitted {
		return nil, apperror.AlreadySubmitted()
	}
	if err := s.gate(quiz, model.QuizTypeQuiz); err != nil {
		return nil, err
	}

	groups, err := ParseAnswerGroups(rawData)
	if err != nil {
		return nil, err
	}
	if err := validateAnswerGroups(quiz, groups); err != nil {
		return nil, err
	}

	var result model.Result
	err = s.db.Transaction(func(tx *gorm.DB) error {
		results := s.resultRepo.WithTx(tx)

		zero := 0.0
		result = model.Result{UserID: p.UserID, QuizID: quiz.ID, Score: &zero}
		if err := results.Create(&result); err != nil {
			return fmt.Errorf("create result header: %w", err)
		}

		grade, err := s.engine.Grade(quiz.Questions, groups, s.questionRepo.WithTx(tx))
		if err != nil {
			return err
		}
		for i := range grade.Rows {
			grade.Rows[i].ResultID = result.ID
		}
		if err := results.CreateResultQuizzes(grade.Rows); err != nil {
			return fmt.Errorf("create result rows: %w", err)
		}

		score := grade.Score
		if err := results.UpdateScore(result.ID, &score); err != nil {
			return fmt.Errorf("update score: %w", err)
		}
		result.Score = &score
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.AlreadySubmitted()
		}
		log.Error().Err(err).Uint("quizID", quiz.ID).Uint("userID", p.UserID).Msg("SubmitQuiz: transaction rolled back")
		return nil, apperror.Unexpected(err, apperror.MsgAnswersNotSaved)
	}

	log.Info().Uint("resultID", result.ID).Float64("score", *result.Score).Msg("SubmitQuiz: answers graded")
	return s.detail(result.ID)
}

// PreviewQuiz grades answers the way SubmitQuiz does but stores nothing. Deadline and
// already-submitted checks do not apply.
func (s *submissionService) PreviewQuiz(p *auth.Principal, slug string, rawData []byte) (*dto.ResultResponse, error) {
	quiz, err := s.quizRepo.FindBySlugWithQuestions(slug, false)
	if err != nil {
		return nil, lookupError(err)
	}
	if quiz.Type != model.QuizTypeQuiz {
		return nil, apperror.BusinessRule(apperror.MsgSubmitFailed, apperror.MsgWrongQuizType)
	}

	groups, err := ParseAnswerGroups(rawData)
	if err != nil {
		return nil, err
	}
	if err := validateAnswerGroups(quiz, groups); err != nil {
		return nil, err
	}

	grade, err := s.engine.Grade(quiz.Questions, groups, s.questionRepo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Field("data", "contains an option that does not belong to its question")
		}
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}

	score := grade.Score
	result := model.Result{UserID: p.UserID, QuizID: quiz.ID, Score: &score, ResultQuizzes: grade.Rows}
	resp := toResultResponse(&result, true)
	return &resp, nil
}

func (s *submissionService) SubmitEssay(p *auth.Principal, slug string, req dto.SubmitEssayRequest, file *multipart.FileHeader) (*dto.ResultResponse, error) {
	quiz, err := s.quizRepo.FindBySlug(slug)
	if err != nil {
		return nil, lookupError(err)
	}
	if err := s.gate(quiz, model.QuizTypeEssay); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByIDForQuiz(quiz.ID, req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Field("question_id", "is not a question of this quiz")
		}
		return nil, apperror.Unexpected(err, apperror.MsgAnswersNotSaved)
	}

	existing, err := s.resultRepo.FindByUserAndQuiz(p.UserID, quiz.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = nil
	case err != nil:
		return nil, apperror.Unexpected(err, apperror.MsgAnswersNotSaved)
	default:
		answered, err := s.resultRepo.EssayAnswered(existing.ID, question.ID)
		if err != nil {
			return nil, apperror.Unexpected(err, apperror.MsgAnswersNotSaved)
		}
		if answered {
			return nil, apperror.AlreadySubmitted()
		}
	}

	var filePath *string
	if file != nil {
		saved, err := s.files.Save(storage.FolderQuizFile, file, storage.DocumentRule("file"))
		if err != nil {
			return nil, internalError(err, apperror.MsgAnswersNotSaved)
		}
		filePath = &saved
	}

	comment := req.Comment
	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}

	essay := model.ResultEssay{QuestionID: question.ID, Comment: comment, File: filePath}
	result, err := s.attachEssay(p.UserID, quiz.ID, existing, &essay)
	if errors.Is(err, errResultTaken) {
		// an answer to another question of this quiz created the header meanwhile
		existing, err = s.resultRepo.FindByUserAndQuiz(p.UserID, quiz.ID)
		if err == nil {
			result, err = s.attachEssay(p.UserID, quiz.ID, existing, &essay)
		}
	}
	if err != nil {
		if filePath != nil {
			if delErr := s.files.Delete(*filePath); delErr != nil {
				log.Warn().Err(delErr).Str("path", *filePath).Msg("SubmitEssay: failed to remove orphaned upload")
			}
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, errResultTaken) {
			return nil, apperror.AlreadySubmitted()
		}
		log.Error().Err(err).Uint("quizID", quiz.ID).Uint("userID", p.UserID).Msg("SubmitEssay: transaction rolled back")
		return nil, apperror.Unexpected(err, apperror.MsgAnswersNotSaved)
	}

	if comment != nil && s.reviewer.Enabled() {
		s.reviewInBackground(essay.ID, question.Question, *comment)
	}
	return s.detail(result.ID)
}

// attachEssay stores essay under existing, or under a new result header when existing is nil.
func (s *submissionService) attachEssay(userID, quizID uint, existing *model.Result, essay *model.ResultEssay) (model.Result, error) {
	var result model.Result
	err := s.db.Transaction(func(tx *gorm.DB) error {
		results := s.resultRepo.WithTx(tx)
		if existing != nil {
			result = *existing
		} else {
			result = model.Result{UserID: userID, QuizID: quizID}
			if err := results.Create(&result); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errResultTaken
				}
				return fmt.Errorf("create result header: %w", err)
			}
		}
		essay.ResultID = result.ID
		if err := results.CreateResultEssay(essay); err != nil {
			return fmt.Errorf("create essay row: %w", err)
		}
		return nil
	})
	return result, err
}

// reviewInBackground stores AI feedback for an essay answer without blocking the request.
func (s *submissionService) reviewInBackground(essayID uint, question, answer string) {
	s.reviews.Add(1)
	go func() {
		defer s.reviews.Done()
		ctx, cancel := context.WithTimeout(s.reviewCtx, 90*time.Second)
		defer cancel()

		feedback, err := s.reviewer.Review(ctx, question, answer)
		if err != nil {
			log.Warn().Err(err).Uint("essayID", essayID).Msg("SubmitEssay: essay review failed")
			return
		}
		if err := s.resultRepo.UpdateEssayFeedback(essayID, feedback); err != nil {
			log.Error().Err(err).Uint("essayID", essayID).Msg("SubmitEssay: failed to store essay feedback")
		}
	}()
}

func (s *submissionService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.reviews.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.cancelReviews()
		<-done
		return ctx.Err()
	}
}

func (s *submissionService) detail(resultID uint) (*dto.ResultResponse, error) {
	result, err := s.resultRepo.FindByIDWithDetails(resultID)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := toResultResponse(result, false)
	return &resp, nil
}

// ParseAnswerGroups accepts the answer array as JSON or as a JSON string containing it.
func ParseAnswerGroups(raw []byte) ([]dto.AnswerGroup, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, apperror.Field("data", "data is required")
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, apperror.Field("data", "must be a JSON array of answers")
		}
		raw = bytes.TrimSpace([]byte(encoded))
	}

	var groups []dto.AnswerGroup
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, apperror.Field("data", "must be a JSON array of answers")
	}
	if len(groups) == 0 {
		return nil, apperror.Field("data", "data is required")
	}
	return groups, nil
}

// validateAnswerGroups checks every group names a distinct question of quiz.
func validateAnswerGroups(quiz *model.Quiz, groups []dto.AnswerGroup) error {
	known := make(map[uint]bool, len(quiz.Questions))
	for _, q := range quiz.Questions {
		known[q.ID] = true
	}
	seen := make(map[uint]bool, len(groups))
	for i, g := range groups {
		id := g.QuestionID()
		field := fmt.Sprintf("data[%d].id", i)
		if !known[id] {
			return apperror.Field(field, "is not a question of this quiz")
		}
		if seen[id] {
			return apperror.Field(field, "question answered more than once")
		}
		seen[id] = true
	}
	return nil
}
