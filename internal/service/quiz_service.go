package service

import (
	"fmt"
	"mime/multipart"
	"strings"
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

const (
	maxOptionsPerQuestion = 5
	minOptionsPerQuestion = 1
)

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// QuizFiles are the uploads that may accompany a create or update request.
// Questions is keyed by the question's index in the request.
type QuizFiles struct {
	Banner    *multipart.FileHeader
	Questions map[int]*multipart.FileHeader
}

type QuizService interface {
	List(p *auth.Principal, quizType string) ([]dto.QuizResponse, error)
	Show(p *auth.Principal, slug string) (*dto.QuizResponse, error)
	Create(p *auth.Principal, req dto.QuizCreateRequest, files QuizFiles) (*dto.QuizResponse, error)
	Update(slug string, req dto.QuizUpdateRequest, files QuizFiles) (*dto.QuizResponse, error)
	Delete(slug string) error
	DeleteQuestionFile(questionID uint) error
	DeleteOption(optionID uint) error
}

type quizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	files        storage.FileStore
	db           *gorm.DB
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	files storage.FileStore,
	db *gorm.DB,
) QuizService {
	return &quizService{quizRepo: quizRepo, questionRepo: questionRepo, resultRepo: resultRepo, files: files, db: db}
}

// List returns multiple choice quizzes with options for type=quiz and essay quizzes otherwise.
func (s *quizService) List(p *auth.Principal, quizType string) ([]dto.QuizResponse, error) {
	qt := model.QuizTypeEssay
	if quizType == string(model.QuizTypeQuiz) {
		qt = model.QuizTypeQuiz
	}
	quizzes, err := s.quizRepo.FindAllByType(qt, qt == model.QuizTypeQuiz)
	if err != nil {
		log.Error().Err(err).Str("type", string(qt)).Msg("ListQuizzes: repository error")
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		resp = append(resp, toQuizResponse(&quizzes[i], p.SeesAnswerKey()))
	}
	return resp, nil
}

func (s *quizService) Show(p *auth.Principal, slug string) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.FindBySlug(slug)
	if err != nil {
		return nil, lookupError(err)
	}
	if quiz.Type == model.QuizTypeQuiz && !p.SeesAnswerKey() {
		submitted, err := s.resultRepo.ExistsForUserAndQuiz(p.UserID, quiz.ID)
		if err != nil {
			return nil, apperror.Unexpected(err, apperror.MsgFailed)
		}
		if submitted {
			return nil, apperror.AlreadySubmitted()
		}
	}

	quiz, err = s.quizRepo.FindBySlugWithQuestions(slug, quiz.Type == model.QuizTypeQuiz)
	if err != nil {
		return nil, lookupError(err)
	}
	resp := toQuizResponse(quiz, p.SeesAnswerKey())
	return &resp, nil
}

func (s *quizService) Create(p *auth.Principal, req dto.QuizCreateRequest, files QuizFiles) (*dto.QuizResponse, error) {
	deadline, err := ParseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}
	quizType := model.QuizType(req.Type)
	if quizType != model.QuizTypeQuiz && quizType != model.QuizTypeEssay {
		return nil, apperror.Field("type", "type must be one of [quiz essay]")
	}
	if quizType == model.QuizTypeQuiz {
		for i, q := range req.Questions {
			if err := checkOptionCount(i, len(q.Options)); err != nil {
				return nil, err
			}
		}
	}

	uploads := newUploadBatch(s.files)
	quiz := model.Quiz{
		UserID:   p.UserID,
		Title:    strings.TrimSpace(req.Title),
		Slug:     uniqueSlug(req.Title),
		Type:     quizType,
		Deadline: deadline,
	}
	if files.Banner != nil {
		if quiz.Banner, err = uploads.save(storage.FolderQuizBanner, files.Banner, storage.ImageRule("banner")); err != nil {
			return nil, internalError(err, apperror.MsgFailed)
		}
	}
	for i, in := range req.Questions {
		question := model.Question{Question: in.Question}
		if fh := files.Questions[i]; fh != nil {
			field := fmt.Sprintf("questions[%d].file", i)
			if question.File, err = uploads.save(storage.FolderQuizFile, fh, storage.DocumentRule(field)); err != nil {
				uploads.rollback()
				return nil, internalError(err, apperror.MsgFailed)
			}
		}
		if quizType == model.QuizTypeQuiz {
			for _, o := range in.Options {
				question.Options = append(question.Options, model.Option{Title: o.Title, Correct: o.Correct.IsSet()})
			}
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.quizRepo.WithTx(tx).Create(&quiz)
	})
	if err != nil {
		uploads.rollback()
		log.Error().Err(err).Str("title", quiz.Title).Msg("CreateQuiz: transaction failed")
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}

	log.Info().Uint("quizID", quiz.ID).Str("slug", quiz.Slug).Int("questions", len(quiz.Questions)).Msg("CreateQuiz: quiz created")
	return s.reload(quiz.Slug)
}

// Update edits the quiz in place. Questions and options with id -1 are created, others must
// already belong to the quiz. Replaced files are removed once the transaction commits.
func (s *quizService) Update(slug string, req dto.QuizUpdateRequest, files QuizFiles) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.FindBySlugWithQuestions(slug, true)
	if err != nil {
		return nil, lookupError(err)
	}
	deadline, err := ParseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	existing := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		existing[quiz.Questions[i].ID] = &quiz.Questions[i]
	}
	for i, in := range req.Questions {
		if !in.IsNew() && existing[uint(in.ID)] == nil {
			return nil, apperror.Field(fmt.Sprintf("questions[%d].id", i), "is not a question of this quiz")
		}
		if quiz.Type == model.QuizTypeQuiz && in.IsNew() {
			if err := checkOptionCount(i, len(in.Options)); err != nil {
				return nil, err
			}
		}
	}

	uploads := newUploadBatch(s.files)
	var replaced []string

	quiz.Title = strings.TrimSpace(req.Title)
	quiz.Deadline = deadline
	if files.Banner != nil {
		banner, err := uploads.save(storage.FolderQuizBanner, files.Banner, storage.ImageRule("banner"))
		if err != nil {
			return nil, internalError(err, apperror.MsgFailed)
		}
		if quiz.Banner != nil {
			replaced = append(replaced, *quiz.Banner)
		}
		quiz.Banner = banner
	}
	newFiles := make(map[int]*string, len(files.Questions))
	for i, fh := range files.Questions {
		if fh == nil || i < 0 || i >= len(req.Questions) {
			continue
		}
		field := fmt.Sprintf("questions[%d].file", i)
		saved, err := uploads.save(storage.FolderQuizFile, fh, storage.DocumentRule(field))
		if err != nil {
			uploads.rollback()
			return nil, internalError(err, apperror.MsgFailed)
		}
		newFiles[i] = saved
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		quizzes := s.quizRepo.WithTx(tx)
		questions := s.questionRepo.WithTx(tx)

		if err := quizzes.Update(quiz); err != nil {
			return fmt.Errorf("update quiz: %w", err)
		}
		for i, in := range req.Questions {
			if in.IsNew() {
				question := model.Question{QuizID: quiz.ID, Question: in.Question, File: newFiles[i]}
				if quiz.Type == model.QuizTypeQuiz {
					for _, o := range in.Options {
						question.Options = append(question.Options, model.Option{Title: o.Title, Correct: o.Correct.IsSet()})
					}
				}
				if err := questions.Create(&question); err != nil {
					return fmt.Errorf("create question: %w", err)
				}
				continue
			}

			question := existing[uint(in.ID)]
			question.Question = in.Question
			if f := newFiles[i]; f != nil {
				if question.File != nil {
					replaced = append(replaced, *question.File)
				}
				question.File = f
			}
			if err := questions.Update(question); err != nil {
				return fmt.Errorf("update question %d: %w", question.ID, err)
			}
			if quiz.Type != model.QuizTypeQuiz {
				continue
			}
			if err := s.syncOptions(questions, question, i, in.Options); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uploads.rollback()
		if appErr, ok := apperror.As(err); ok {
			return nil, appErr
		}
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("UpdateQuiz: transaction failed")
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}

	for _, path := range replaced {
		if err := s.files.Delete(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("UpdateQuiz: failed to delete replaced file")
		}
	}
	return s.reload(quiz.Slug)
}

func (s *quizService) syncOptions(questions repository.QuestionRepository, question *model.Question, index int, inputs []dto.OptionInput) error {
	current := make(map[uint]*model.Option, len(question.Options))
	for i := range question.Options {
		current[question.Options[i].ID] = &question.Options[i]
	}
	count := len(question.Options)
	for j, o := range inputs {
		if o.IsNew() {
			count++
			if count > maxOptionsPerQuestion {
				return apperror.Field(fmt.Sprintf("questions[%d].options", index), fmt.Sprintf("may not have more than %d options", maxOptionsPerQuestion))
			}
			if err := questions.CreateOption(&model.Option{QuestionID: question.ID, Title: o.Title, Correct: o.Correct.IsSet()}); err != nil {
				return fmt.Errorf("create option: %w", err)
			}
			continue
		}
		option := current[uint(o.ID)]
		if option == nil {
			return apperror.Field(fmt.Sprintf("questions[%d].options[%d].id", index, j), "is not an option of this question")
		}
		option.Title = o.Title
		option.Correct = o.Correct.IsSet()
		if err := questions.UpdateOption(option); err != nil {
			return fmt.Errorf("update option %d: %w", option.ID, err)
		}
	}
	return nil
}

func (s *quizService) Delete(slug string) error {
	quiz, err := s.quizRepo.FindBySlugWithQuestions(slug, false)
	if err != nil {
		return lookupError(err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.quizRepo.WithTx(tx).Delete(quiz)
	})
	if err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("DeleteQuiz: transaction failed")
		return apperror.Unexpected(err, apperror.MsgFailed)
	}

	paths := make([]string, 0, len(quiz.Questions)+1)
	if quiz.Banner != nil {
		paths = append(paths, *quiz.Banner)
	}
	for _, q := range quiz.Questions {
		if q.File != nil {
			paths = append(paths, *q.File)
		}
	}
	for _, path := range paths {
		if err := s.files.Delete(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("DeleteQuiz: failed to delete file")
		}
	}
	log.Info().Uint("quizID", quiz.ID).Msg("DeleteQuiz: quiz deleted")
	return nil
}

func (s *quizService) DeleteQuestionFile(questionID uint) error {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return lookupError(err)
	}
	if question.File == nil {
		return apperror.BusinessRule(apperror.MsgFileMissing, "")
	}
	if err := s.files.Delete(*question.File); err != nil {
		return apperror.Unexpected(err, apperror.MsgFailed)
	}
	if err := s.questionRepo.ClearFile(question.ID); err != nil {
		return apperror.Unexpected(err, apperror.MsgFailed)
	}
	return nil
}

func (s *quizService) DeleteOption(optionID uint) error {
	option, err := s.questionRepo.FindOptionByID(optionID)
	if err != nil {
		return lookupError(err)
	}
	if err := s.questionRepo.DeleteOption(option); err != nil {
		return apperror.Unexpected(err, apperror.MsgFailed)
	}
	return nil
}

func (s *quizService) reload(slug string) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.FindBySlugWithQuestions(slug, true)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := toQuizResponse(quiz, true)
	return &resp, nil
}

// ParseDeadline accepts RFC 3339 and the common "Y-m-d H:i:s" forms; zone-less values are UTC.
func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperror.Field("deadline", "deadline is not a valid date")
}

func checkOptionCount(index, count int) error {
	if count < minOptionsPerQuestion || count > maxOptionsPerQuestion {
		return apperror.Field(fmt.Sprintf("questions[%d].options", index),
			fmt.Sprintf("must have between %d and %d options", minOptionsPerQuestion, maxOptionsPerQuestion))
	}
	return nil
}

// uploadBatch remembers saved files so a failed request can remove them again.
type uploadBatch struct {
	files storage.FileStore
	saved []string
}

func newUploadBatch(files storage.FileStore) *uploadBatch {
	return &uploadBatch{files: files}
}

func (b *uploadBatch) save(folder string, fh *multipart.FileHeader, rule storage.Rule) (*string, error) {
	path, err := b.files.Save(folder, fh, rule)
	if err != nil {
		return nil, errors.WithMessagef(err, "save %s", rule.Field)
	}
	b.saved = append(b.saved, path)
	return &path, nil
}

func (b *uploadBatch) rollback() {
	for _, path := range b.saved {
		if err := b.files.Delete(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("uploadBatch: failed to remove upload")
		}
	}
	b.saved = nil
}
