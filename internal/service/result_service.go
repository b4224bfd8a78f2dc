package service

import (
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/auth"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/repository"
	"github.com/rs/zerolog/log"
)

// ResultService serves the result views of students and teachers.
type ResultService interface {
	Mine(p *auth.Principal) ([]dto.ResultResponse, error)
	NotSubmitted(slug string) ([]dto.StudentResponse, error)
	QuizResults(slug string) ([]dto.StudentResultResponse, error)
	EssayResults(slug string) ([]dto.StudentResultResponse, error)
	UpdateScore(resultID uint, req dto.ScoreRequest) (*dto.ResultResponse, error)
}

type resultService struct {
	quizRepo   repository.QuizRepository
	resultRepo repository.ResultRepository
}

func NewResultService(quizRepo repository.QuizRepository, resultRepo repository.ResultRepository) ResultService {
	return &resultService{quizRepo: quizRepo, resultRepo: resultRepo}
}

func (s *resultService) Mine(p *auth.Principal) ([]dto.ResultResponse, error) {
	results, err := s.resultRepo.FindByUserWithDetails(p.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", p.UserID).Msg("MyResults: repository error")
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := make([]dto.ResultResponse, 0, len(results))
	for i := range results {
		resp = append(resp, toResultResponse(&results[i], false))
	}
	return resp, nil
}

func (s *resultService) NotSubmitted(slug string) ([]dto.StudentResponse, error) {
	quiz, err := s.quizRepo.FindBySlug(slug)
	if err != nil {
		return nil, lookupError(err)
	}
	users, err := s.resultRepo.FindStudentsWithoutResult(quiz.ID)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := make([]dto.StudentResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toStudentResponse(&users[i]))
	}
	return resp, nil
}

func (s *resultService) QuizResults(slug string) ([]dto.StudentResultResponse, error) {
	return s.studentResults(slug, func(r *model.Result) { r.ResultEssays = nil })
}

func (s *resultService) EssayResults(slug string) ([]dto.StudentResultResponse, error) {
	return s.studentResults(slug, func(r *model.Result) { r.ResultQuizzes = nil })
}

// studentResults lists students who submitted to the quiz with their result; trim drops
// the answer rows that do not belong to the requested view.
func (s *resultService) studentResults(slug string, trim func(*model.Result)) ([]dto.StudentResultResponse, error) {
	quiz, err := s.quizRepo.FindBySlug(slug)
	if err != nil {
		return nil, lookupError(err)
	}
	users, err := s.resultRepo.FindStudentsWithResult(quiz.ID)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	results, err := s.resultRepo.FindByQuizWithDetails(quiz.ID, ids)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	byUser := make(map[uint]*model.Result, len(results))
	for i := range results {
		trim(&results[i])
		byUser[results[i].UserID] = &results[i]
	}

	resp := make([]dto.StudentResultResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		row := dto.StudentResultResponse{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, Number: u.Number}
		if r, ok := byUser[u.ID]; ok {
			rr := toResultResponse(r, true)
			row.Result = &rr
		}
		resp = append(resp, row)
	}
	return resp, nil
}

func (s *resultService) UpdateScore(resultID uint, req dto.ScoreRequest) (*dto.ResultResponse, error) {
	if req.Score == nil {
		return nil, apperror.Field("score", "score is required")
	}
	result, err := s.resultRepo.FindByID(resultID)
	if err != nil {
		return nil, lookupError(err)
	}
	if err := s.resultRepo.UpdateScore(result.ID, req.Score); err != nil {
		log.Error().Err(err).Uint("resultID", resultID).Msg("UpdateScore: repository error")
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	result.Score = req.Score
	log.Info().Uint("resultID", resultID).Float64("score", *req.Score).Msg("UpdateScore: score set")
	resp := toResultResponse(result, true)
	return &resp, nil
}
