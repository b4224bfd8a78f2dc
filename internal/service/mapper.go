package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/rs/zerolog/log"
)

func toUserResponse(user *model.User) dto.UserResponse {
	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("toUserResponse: copy failed")
	}
	return resp
}

func toUserSummary(user *model.User) *dto.UserSummary {
	if user == nil || user.ID == 0 {
		return nil
	}
	return &dto.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role, Avatar: user.Avatar}
}

func toStudentResponse(user *model.User) dto.StudentResponse {
	return dto.StudentResponse{ID: user.ID, Name: user.Name, Email: user.Email, Avatar: user.Avatar, Number: user.Number}
}

func toOptionResponse(option *model.Option, showKey bool) dto.OptionResponse {
	resp := dto.OptionResponse{ID: option.ID, QuestionID: option.QuestionID, Title: option.Title}
	if showKey {
		correct := option.Correct
		resp.Correct = &correct
	}
	return resp
}

func toQuestionResponse(question *model.Question, showKey bool) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:       question.ID,
		QuizID:   question.QuizID,
		Question: question.Question,
		File:     question.File,
	}
	for i := range question.Options {
		resp.Options = append(resp.Options, toOptionResponse(&question.Options[i], showKey))
	}
	return resp
}

func toQuizResponse(quiz *model.Quiz, showKey bool) dto.QuizResponse {
	resp := dto.QuizResponse{
		ID:        quiz.ID,
		UserID:    quiz.UserID,
		Title:     quiz.Title,
		Slug:      quiz.Slug,
		Type:      quiz.Type,
		Deadline:  quiz.Deadline,
		Banner:    quiz.Banner,
		CreatedAt: quiz.CreatedAt,
		UpdatedAt: quiz.UpdatedAt,
		User:      toUserSummary(&quiz.User),
	}
	for i := range quiz.Questions {
		resp.Questions = append(resp.Questions, toQuestionResponse(&quiz.Questions[i], showKey))
	}
	return resp
}

func toResultResponse(result *model.Result, showKey bool) dto.ResultResponse {
	resp := dto.ResultResponse{
		ID:        result.ID,
		UserID:    result.UserID,
		QuizID:    result.QuizID,
		Score:     result.Score,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}
	if result.Quiz.ID != 0 {
		quiz := toQuizResponse(&result.Quiz, showKey)
		resp.Quiz = &quiz
	}
	for _, rq := range result.ResultQuizzes {
		row := dto.ResultQuizResponse{
			ID:         rq.ID,
			ResultID:   rq.ResultID,
			QuestionID: rq.QuestionID,
			OptionID:   rq.OptionID,
			Correct:    rq.Correct,
		}
		if rq.Question.ID != 0 {
			q := toQuestionResponse(&rq.Question, showKey)
			row.Question = &q
		}
		if rq.Option != nil && rq.Option.ID != 0 {
			o := toOptionResponse(rq.Option, showKey)
			row.Option = &o
		}
		resp.ResultQuizzes = append(resp.ResultQuizzes, row)
	}
	for _, re := range result.ResultEssays {
		row := dto.ResultEssayResponse{
			ID:         re.ID,
			ResultID:   re.ResultID,
			QuestionID: re.QuestionID,
			Comment:    re.Comment,
			File:       re.File,
			AIFeedback: re.AIFeedback,
		}
		if re.Question.ID != 0 {
			q := toQuestionResponse(&re.Question, showKey)
			row.Question = &q
		}
		resp.ResultEssays = append(resp.ResultEssays, row)
	}
	return resp
}

func toFeedResponse(feed *model.Feed) dto.FeedResponse {
	resp := dto.FeedResponse{
		ID:        feed.ID,
		UserID:    feed.UserID,
		Message:   feed.Message,
		Image:     feed.Image,
		CreatedAt: feed.CreatedAt,
		User:      toUserSummary(&feed.User),
		Replies:   []dto.FeedReplyResponse{},
	}
	for i := range feed.Replies {
		resp.Replies = append(resp.Replies, toFeedReplyResponse(&feed.Replies[i]))
	}
	return resp
}

func toFeedReplyResponse(reply *model.FeedReply) dto.FeedReplyResponse {
	return dto.FeedReplyResponse{
		ID:        reply.ID,
		FeedID:    reply.FeedID,
		UserID:    reply.UserID,
		Message:   reply.Message,
		CreatedAt: reply.CreatedAt,
		User:      toUserSummary(&reply.User),
	}
}

func toMateriResponse(materi *model.Materi) dto.MateriResponse {
	var resp dto.MateriResponse
	if err := copier.Copy(&resp, materi); err != nil {
		log.Error().Err(err).Uint("materiID", materi.ID).Msg("toMateriResponse: copy failed")
	}
	resp.User = toUserSummary(&materi.User)
	return resp
}
