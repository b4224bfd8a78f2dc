package service

import (
	"mime/multipart"
	"testing"
	"time"

	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/auth"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) quizService() QuizService {
	return NewQuizService(f.quizzes, f.questions, f.results, f.files, f.db)
}

func mcInput(text string, options ...dto.OptionInput) dto.QuestionInput {
	return dto.QuestionInput{ID: dto.NewID, Question: text, Options: options}
}

func opt(title string, correct bool) dto.OptionInput {
	return dto.OptionInput{ID: dto.NewID, Title: title, Correct: flag(correct)}
}

func TestCreateQuiz(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	resp, err := svc.Create(f.teacherP, dto.QuizCreateRequest{
		Type:     "quiz",
		Title:    "Ulangan Harian",
		Deadline: "2030-01-31 17:00:00",
		Questions: []dto.QuestionInput{
			mcInput("2 + 3", opt("5", true), opt("6", false)),
			mcInput("3 x 3", opt("6", false), opt("9", true), opt("12", false)),
		},
	}, QuizFiles{Banner: pngFile(t, "banner")})
	require.NoError(t, err)

	assert.Contains(t, resp.Slug, "ulangan-harian-")
	assert.Equal(t, time.Date(2030, 1, 31, 17, 0, 0, 0, time.UTC), resp.Deadline.UTC())
	require.NotNil(t, resp.Banner)
	assert.Contains(t, *resp.Banner, storage.FolderQuizBanner)
	require.Len(t, resp.Questions, 2)
	require.Len(t, resp.Questions[1].Options, 3)
	require.NotNil(t, resp.Questions[1].Options[1].Correct)
	assert.True(t, *resp.Questions[1].Options[1].Correct)
	assert.EqualValues(t, 5, f.count(t, &model.Option{}))
}

func TestCreateQuizValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	six := make([]dto.OptionInput, 6)
	for i := range six {
		six[i] = opt("x", i == 0)
	}

	tests := []struct {
		name  string
		req   dto.QuizCreateRequest
		field string
	}{
		{"bad deadline", dto.QuizCreateRequest{Type: "quiz", Title: "t", Deadline: "tomorrow",
			Questions: []dto.QuestionInput{mcInput("q", opt("a", true))}}, "deadline"},
		{"no options", dto.QuizCreateRequest{Type: "quiz", Title: "t", Deadline: "2030-01-01",
			Questions: []dto.QuestionInput{mcInput("q")}}, "questions[0].options"},
		{"too many options", dto.QuizCreateRequest{Type: "quiz", Title: "t", Deadline: "2030-01-01",
			Questions: []dto.QuestionInput{mcInput("q", opt("a", true)), mcInput("r", six...)}}, "questions[1].options"},
		{"unknown type", dto.QuizCreateRequest{Type: "poll", Title: "t", Deadline: "2030-01-01",
			Questions: []dto.QuestionInput{mcInput("q")}}, "type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(f.teacherP, tc.req, QuizFiles{})
			appErr := assertKind(t, err, apperror.KindValidation)
			assert.Contains(t, appErr.Fields, tc.field)
		})
	}
	assert.EqualValues(t, 0, f.count(t, &model.Quiz{}))
}

func TestCreateEssayQuizDropsOptions(t *testing.T) {
	f := newFixture(t)
	svc := f.quizService()

	resp, err := svc.Create(f.teacherP, dto.QuizCreateRequest{
		Type:      "essay",
		Title:     "Esai",
		Deadline:  "2030-01-01T10:00:00+07:00",
		Questions: []dto.QuestionInput{mcInput("Tell a story", opt("ignored", true))},
	}, QuizFiles{Questions: map[int]*multipart.FileHeader{0: fileHeader(t, "questions[0][file]", "soal.pdf", []byte("%PDF"))}})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 1, 3, 0, 0, 0, time.UTC), resp.Deadline.UTC())
	require.Len(t, resp.Questions, 1)
	assert.Empty(t, resp.Questions[0].Options)
	require.NotNil(t, resp.Questions[0].File)
	assert.EqualValues(t, 0, f.count(t, &model.Option{}))
}

func TestShowQuizHidesAnswerKeyFromStudents(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t, model.QuizTypeQuiz, openDeadline, mcQuestion("2 + 2", 1, "3", "4"))
	svc := f.quizService()

	student, err := svc.Show(f.studentP, quiz.Slug)
	require.NoError(t, err)
	for _, o := range student.Questions[0].Options {
		assert.Nil(t, o.Correct)
	}

	teacher, err := svc.Show(f.teacherP, quiz.Slug)
	require.NoError(t, err)
	require.NotNil(t, teacher.Questions[0].Options[1].Correct)
	assert.True(t, *teacher.Questions[0].Options[1].Correct)

	list, err := svc.List(f.studentP, "quiz")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Questions[0].Options[0].Correct)

	essays, err := svc.List(f.studentP, "")
	require.NoError(t, err)
	assert.Empty(t, essays)
}

func TestShowQuizAfterSubmission(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t, model.QuizTypeQuiz, openDeadline, mcQuestion("2 + 2", 1, "3", "4"))
	_, err := f.submissionService(nil, testNow).SubmitQuiz(f.studentP, quiz.Slug, answers(t, quiz, 1))
	require.NoError(t, err)
	svc := f.quizService()

	_, err = svc.Show(f.studentP, quiz.Slug)
	appErr := assertKind(t, err, apperror.KindBusinessRule)
	assert.Equal(t, apperror.MsgAlreadySubmitted, appErr.Detail)

	_, err = svc.Show(f.teacherP, quiz.Slug)
	require.NoError(t, err)

	admin := &auth.Principal{UserID: 999, Role: model.RoleAdmin}
	_, err = svc.Show(admin, quiz.Slug)
	require.NoError(t, err)

	_, err = svc.Show(f.studentP, "nope")
	assertKind(t, err, apperror.KindNotFound)
}

func TestUpdateQuiz(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t, model.QuizTypeQuiz, openDeadline, mcQuestion("2 + 2", 1, "3", "4"))
	q := quiz.Questions[0]
	svc := f.quizService()

	resp, err := svc.Update(quiz.Slug, dto.QuizUpdateRequest{
		Title:    "Renamed",
		Deadline: "2031-05-05 08:00",
		Questions: []dto.QuestionInput{
			{ID: int64(q.ID), Question: "2 + 2 = ?", Options: []dto.OptionInput{
				{ID: int64(q.Options[0].ID), Title: "three", Correct: flag(false)},
				opt("four point zero", false),
			}},
			mcInput("1 + 1", opt("2", true)),
		},
	}, QuizFiles{})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", resp.Title)
	assert.Equal(t, quiz.Slug, resp.Slug, "slug is stable across edits")
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, "2 + 2 = ?", resp.Questions[0].Question)
	require.Len(t, resp.Questions[0].Options, 3)
	assert.Equal(t, "three", resp.Questions[0].Options[0].Title)
	assert.Equal(t, "1 + 1", resp.Questions[1].Question)
}

func TestUpdateQuizRejectsForeignIDs(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t, model.QuizTypeQuiz, openDeadline, mcQuestion("2 + 2", 1, "3", "4"))
	other := f.createQuiz(t, model.QuizTypeQuiz, openDeadline, mcQuestion("other", 0, "x"))
	svc := f.quizService()

	_, err := svc.Update(quiz.Slug, dto.QuizUpdateRequest{
		Title: "t", Deadline: "2031-01-01",
		Questions: []dto.QuestionInput{{ID: int64(other.Questions[0].ID), Question: "hijack"}},
	}, QuizFiles{})
	appErr := assertKind(t, err, apperror.KindValidation)
	assert.Contains(t, appErr.Fields, "questions[0].id")

	_, err = svc.Update(quiz.Slug, dto.QuizUpdateRequest{
		Title: "Changed", Deadline: "2031-01-01",
		Questions: []dto.QuestionInput{{ID: int64(quiz.Questions[0].ID), Question: "q", Options: []dto.OptionInput{
			{ID: int64(other.Questions[0].Options[0].ID), Title: "stolen", Correct: flag(true)},
		}}},
	}, QuizFiles{})
	appErr = assertKind(t, err, apperror.KindValidation)
	assert.Contains(t, appErr.Fields, "questions[0].options[0].id")

	reloaded, err := f.quizzes.FindBySlug(quiz.Slug)
	require.NoError(t, err)
	assert.Equal(t, quiz.Title, reloaded.Title, "failed update rolls back")
}

func TestDeleteOptionKeepsHistory(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t, model.QuizTypeQuiz, openDeadline, mcQuestion("2 + 2", 1, "3", "4"))
	_, err := f.submissionService(nil, testNow).SubmitQuiz(f.studentP, quiz.Slug, answers(t, quiz, 1))
	require.NoError(t, err)
	svc := f.quizService()

	require.NoError(t, svc.DeleteOption(quiz.Questions[0].Options[1].ID))
	assertKind(t, svc.DeleteOption(quiz.Questions[0].Options[1].ID), apperror.KindNotFound)

	shown, err := svc.Show(f.teacherP, quiz.Slug)
	require.NoError(t, err)
	assert.Len(t, shown.Questions[0].Options, 1)

	mine, err := NewResultService(f.quizzes, f.results).Mine(f.studentP)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].ResultQuizzes[0].Option)
	assert.Equal(t, "4", mine[0].ResultQuizzes[0].Option.Title)
}

func TestDeleteQuizAndQuestionFile(t *testing.T) {
	f := newFixture(t)
	quiz := f.createQuiz(t, model.QuizTypeEssay, openDeadline, model.Question{Question: "no file"})
	svc := f.quizService()

	err := svc.DeleteQuestionFile(quiz.Questions[0].ID)
	appErr := assertKind(t, err, apperror.KindBusinessRule)
	assert.Equal(t, apperror.MsgFileMissing, appErr.Message)

	require.NoError(t, svc.Delete(quiz.Slug))
	_, err = svc.Show(f.teacherP, quiz.Slug)
	assertKind(t, err, apperror.KindNotFound)
	assert.EqualValues(t, 0, f.count(t, &model.Question{}))
}

func TestParseDeadline(t *testing.T) {
	for _, in := range []string{"2030-02-03 04:05:06", "2030-02-03T04:05:06Z", "2030-02-03T11:05:06+07:00"} {
		got, err := ParseDeadline(in)
		require.NoError(t, err, in)
		assert.Equal(t, time.Date(2030, 2, 3, 4, 5, 6, 0, time.UTC), got, in)
	}
	_, err := ParseDeadline("03/02/2030")
	assertKind(t, err, apperror.KindValidation)
}
