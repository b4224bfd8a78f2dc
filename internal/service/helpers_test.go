package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/auth"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/repository"
	"github.com/lshigami/classquiz/internal/storage"
	"github.com/lshigami/classquiz/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	files     storage.FileStore
	users     repository.UserRepository
	quizzes   repository.QuizRepository
	questions repository.QuestionRepository
	results   repository.ResultRepository

	student  *model.User
	teacher  *model.User
	studentP *auth.Principal
	teacherP *auth.Principal
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithDB(t, testutil.OpenDB(t))
}

func newFixtureWithDB(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	files, err := storage.NewLocalFileStore(t.TempDir(), "/storage")
	require.NoError(t, err)

	f := &fixture{
		db:        db,
		files:     files,
		users:     repository.NewUserRepository(db),
		quizzes:   repository.NewQuizRepository(db),
		questions: repository.NewQuestionRepository(db),
		results:   repository.NewResultRepository(db),
	}
	f.student = testutil.CreateUser(t, db, "Budi", "budi@example.test", model.RoleStudent)
	f.teacher = testutil.CreateUser(t, db, "Bu Sari", "sari@example.test", model.RoleTeacher)
	f.studentP = &auth.Principal{UserID: f.student.ID, Name: f.student.Name, Role: model.RoleStudent}
	f.teacherP = &auth.Principal{UserID: f.teacher.ID, Name: f.teacher.Name, Role: model.RoleTeacher}
	return f
}

// mcQuestion builds a multiple choice question whose option at index correct is the right one.
func mcQuestion(text string, correct int, titles ...string) model.Question {
	q := model.Question{Question: text}
	for i, title := range titles {
		q.Options = append(q.Options, model.Option{Title: title, Correct: i == correct})
	}
	return q
}

func (f *fixture) createQuiz(t *testing.T, quizType model.QuizType, deadline time.Time, questions ...model.Question) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		UserID:    f.teacher.ID,
		Title:     "Quiz " + string(quizType),
		Slug:      uniqueSlug("Quiz " + string(quizType)),
		Type:      quizType,
		Deadline:  deadline,
		Questions: questions,
	}
	require.NoError(t, f.quizzes.Create(quiz))
	return quiz
}

func (f *fixture) submissionService(reviewer EssayReviewer, now time.Time) *submissionService {
	if reviewer == nil {
		reviewer = disabledReviewer{}
	}
	svc := NewSubmissionService(f.quizzes, f.questions, f.results, NewGradingEngine(), reviewer, f.files, f.db).(*submissionService)
	svc.now = func() time.Time { return now }
	return svc
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

// answers encodes groups as the "data" payload, selecting options[pick[i]] for question i;
// a negative pick leaves the question unanswered.
func answers(t *testing.T, quiz *model.Quiz, pick ...int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	buf.WriteByte('[')
	for i, q := range quiz.Questions {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, `{"id":%d,"options":[`, q.ID)
		for j, o := range q.Options {
			if j > 0 {
				buf.WriteByte(',')
			}
			selected := 0
			if i < len(pick) && pick[i] == j {
				selected = 1
			}
			fmt.Fprintf(buf, `{"id":%d,"question_id":%d,"selected":%d}`, o.ID, q.ID, selected)
		}
		buf.WriteString("]}")
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field][0]
}

func pngFile(t *testing.T, field string) *multipart.FileHeader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{G: 255, A: 255})
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return fileHeader(t, field, "picture.png", buf.Bytes())
}

func assertKind(t *testing.T, err error, kind apperror.Kind) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T: %v", err, err)
	assert.Equal(t, kind, appErr.Kind, appErr.Error())
	return appErr
}

func flag(v bool) *dto.Flag {
	f := dto.Flag(v)
	return &f
}

// stubReviewer records the answers it was asked to review.
type stubReviewer struct {
	mu       sync.Mutex
	feedback string
	seen     []string
}

func (r *stubReviewer) Enabled() bool { return true }

func (r *stubReviewer) Review(_ context.Context, _ string, answer string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, answer)
	return r.feedback, nil
}
