package service

import (
	"sync"
	"testing"

	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentSubmitPostgres(t *testing.T) {
	f := newFixtureWithDB(t, testutil.OpenPostgres(t))
	quiz := threeQuestionQuiz(t, f, openDeadline)
	svc := f.submissionService(nil, testNow)

	payload := answers(t, quiz, 1, 0, 2)
	const attempts = 5
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitQuiz(f.studentP, quiz.Slug, payload)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		appErr, ok := apperror.As(err)
		require.True(t, ok, err)
		assert.Equal(t, apperror.MsgAlreadySubmitted, appErr.Detail)
	}
	assert.Equal(t, 1, succeeded)
	assert.EqualValues(t, 1, f.count(t, &model.Result{}))
	assert.EqualValues(t, 3, f.count(t, &model.ResultQuiz{}))
}
