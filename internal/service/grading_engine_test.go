package service

import (
	"errors"
	"testing"

	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// optionTable resolves options from memory, keyed by question then option id.
type optionTable map[uint]map[uint]bool

func (o optionTable) FindOptionForQuestion(questionID, optionID uint) (*model.Option, error) {
	correct, ok := o[questionID][optionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Option{ID: optionID, QuestionID: questionID, Correct: correct}, nil
}

func TestGradingEngine(t *testing.T) {
	questions := []model.Question{{ID: 1}, {ID: 2}, {ID: 3}}
	options := optionTable{
		1: {11: false, 12: true},
		2: {21: true, 22: false},
		3: {31: false, 32: true},
	}

	tests := []struct {
		name     string
		groups   []dto.AnswerGroup
		correct  int
		score    float64
		answered []bool
	}{
		{
			name: "all correct",
			groups: []dto.AnswerGroup{
				{ID: 1, Options: []dto.AnswerOption{{ID: 11}, {ID: 12, Selected: flag(true)}}},
				{ID: 2, Options: []dto.AnswerOption{{ID: 21, Selected: flag(true)}}},
				{ID: 3, Options: []dto.AnswerOption{{ID: 32, Selected: flag(true)}}},
			},
			correct:  3,
			score:    30,
			answered: []bool{true, true, true},
		},
		{
			name: "first selected option wins",
			groups: []dto.AnswerGroup{
				{ID: 1, Options: []dto.AnswerOption{{ID: 11, Selected: flag(true)}, {ID: 12, Selected: flag(true)}}},
			},
			correct:  0,
			score:    0,
			answered: []bool{true, false, false},
		},
		{
			name: "explicit false is not a selection",
			groups: []dto.AnswerGroup{
				{ID: 1, Options: []dto.AnswerOption{{ID: 11, Selected: flag(false)}, {ID: 12, Selected: flag(true)}}},
				{ID: 2, Options: []dto.AnswerOption{{ID: 21, Selected: flag(false)}}},
			},
			correct:  1,
			score:    10,
			answered: []bool{true, false, false},
		},
		{
			name: "no selected key anywhere",
			groups: []dto.AnswerGroup{
				{ID: 1, Options: []dto.AnswerOption{{ID: 11}, {ID: 12}}},
				{ID: 2, Options: []dto.AnswerOption{{ID: 21}}},
			},
			correct:  0,
			score:    0,
			answered: []bool{false, false, false},
		},
		{
			name: "question id taken from options",
			groups: []dto.AnswerGroup{
				{Options: []dto.AnswerOption{{ID: 21, QuestionID: 2, Selected: flag(true)}}},
			},
			correct:  1,
			score:    10,
			answered: []bool{true, false, false},
		},
	}

	engine := NewGradingEngine()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grade, err := engine.Grade(questions, tc.groups, options)
			require.NoError(t, err)
			assert.Equal(t, tc.correct, grade.Correct)
			assert.Equal(t, tc.score, grade.Score)
			require.Len(t, grade.Rows, len(questions))
			for i, row := range grade.Rows {
				assert.Equal(t, tc.answered[i], row.OptionID != nil, "row %d", i)
			}
		})
	}
}

func TestGradingEngineLooseSelectedValues(t *testing.T) {
	questions := []model.Question{{ID: 1}, {ID: 2}}
	options := optionTable{
		1: {11: false, 12: true},
		2: {21: true, 22: false},
	}

	tests := []struct {
		name     string
		data     string
		score    float64
		answered []bool
	}{
		{"two is not selected", `[{"id":1,"options":[{"id":11,"selected":2},{"id":12,"selected":1}]}]`, 10, []bool{true, false}},
		{"one point zero is selected", `[{"id":1,"options":[{"id":12,"selected":1.0}]}]`, 10, []bool{true, false}},
		{"quoted two is not selected", `[{"id":2,"options":[{"id":21,"selected":"2"}]}]`, 0, []bool{false, false}},
		{"quoted one point zero is selected", `[{"id":2,"options":[{"id":22,"selected":"1.0"},{"id":21,"selected":1}]}]`, 0, []bool{true, false}},
	}

	engine := NewGradingEngine()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			groups, err := ParseAnswerGroups([]byte(tc.data))
			require.NoError(t, err)
			grade, err := engine.Grade(questions, groups, options)
			require.NoError(t, err)
			assert.Equal(t, tc.score, grade.Score)
			require.Len(t, grade.Rows, len(questions))
			for i, row := range grade.Rows {
				assert.Equal(t, tc.answered[i], row.OptionID != nil, "row %d", i)
			}
		})
	}
}

func TestGradingEngineResolverError(t *testing.T) {
	groups := []dto.AnswerGroup{{ID: 1, Options: []dto.AnswerOption{{ID: 99, Selected: flag(true)}}}}

	_, err := NewGradingEngine().Grade([]model.Question{{ID: 1}}, groups, optionTable{1: {11: true}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestParseAnswerGroups(t *testing.T) {
	groups, err := ParseAnswerGroups([]byte(`"[{\"id\":4,\"options\":[{\"id\":9,\"selected\":\"1\"}]}]"`))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, uint(4), groups[0].QuestionID())
	assert.True(t, groups[0].Options[0].Selected.IsSet())
}
