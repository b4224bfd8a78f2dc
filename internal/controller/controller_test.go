package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, method, target, body, contentType string, handler gin.HandlerFunc) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, "/things/:id", handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestFailEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		data    interface{}
	}{
		{"plain error is hidden", errors.New("pq: connection refused"), http.StatusInternalServerError, apperror.MsgFailed, nil},
		{"unexpected keeps its message", apperror.Unexpected(errors.New("boom"), apperror.MsgAnswersNotSaved), http.StatusInternalServerError, apperror.MsgAnswersNotSaved, nil},
		{"business rule detail", apperror.AlreadySubmitted(), http.StatusBadRequest, apperror.MsgSubmitFailed, apperror.MsgAlreadySubmitted},
		{"validation fields", apperror.Field("title", "title is required"), http.StatusBadRequest, apperror.MsgValidation, map[string]interface{}{"title": "title is required"}},
		{"not found", apperror.NotFound(apperror.MsgNotFound), http.StatusNotFound, apperror.MsgNotFound, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, out := serve(t, http.MethodGet, "/things/1", "", "", func(ctx *gin.Context) { Fail(ctx, tc.err) })
			assert.Equal(t, tc.status, code)
			assert.Equal(t, false, out["status"])
			assert.Equal(t, tc.message, out["message"])
			assert.Equal(t, tc.data, out["data"])
		})
	}
}

func TestParseID(t *testing.T) {
	handler := func(ctx *gin.Context) {
		id, ok := ParseID(ctx, "id")
		if !ok {
			return
		}
		OK(ctx, "", id)
	}

	code, out := serve(t, http.MethodGet, "/things/42", "", "", handler)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, apperror.MsgSuccess, out["message"])
	assert.Equal(t, float64(42), out["data"])

	code, _ = serve(t, http.MethodGet, "/things/-1", "", "", handler)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAnswerData(t *testing.T) {
	handler := func(ctx *gin.Context) {
		raw, ok := AnswerData(ctx)
		if !ok {
			return
		}
		OK(ctx, "", string(raw))
	}

	_, out := serve(t, http.MethodPost, "/things/1", `{"data":[{"id":1}]}`, "application/json", handler)
	assert.Equal(t, `[{"id":1}]`, out["data"])

	_, out = serve(t, http.MethodPost, "/things/1", `data=%5B%5D`, "application/x-www-form-urlencoded", handler)
	assert.Equal(t, `[]`, out["data"])

	code, _ := serve(t, http.MethodPost, "/things/1", `{"data":`, "application/json", handler)
	assert.Equal(t, http.StatusBadRequest, code)
}
