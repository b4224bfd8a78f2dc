package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/config"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenManager() *TokenManager {
	return NewTokenManager(&config.Config{Auth: config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour}})
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role  model.Role
		cap   Capability
		allow bool
	}{
		{model.RoleStudent, CapSubmitAnswers, true},
		{model.RoleStudent, CapViewOwnResults, true},
		{model.RoleStudent, CapManageQuizzes, false},
		{model.RoleStudent, CapGradeResults, false},
		{model.RoleTeacher, CapManageQuizzes, true},
		{model.RoleTeacher, CapGradeResults, true},
		{model.RoleTeacher, CapManageMateri, true},
		{model.RoleTeacher, CapSubmitAnswers, false},
		{model.RoleAdmin, CapManageMateri, true},
		{model.RoleAdmin, CapSubmitAnswers, false},
		{model.Role("hacker"), CapSubmitAnswers, false},
	}
	for _, tc := range tests {
		t.Run(tc.role.String()+"/"+tc.cap.String(), func(t *testing.T) {
			p := &Principal{UserID: 1, Role: tc.role}
			assert.Equal(t, tc.allow, p.Can(tc.cap))
		})
	}

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.Can(CapSubmitAnswers))
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTokenManager()
	issued, err := m.Issue(&model.User{ID: 42, Role: model.RoleTeacher})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := m.Parse(issued.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, model.RoleTeacher, claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokenRejected(t *testing.T) {
	m := newTokenManager()
	issued, err := m.Issue(&model.User{ID: 1, Role: model.RoleStudent})
	require.NoError(t, err)

	other := NewTokenManager(&config.Config{Auth: config.Auth{JWTSecret: "other", TokenTTL: time.Hour}})
	_, err = other.Parse(issued.Token)
	assert.Error(t, err, "wrong secret")

	expired := newTokenManager()
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(&model.User{ID: 1, Role: model.RoleStudent})
	require.NoError(t, err)
	_, err = m.Parse(old.Token)
	assert.Error(t, err, "expired")

	_, err = m.Parse("not-a-token")
	assert.Error(t, err)
}

type fakeAuthenticator map[string]*Principal

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*Principal, error) {
	if p, ok := f[token]; ok {
		return p, nil
	}
	return nil, apperror.Unauthorized(apperror.MsgUnauthorized)
}

type failingAuthenticator struct{}

func (failingAuthenticator) Authenticate(context.Context, string) (*Principal, error) {
	return nil, errors.New("db down")
}

func TestMiddlewareAndRequire(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := fakeAuthenticator{
		"student": {UserID: 1, Role: model.RoleStudent},
		"teacher": {UserID: 2, Role: model.RoleTeacher},
	}

	r := gin.New()
	api := r.Group("/api", Middleware(tokens))
	api.GET("/me", func(c *gin.Context) {
		p, _ := FromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": p.UserID})
	})
	api.POST("/guru/quizzes", Require(CapManageQuizzes), func(c *gin.Context) { c.Status(http.StatusCreated) })

	tests := []struct {
		name   string
		method string
		path   string
		header string
		want   int
	}{
		{"no header", http.MethodGet, "/api/me", "", http.StatusUnauthorized},
		{"wrong scheme", http.MethodGet, "/api/me", "Basic abc", http.StatusUnauthorized},
		{"unknown token", http.MethodGet, "/api/me", "Bearer nope", http.StatusUnauthorized},
		{"student ok", http.MethodGet, "/api/me", "Bearer student", http.StatusOK},
		{"student forbidden", http.MethodPost, "/api/guru/quizzes", "Bearer student", http.StatusForbidden},
		{"teacher allowed", http.MethodPost, "/api/guru/quizzes", "Bearer teacher", http.StatusCreated},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
			if tc.want >= 400 {
				assert.Contains(t, rec.Body.String(), `"status":false`)
			}
		})
	}
}

func TestMiddlewareBackendFailureIsServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/x", Middleware(failingAuthenticator{}), func(c *gin.Context) { reached = true })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"`+apperror.MsgFailed+`"`)
	assert.NotContains(t, rec.Body.String(), "db down")
	assert.False(t, reached)
}
