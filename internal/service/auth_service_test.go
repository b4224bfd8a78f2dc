package service

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/classquiz/config"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/auth"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) authService() AuthService {
	tokens := auth.NewTokenManager(&config.Config{Auth: config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour}})
	return NewAuthService(f.users, repository.NewTokenRepository(f.db), tokens, f.files)
}

func registerRequest(email, role string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:                 "Ani",
		Email:                email,
		Password:             "rahasia1",
		PasswordConfirmation: "rahasia1",
		Role:                 role,
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()

	resp, err := svc.Register(registerRequest(" Ani@Example.TEST ", "siswa"), pngFile(t, "avatar"))
	require.NoError(t, err)
	assert.Equal(t, "ani@example.test", resp.User.Email)
	assert.Equal(t, model.RoleStudent, resp.User.Role)
	assert.Equal(t, "Bearer", resp.TokenType)
	require.NotNil(t, resp.User.Avatar)

	p, err := svc.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, p.UserID)
	assert.True(t, p.Can(auth.CapSubmitAnswers))

	user, err := f.users.FindByID(p.UserID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastSeen, "authenticated requests mark the user as seen")
}

func TestRegisterConflicts(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()

	number := int64(7)
	first := registerRequest("ani@example.test", "guru")
	first.Number = &number
	_, err := svc.Register(first, nil)
	require.NoError(t, err)

	again := registerRequest("ANI@example.test", "admin")
	again.Number = &number
	_, err = svc.Register(again, nil)
	appErr := assertKind(t, err, apperror.KindValidation)
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "number")
	assert.Contains(t, appErr.Fields, "role")
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()

	resp, err := svc.Login(dto.LoginRequest{Email: f.teacher.Email, Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, f.teacher.ID, resp.User.ID)
	assert.NotNil(t, resp.User.LastSeen)

	for _, req := range []dto.LoginRequest{
		{Email: f.teacher.Email, Password: "wrong-password"},
		{Email: "nobody@example.test", Password: "secret123"},
	} {
		_, err := svc.Login(req)
		appErr := assertKind(t, err, apperror.KindUnauthorized)
		assert.Equal(t, apperror.MsgBadCredentials, appErr.Message)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	f := newFixture(t)
	svc := f.authService()

	first, err := svc.Login(dto.LoginRequest{Email: f.student.Email, Password: "secret123"})
	require.NoError(t, err)
	second, err := svc.Login(dto.LoginRequest{Email: f.student.Email, Password: "secret123"})
	require.NoError(t, err)

	p, err := svc.Authenticate(context.Background(), first.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(p))

	for _, token := range []string{first.Token, second.Token} {
		_, err := svc.Authenticate(context.Background(), token)
		assertKind(t, err, apperror.KindUnauthorized)
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	_, err := f.authService().Authenticate(context.Background(), "not-a-jwt")
	assertKind(t, err, apperror.KindUnauthorized)
}
