package service

import (
	"context"
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

// lastSeenResolution limits how often an authenticated request rewrites last_seen.
const lastSeenResolution = 30 * time.Second

type AuthService interface {
	auth.Authenticator
	Register(req dto.RegisterRequest, avatar *multipart.FileHeader) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(p *auth.Principal) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	tokens    *auth.TokenManager
	files     storage.FileStore
	now       func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	tokens *auth.TokenManager,
	files storage.FileStore,
) AuthService {
	return &authService{userRepo: userRepo, tokenRepo: tokenRepo, tokens: tokens, files: files, now: time.Now}
}

func (s *authService) Register(req dto.RegisterRequest, avatar *multipart.FileHeader) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fields := map[string]string{}
	if role := model.Role(req.Role); role != model.RoleStudent && role != model.RoleTeacher {
		fields["role"] = "role must be one of [siswa guru]"
	}
	if taken, err := s.userRepo.EmailTaken(email); err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	} else if taken {
		fields["email"] = "email has already been taken"
	}
	if req.Number != nil {
		if taken, err := s.userRepo.NumberTaken(*req.Number); err != nil {
			return nil, apperror.Unexpected(err, apperror.MsgFailed)
		} else if taken {
			fields["number"] = "number has already been taken"
		}
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	user := model.User{
		Name:   strings.TrimSpace(req.Name),
		Email:  email,
		Role:   model.Role(req.Role),
		Number: req.Number,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}

	if avatar != nil {
		path, err := s.files.Save(storage.FolderAvatar, avatar, storage.ImageRule("avatar"))
		if err != nil {
			return nil, internalError(err, apperror.MsgFailed)
		}
		user.Avatar = &path
	}

	if err := s.userRepo.Create(&user); err != nil {
		if user.Avatar != nil {
			_ = s.files.Delete(*user.Avatar)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Field("email", "email has already been taken")
		}
		log.Error().Err(err).Str("email", email).Msg("Register: failed to create user")
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}

	log.Info().Uint("userID", user.ID).Str("role", user.Role.String()).Msg("Register: user created")
	return s.issue(&user)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized(apperror.MsgBadCredentials)
		}
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	if !user.CheckPassword(req.Password) {
		return nil, apperror.Unauthorized(apperror.MsgBadCredentials)
	}

	now := s.now().UTC()
	if err := s.userRepo.TouchLastSeen(user.ID, now); err != nil {
		log.Warn().Err(err).Uint("userID", user.ID).Msg("Login: failed to update last_seen")
	} else {
		user.LastSeen = &now
	}
	return s.issue(user)
}

func (s *authService) Logout(p *auth.Principal) error {
	if err := s.tokenRepo.DeleteByUser(p.UserID); err != nil {
		return apperror.Unexpected(err, apperror.MsgFailed)
	}
	log.Info().Uint("userID", p.UserID).Msg("Logout: tokens revoked")
	return nil
}

// Authenticate checks the token signature, that it has not been revoked and that the user exists.
func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperror.Unauthorized(apperror.MsgUnauthorized)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperror.Unauthorized(apperror.MsgUnauthorized)
	}

	now := s.now().UTC()
	active, err := s.tokenRepo.Active(claims.ID, userID, now)
	if err != nil {
		return nil, errors.Wrap(err, "check token")
	}
	if !active {
		return nil, apperror.Unauthorized(apperror.MsgUnauthorized)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized(apperror.MsgUnauthorized)
		}
		return nil, errors.Wrap(err, "load user")
	}

	if user.LastSeen == nil || now.Sub(*user.LastSeen) >= lastSeenResolution {
		if err := s.userRepo.TouchLastSeen(user.ID, now); err != nil {
			log.Warn().Err(err).Uint("userID", user.ID).Msg("Authenticate: failed to update last_seen")
		}
	}

	return &auth.Principal{UserID: user.ID, Name: user.Name, Role: user.Role, TokenID: claims.ID}, nil
}

func (s *authService) issue(user *model.User) (*dto.AuthResponse, error) {
	issued, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	row := model.AccessToken{ID: issued.ID, UserID: user.ID, ExpiresAt: issued.ExpiresAt}
	if err := s.tokenRepo.Create(&row); err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	return &dto.AuthResponse{
		User:      toUserResponse(user),
		Token:     issued.Token,
		TokenType: "Bearer",
		ExpiresAt: issued.ExpiresAt,
	}, nil
}
