package service

import (
	"time"

	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/repository"
)

// statusListSize is how many recently seen users the status endpoint returns.
const statusListSize = 10

type UserService interface {
	All() ([]dto.UserResponse, error)
	Students() ([]dto.StudentResponse, error)
	Teachers() ([]dto.StudentResponse, error)
	Show(id uint) (*dto.UserResponse, error)
	Status() ([]dto.UserStatusResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo, now: time.Now}
}

func (s *userService) All() ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAllExceptAdmins()
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return resp, nil
}

func (s *userService) Students() ([]dto.StudentResponse, error) {
	return s.byRole(model.RoleStudent)
}

func (s *userService) Teachers() ([]dto.StudentResponse, error) {
	return s.byRole(model.RoleTeacher)
}

func (s *userService) byRole(role model.Role) ([]dto.StudentResponse, error) {
	users, err := s.userRepo.FindByRole(role)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := make([]dto.StudentResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toStudentResponse(&users[i]))
	}
	return resp, nil
}

func (s *userService) Show(id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Status lists the most recently seen users and whether each is online now.
func (s *userService) Status() ([]dto.UserStatusResponse, error) {
	users, err := s.userRepo.FindRecentlySeen(statusListSize)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	now := s.now()
	resp := make([]dto.UserStatusResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		resp = append(resp, dto.UserStatusResponse{
			ID:       u.ID,
			Name:     u.Name,
			Role:     u.Role,
			Avatar:   u.Avatar,
			LastSeen: u.LastSeen,
			Online:   u.Online(now),
		})
	}
	return resp, nil
}
