package service

import (
	"mime/multipart"

	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/auth"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
	"github.com/lshigami/classquiz/internal/repository"
	"github.com/lshigami/classquiz/internal/storage"
	"github.com/rs/zerolog/log"
)

type MateriService interface {
	List() ([]dto.MateriResponse, error)
	Show(id uint) (*dto.MateriResponse, error)
	Create(p *auth.Principal, req dto.MateriRequest, image *multipart.FileHeader) (*dto.MateriResponse, error)
	Update(id uint, req dto.MateriRequest, image *multipart.FileHeader) (*dto.MateriResponse, error)
	Delete(id uint) error
	DeleteImage(id uint) error
}

type materiService struct {
	materiRepo repository.MateriRepository
	files      storage.FileStore
}

func NewMateriService(materiRepo repository.MateriRepository, files storage.FileStore) MateriService {
	return &materiService{materiRepo: materiRepo, files: files}
}

func (s *materiService) List() ([]dto.MateriResponse, error) {
	items, err := s.materiRepo.FindAll()
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := make([]dto.MateriResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toMateriResponse(&items[i]))
	}
	return resp, nil
}

func (s *materiService) Show(id uint) (*dto.MateriResponse, error) {
	materi, err := s.materiRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err)
	}
	resp := toMateriResponse(materi)
	return &resp, nil
}

func (s *materiService) Create(p *auth.Principal, req dto.MateriRequest, image *multipart.FileHeader) (*dto.MateriResponse, error) {
	materi := model.Materi{UserID: p.UserID}
	apply(&materi, req)
	if image != nil {
		path, err := s.files.Save(storage.FolderMateri, image, storage.ImageRule("image_banner"))
		if err != nil {
			return nil, internalError(err, apperror.MsgFailed)
		}
		materi.ImageBanner = &path
	}
	if err := s.materiRepo.Create(&materi); err != nil {
		if materi.ImageBanner != nil {
			_ = s.files.Delete(*materi.ImageBanner)
		}
		log.Error().Err(err).Msg("CreateMateri: repository error")
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	return s.Show(materi.ID)
}

func (s *materiService) Update(id uint, req dto.MateriRequest, image *multipart.FileHeader) (*dto.MateriResponse, error) {
	materi, err := s.materiRepo.FindByID(id)
	if err != nil {
		return nil, lookupError(err)
	}
	apply(materi, req)

	var old *string
	if image != nil {
		path, err := s.files.Save(storage.FolderMateri, image, storage.ImageRule("image_banner"))
		if err != nil {
			return nil, internalError(err, apperror.MsgFailed)
		}
		old = materi.ImageBanner
		materi.ImageBanner = &path
	}
	if err := s.materiRepo.Update(materi); err != nil {
		if image != nil {
			_ = s.files.Delete(*materi.ImageBanner)
		}
		log.Error().Err(err).Uint("materiID", id).Msg("UpdateMateri: repository error")
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	if old != nil {
		if err := s.files.Delete(*old); err != nil {
			log.Warn().Err(err).Str("path", *old).Msg("UpdateMateri: failed to delete replaced image")
		}
	}
	return s.Show(materi.ID)
}

func (s *materiService) Delete(id uint) error {
	materi, err := s.materiRepo.FindByID(id)
	if err != nil {
		return lookupError(err)
	}
	if err := s.materiRepo.Delete(materi); err != nil {
		return apperror.Unexpected(err, apperror.MsgFailed)
	}
	if materi.ImageBanner != nil {
		if err := s.files.Delete(*materi.ImageBanner); err != nil {
			log.Warn().Err(err).Uint("materiID", id).Msg("DeleteMateri: failed to delete image")
		}
	}
	return nil
}

func (s *materiService) DeleteImage(id uint) error {
	materi, err := s.materiRepo.FindByID(id)
	if err != nil {
		return lookupError(err)
	}
	if materi.ImageBanner == nil {
		return apperror.BusinessRule(apperror.MsgImageMissing, "")
	}
	if err := s.files.Delete(*materi.ImageBanner); err != nil {
		return apperror.Unexpected(err, apperror.MsgFailed)
	}
	if err := s.materiRepo.ClearImage(materi.ID); err != nil {
		return apperror.Unexpected(err, apperror.MsgFailed)
	}
	return nil
}

func apply(materi *model.Materi, req dto.MateriRequest) {
	materi.Subject = req.Subject
	materi.Competence = req.Competence
	materi.Class = req.Class
	materi.Semester = req.Semester
	materi.Meet = req.Meet
	materi.Description = req.Description
}
