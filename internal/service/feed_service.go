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

type FeedService interface {
	List() ([]dto.FeedResponse, error)
	Create(p *auth.Principal, req dto.FeedRequest, image *multipart.FileHeader) (*dto.FeedResponse, error)
	Reply(p *auth.Principal, feedID uint, req dto.FeedReplyRequest) (*dto.FeedReplyResponse, error)
}

type feedService struct {
	feedRepo repository.FeedRepository
	files    storage.FileStore
}

func NewFeedService(feedRepo repository.FeedRepository, files storage.FileStore) FeedService {
	return &feedService{feedRepo: feedRepo, files: files}
}

func (s *feedService) List() ([]dto.FeedResponse, error) {
	feeds, err := s.feedRepo.FindAllWithReplies()
	if err != nil {
		log.Error().Err(err).Msg("ListFeeds: repository error")
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := make([]dto.FeedResponse, 0, len(feeds))
	for i := range feeds {
		resp = append(resp, toFeedResponse(&feeds[i]))
	}
	return resp, nil
}

func (s *feedService) Create(p *auth.Principal, req dto.FeedRequest, image *multipart.FileHeader) (*dto.FeedResponse, error) {
	feed := model.Feed{UserID: p.UserID, Message: req.Message}
	if image != nil {
		path, err := s.files.Save(storage.FolderFeed, image, storage.ImageRule("image"))
		if err != nil {
			return nil, internalError(err, apperror.MsgFailed)
		}
		feed.Image = &path
	}
	if err := s.feedRepo.Create(&feed); err != nil {
		if feed.Image != nil {
			_ = s.files.Delete(*feed.Image)
		}
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}

	created, err := s.feedRepo.FindByIDWithReplies(feed.ID)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := toFeedResponse(created)
	return &resp, nil
}

func (s *feedService) Reply(p *auth.Principal, feedID uint, req dto.FeedReplyRequest) (*dto.FeedReplyResponse, error) {
	if _, err := s.feedRepo.FindByID(feedID); err != nil {
		return nil, lookupError(err)
	}
	reply := model.FeedReply{FeedID: feedID, UserID: p.UserID, Message: req.Message}
	if err := s.feedRepo.CreateReply(&reply); err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	created, err := s.feedRepo.FindReplyByID(reply.ID)
	if err != nil {
		return nil, apperror.Unexpected(err, apperror.MsgFailed)
	}
	resp := toFeedReplyResponse(created)
	return &resp, nil
}
