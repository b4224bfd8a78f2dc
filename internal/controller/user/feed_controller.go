package user

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/controller"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/service"
)

type FeedController struct {
	feedService service.FeedService
}

func NewFeedController(feedService service.FeedService) *FeedController {
	return &FeedController{feedService: feedService}
}

// ListFeeds godoc
// @Summary List feed posts, newest first, with replies
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.FeedResponse}
// @Router /feeds [get]
func (c *FeedController) ListFeeds(ctx *gin.Context) {
	feeds, err := c.feedService.List()
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", feeds)
}

// CreateFeed godoc
// @Summary Post to the feed
// @Tags Feed
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param payload body dto.FeedRequest true "Message (multipart may add an image)"
// @Success 201 {object} dto.Response{data=dto.FeedResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /feeds [post]
func (c *FeedController) CreateFeed(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	var req dto.FeedRequest
	if !controller.Bind(ctx, &req) {
		return
	}
	feed, err := c.feedService.Create(p, req, controller.OptionalFile(ctx, "image"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.Created(ctx, apperror.MsgCreated, feed)
}

// ReplyFeed godoc
// @Summary Reply to a feed post
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param feedId path int true "Feed ID"
// @Param payload body dto.FeedReplyRequest true "Reply"
// @Success 201 {object} dto.Response{data=dto.FeedReplyResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /feeds/{feedId}/reply [post]
func (c *FeedController) ReplyFeed(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	feedID, ok := controller.ParseID(ctx, "feedId")
	if !ok {
		return
	}
	var req dto.FeedReplyRequest
	if !controller.Bind(ctx, &req) {
		return
	}
	reply, err := c.feedService.Reply(p, feedID, req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.Created(ctx, apperror.MsgCreated, reply)
}
