package teacher

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/controller"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/service"
)

type MateriController struct {
	materiService service.MateriService
}

func NewMateriController(materiService service.MateriService) *MateriController {
	return &MateriController{materiService: materiService}
}

// CreateMateri godoc
// @Summary Publish a lesson material
// @Tags Teacher
// @Accept mpfd,json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.MateriRequest true "Materi"
// @Success 201 {object} dto.Response{data=dto.MateriResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /guru/materi [post]
func (c *MateriController) CreateMateri(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	var req dto.MateriRequest
	if !controller.Bind(ctx, &req) {
		return
	}
	item, err := c.materiService.Create(p, req, controller.OptionalFile(ctx, "image_banner"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.Created(ctx, apperror.MsgCreated, item)
}

// UpdateMateri godoc
// @Summary Update a lesson material
// @Description A new image_banner replaces and deletes the previous one.
// @Tags Teacher
// @Accept mpfd,json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Materi ID"
// @Param payload body dto.MateriRequest true "Materi"
// @Success 200 {object} dto.Response{data=dto.MateriResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/materi/{id} [put]
func (c *MateriController) UpdateMateri(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.MateriRequest
	if !controller.Bind(ctx, &req) {
		return
	}
	item, err := c.materiService.Update(id, req, controller.OptionalFile(ctx, "image_banner"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgUpdated, item)
}

// DeleteMateri godoc
// @Summary Delete a lesson material and its image
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Materi ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/materi/{id} [delete]
func (c *MateriController) DeleteMateri(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.materiService.Delete(id); err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgDeleted, nil)
}

// DeleteMateriImage godoc
// @Summary Remove the banner image of a lesson material
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "Materi ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse "No image"
// @Failure 404 {object} dto.ErrorResponse
// @Router /guru/materi/{id}/image [delete]
func (c *MateriController) DeleteMateriImage(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.materiService.DeleteImage(id); err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgDeleted, nil)
}
