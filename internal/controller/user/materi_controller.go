package user

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/controller"
	"github.com/lshigami/classquiz/internal/service"
)

type MateriController struct {
	materiService service.MateriService
}

func NewMateriController(materiService service.MateriService) *MateriController {
	return &MateriController{materiService: materiService}
}

// ListMateri godoc
// @Summary List lesson materials
// @Tags Materi
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.MateriResponse}
// @Router /materi [get]
func (c *MateriController) ListMateri(ctx *gin.Context) {
	items, err := c.materiService.List()
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", items)
}

// ShowMateri godoc
// @Summary Get one lesson material
// @Tags Materi
// @Produce json
// @Security BearerAuth
// @Param id path int true "Materi ID"
// @Success 200 {object} dto.Response{data=dto.MateriResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /materi/{id} [get]
func (c *MateriController) ShowMateri(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	item, err := c.materiService.Show(id)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", item)
}
