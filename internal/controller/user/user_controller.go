package user

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/controller"
	"github.com/lshigami/classquiz/internal/service"
)

// UserController serves the class roster and presence.
type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers godoc
// @Summary List students and teachers
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.UserResponse}
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.All()
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", users)
}

// UserStatus godoc
// @Summary Recently seen users with online flag
// @Description Online means seen within the last 2 minutes.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.UserStatusResponse}
// @Router /users/status [get]
func (c *UserController) UserStatus(ctx *gin.Context) {
	status, err := c.userService.Status()
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", status)
}

// ShowUser godoc
// @Summary Get one user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.Response{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) ShowUser(ctx *gin.Context) {
	id, ok := controller.ParseID(ctx, "id")
	if !ok {
		return
	}
	user, err := c.userService.Show(id)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", user)
}

// ListStudents godoc
// @Summary List students by name
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.StudentResponse}
// @Router /students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	students, err := c.userService.Students()
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", students)
}

// ListTeachers godoc
// @Summary List teachers by name
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.StudentResponse}
// @Router /teachers [get]
func (c *UserController) ListTeachers(ctx *gin.Context) {
	teachers, err := c.userService.Teachers()
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, "", teachers)
}
