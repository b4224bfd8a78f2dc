package account

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/controller"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/service"
	"github.com/rs/zerolog/log"
)

type AccountController struct {
	authService service.AuthService
}

func NewAccountController(authService service.AuthService) *AccountController {
	return &AccountController{authService: authService}
}

// Register godoc
// @Summary Register a new student or teacher account
// @Description Accepts JSON or multipart (with an optional "avatar" image up to 2MB). Returns the user and a bearer token.
// @Tags Auth
// @Accept json,mpfd
// @Produce json
// @Param payload body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /register [post]
func (c *AccountController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !controller.Bind(ctx, &req) {
		return
	}
	resp, err := c.authService.Register(req, controller.OptionalFile(ctx, "avatar"))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.Created(ctx, apperror.MsgRegistered, resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Email or password is incorrect"
// @Router /login [post]
func (c *AccountController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !controller.Bind(ctx, &req) {
		return
	}
	resp, err := c.authService.Login(req)
	if err != nil {
		if apperror.Is(err, apperror.KindUnauthorized) {
			log.Info().Str("email", req.Email).Msg("Login: rejected credentials")
		}
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgLoggedIn, resp)
}

// Logout godoc
// @Summary Revoke all tokens of the current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Router /logout [post]
func (c *AccountController) Logout(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	if err := c.authService.Logout(p); err != nil {
		controller.Fail(ctx, err)
		return
	}
	controller.OK(ctx, apperror.MsgLoggedOut, nil)
}
