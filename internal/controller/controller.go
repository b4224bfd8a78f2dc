package controller

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/lshigami/classquiz/internal/auth"
	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/validation"
	"github.com/rs/zerolog/log"
)

// OK writes a 200 envelope.
func OK(ctx *gin.Context, message string, data interface{}) {
	Respond(ctx, http.StatusOK, message, data)
}

// Created writes a 201 envelope.
func Created(ctx *gin.Context, message string, data interface{}) {
	Respond(ctx, http.StatusCreated, message, data)
}

func Respond(ctx *gin.Context, status int, message string, data interface{}) {
	if message == "" {
		message = apperror.MsgSuccess
	}
	ctx.JSON(status, dto.Response{Status: true, Message: message, Data: data})
}

// Fail writes the failure envelope for err. Causes of unexpected errors are logged, never sent.
func Fail(ctx *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Unexpected(err, apperror.MsgFailed)
	}
	if appErr.Kind == apperror.KindUnexpected {
		log.Error().Err(appErr.Err).Str("method", ctx.Request.Method).Str("path", ctx.FullPath()).Msg(appErr.Message)
	}

	var data interface{}
	switch {
	case len(appErr.Fields) > 0:
		data = appErr.Fields
	case appErr.Detail != "":
		data = appErr.Detail
	}
	message := appErr.Message
	if message == "" {
		message = apperror.MsgFailed
	}
	ctx.JSON(appErr.Kind.Status(), dto.Response{Status: false, Message: message, Data: data})
}

// Bind decodes the body by content type and reports validation failures itself.
func Bind(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBind(obj); err != nil {
		Fail(ctx, validation.Error(err))
		return false
	}
	return true
}

// ParseID reads a numeric path parameter, answering 404 when it is not a number.
func ParseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		Fail(ctx, apperror.NotFound(apperror.MsgNotFound))
		return 0, false
	}
	return uint(id), true
}

// Principal returns the authenticated caller or answers 401.
func Principal(ctx *gin.Context) (*auth.Principal, bool) {
	p, ok := auth.FromContext(ctx)
	if !ok {
		Fail(ctx, apperror.Unauthorized(apperror.MsgUnauthorized))
		return nil, false
	}
	return p, true
}

// OptionalFile returns the uploaded file for field, or nil when none was sent.
func OptionalFile(ctx *gin.Context, field string) *multipart.FileHeader {
	fh, err := ctx.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}

// AnswerData returns the raw "data" field of an answer submission from a JSON body or a form.
func AnswerData(ctx *gin.Context) ([]byte, bool) {
	if !strings.HasPrefix(ctx.ContentType(), binding.MIMEJSON) {
		return []byte(ctx.PostForm("data")), true
	}
	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Fail(ctx, validation.Error(err))
		return nil, false
	}
	return req.Data, true
}
