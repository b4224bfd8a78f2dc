package service

import (
	"github.com/lshigami/classquiz/internal/apperror"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// lookupError turns a repository lookup failure into NotFound or Unexpected.
func lookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(apperror.MsgNotFound)
	}
	return apperror.Unexpected(err, apperror.MsgFailed)
}

// internalError keeps typed errors and hides everything else behind message.
func internalError(err error, message string) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.Unexpected(err, message)
}
